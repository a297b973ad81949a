package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"care-hub-go/internal/config"
	"care-hub-go/internal/db"
	accountdomain "care-hub-go/internal/domain/account"
	caredomain "care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/clock"
	dashboarddomain "care-hub-go/internal/domain/dashboard"
	directorydomain "care-hub-go/internal/domain/directory"
	servicelogdomain "care-hub-go/internal/domain/servicelog"
	sessiondomain "care-hub-go/internal/domain/session"
	workflowdomain "care-hub-go/internal/domain/workflow"
	"care-hub-go/internal/jobs"
	"care-hub-go/internal/polish"
	"care-hub-go/internal/repository/inmemory"
	carerepo "care-hub-go/internal/repository/postgres/care"
	directoryrepo "care-hub-go/internal/repository/postgres/directory"
	servicelogrepo "care-hub-go/internal/repository/postgres/servicelog"
	workflowrepo "care-hub-go/internal/repository/postgres/workflow"
	redisrepo "care-hub-go/internal/repository/redis"
	"care-hub-go/internal/seed"
	"care-hub-go/internal/transport/httpserver"
	"care-hub-go/internal/transport/httpserver/handler"
	"care-hub-go/internal/transport/httpserver/middleware"
	"care-hub-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
	scheduler  *jobs.Scheduler
}

type userRepository interface {
	directorydomain.Repository
	ClearSuspension(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, password string) error
}

type repositories struct {
	users         userRepository
	beneficiaries interface {
		caredomain.Repository
		seed.Beneficiaries
	}
	requests interface {
		workflowdomain.Repository
		seed.Requests
	}
	logs interface {
		servicelogdomain.Repository
		seed.Logs
	}
}

// refreshFunc lets the services that refresh the session be built before
// the gate that depends on them.
type refreshFunc func(ctx context.Context, user directorydomain.User) error

func (f refreshFunc) Refresh(ctx context.Context, user directorydomain.User) error {
	return f(ctx, user)
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	log = logger.NewFromValues(cfg.Env, cfg.LogLevel, cfg.LogFormat)

	return Build(context.Background(), cfg, log)
}

// Build wires the application from an already loaded config.
func Build(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	repos, err := a.initStorage(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	sessionStore, err := a.initSessionStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var gate *sessiondomain.Gate
	refresh := refreshFunc(func(ctx context.Context, user directorydomain.User) error {
		return gate.Refresh(ctx, user)
	})

	policy := accountdomain.Policy{
		DefaultPassword:   cfg.Accounts.DefaultPassword,
		ExemptUsernames:   cfg.Accounts.ExemptUsernames,
		MinPasswordLength: cfg.Accounts.MinPasswordLength,
	}
	directoryService := directorydomain.NewService(repos.users, cfg.Accounts.DefaultPassword, refresh)
	accountService := accountdomain.NewService(repos.users, policy, clock.System, refresh)
	gate = sessiondomain.NewGate(directoryService, accountService, sessionStore, log)

	careService := caredomain.NewService(repos.beneficiaries)
	workflowService := workflowdomain.NewService(repos.requests, clock.System)
	logService := servicelogdomain.NewService(repos.logs, clock.System)
	dashboardService := dashboarddomain.NewService(careService, workflowService, logService)

	if cfg.SeedDemo {
		log.Info("app: seeding demo data")
		seeder := seed.New(repos.users, repos.beneficiaries, repos.requests, repos.logs, cfg.Accounts.DefaultPassword, clock.System, log)
		if err := seeder.Run(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	if !strings.EqualFold(cfg.SuspensionSweep, "off") {
		a.scheduler = jobs.NewScheduler(accountService, log)
		if err := a.scheduler.Start(cfg.SuspensionSweep); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("schedule suspension sweep: %w", err)
		}
	}

	log.Info("app: initializing router")
	cookies := middleware.NewSessionAuth(cfg.Session, gate, log)
	handlers := handler.New(handler.Services{
		Gate:      gate,
		Accounts:  accountService,
		Directory: directoryService,
		Care:      careService,
		Workflow:  workflowService,
		Logs:      logService,
		Dashboard: dashboardService,
		Polisher:  polish.New(cfg.Polish, log),
	}, cookies, log)
	router := httpserver.NewRouter(cfg, handlers, cookies)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)

	return a, nil
}

func (a *App) initStorage(ctx context.Context) (repositories, error) {
	switch a.cfg.StorageDriver {
	case config.StoragePostgres:
		a.log.Info("app: initializing database")
		dbConn, err := db.NewPostgres(ctx, a.cfg.DB, a.log)
		if err != nil {
			return repositories{}, err
		}
		a.db = dbConn
		if err := db.Migrate(dbConn, a.log); err != nil {
			return repositories{}, fmt.Errorf("migrate: %w", err)
		}
		return repositories{
			users:         directoryrepo.NewPostgres(dbConn),
			beneficiaries: carerepo.NewPostgres(dbConn),
			requests:      workflowrepo.NewPostgres(dbConn),
			logs:          servicelogrepo.NewPostgres(dbConn),
		}, nil
	default:
		a.log.Info("app: using in-memory storage")
		store := inmemory.NewStore()
		return repositories{
			users:         inmemory.NewDirectoryRepository(store),
			beneficiaries: inmemory.NewCareRepository(store),
			requests:      inmemory.NewWorkflowRepository(store),
			logs:          inmemory.NewServiceLogRepository(store),
		}, nil
	}
}

func (a *App) initSessionStore(ctx context.Context) (sessiondomain.Store, error) {
	if a.cfg.Session.Store != config.SessionRedis {
		return inmemory.NewSessionStore(a.cfg.Session.MaxAge), nil
	}

	a.log.Info("app: connecting to redis", "addr", a.cfg.Redis.Addr)
	a.redis = redisrepo.NewClient(a.cfg.Redis)
	store := redisrepo.NewSessionStore(a.redis, a.cfg.Redis.Key, a.cfg.Session.MaxAge)
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return store, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// Close stops the background sweep and releases storage connections.
func (a *App) Close() error {
	if a.scheduler != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		a.scheduler.Stop(ctx)
		cancel()
	}

	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
