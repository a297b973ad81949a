package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"care-hub-go/pkg/logger"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	HTTPPort        string
	Env             string
	LogLevel        string
	LogFormat       string
	StorageDriver   string
	SeedDemo        bool
	AllowedOrigins  []string
	DB              DBConfig
	Session         SessionConfig
	Redis           RedisConfig
	Accounts        AccountsConfig
	Polish          PolishConfig
	// SuspensionSweep is a cron spec with seconds; "off" disables the job.
	SuspensionSweep string
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

type SessionConfig struct {
	Store        string
	CookieName   string
	CookieSecret string
	CookieSecure bool
	MaxAge       time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

type AccountsConfig struct {
	DefaultPassword   string
	ExemptUsernames   []string
	MinPasswordLength int
}

type PolishConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", ""),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		SeedDemo:       getEnvBool("SEED_DEMO", true),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "care_hub"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnectTimeout:  getEnvDuration("DB_CONNECT_TIMEOUT", time.Minute),
		},
		Session: SessionConfig{
			Store:        strings.ToLower(getEnv("SESSION_STORE", SessionMemory)),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "care-hub-session"),
			CookieSecret: getEnv("SESSION_COOKIE_SECRET", ""),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
			MaxAge:       getEnvDuration("SESSION_MAX_AGE", 12*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Key:      getEnv("REDIS_SESSION_KEY", "care-hub:session:current"),
		},
		Accounts: AccountsConfig{
			DefaultPassword:   getEnv("ACCOUNT_DEFAULT_PASSWORD", "ZCFE2026"),
			ExemptUsernames:   getEnvList("ACCOUNT_EXEMPT_USERNAMES", []string{"00000", "00001", "00002"}),
			MinPasswordLength: getEnvInt("ACCOUNT_MIN_PASSWORD_LENGTH", 6),
		},
		Polish: PolishConfig{
			Endpoint: getEnv("POLISH_ENDPOINT", ""),
			APIKey:   getEnv("POLISH_API_KEY", ""),
			Timeout:  getEnvDuration("POLISH_TIMEOUT", 10*time.Second),
		},
		SuspensionSweep: getEnv("SUSPENSION_SWEEP_SCHEDULE", "0 5 0 * * *"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMemory, StoragePostgres, c.StorageDriver)
	}
	switch c.Session.Store {
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionMemory, SessionRedis, c.Session.Store)
	}
	if c.Env == "production" && len(c.Session.CookieSecret) < 32 {
		return fmt.Errorf("SESSION_COOKIE_SECRET must be at least 32 characters in production")
	}
	if c.Accounts.DefaultPassword == "" {
		return fmt.Errorf("ACCOUNT_DEFAULT_PASSWORD is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
