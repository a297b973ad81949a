package handler

import (
	accountdomain "care-hub-go/internal/domain/account"
	caredomain "care-hub-go/internal/domain/care"
	dashboarddomain "care-hub-go/internal/domain/dashboard"
	directorydomain "care-hub-go/internal/domain/directory"
	servicelogdomain "care-hub-go/internal/domain/servicelog"
	sessiondomain "care-hub-go/internal/domain/session"
	workflowdomain "care-hub-go/internal/domain/workflow"
	"care-hub-go/internal/polish"
	authhandler "care-hub-go/internal/transport/httpserver/handler/auth"
	carehandler "care-hub-go/internal/transport/httpserver/handler/care"
	commonhandler "care-hub-go/internal/transport/httpserver/handler/common"
	dashboardhandler "care-hub-go/internal/transport/httpserver/handler/dashboard"
	directoryhandler "care-hub-go/internal/transport/httpserver/handler/directory"
	servicelogshandler "care-hub-go/internal/transport/httpserver/handler/servicelog"
	workflowhandler "care-hub-go/internal/transport/httpserver/handler/workflow"
	"care-hub-go/internal/transport/httpserver/middleware"
	"care-hub-go/pkg/logger"
)

type Services struct {
	Gate      *sessiondomain.Gate
	Accounts  *accountdomain.Service
	Directory *directorydomain.Service
	Care      *caredomain.Service
	Workflow  *workflowdomain.Service
	Logs      *servicelogdomain.Service
	Dashboard *dashboarddomain.Service
	Polisher  polish.Polisher
}

type Handlers struct {
	Common    *commonhandler.Handlers
	Auth      *authhandler.Handlers
	Directory *directoryhandler.Handlers
	Care      *carehandler.Handlers
	Workflow  *workflowhandler.Handlers
	Logs      *servicelogshandler.Handlers
	Dashboard *dashboardhandler.Handlers
}

func New(services Services, cookies *middleware.SessionAuth, log logger.Logger) *Handlers {
	sanitizer := commonhandler.NewSanitizer()
	return &Handlers{
		Common:    commonhandler.New(services.Polisher, sanitizer, log),
		Auth:      authhandler.New(services.Gate, services.Accounts, services.Directory, cookies, log),
		Directory: directoryhandler.New(services.Directory, sanitizer, log),
		Care:      carehandler.New(services.Care, sanitizer, log),
		Workflow:  workflowhandler.New(services.Workflow, sanitizer, log),
		Logs:      servicelogshandler.New(services.Logs, sanitizer, log),
		Dashboard: dashboardhandler.New(services.Dashboard, log),
	}
}
