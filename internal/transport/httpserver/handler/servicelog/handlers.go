package servicelog

import (
	servicelogdomain "care-hub-go/internal/domain/servicelog"
	commonhandler "care-hub-go/internal/transport/httpserver/handler/common"
	"care-hub-go/pkg/logger"
)

type Handlers struct {
	Logs      *servicelogdomain.Service
	sanitizer *commonhandler.Sanitizer
	log       logger.Logger
}

func New(logs *servicelogdomain.Service, sanitizer *commonhandler.Sanitizer, log logger.Logger) *Handlers {
	return &Handlers{
		Logs:      logs,
		sanitizer: sanitizer,
		log:       log,
	}
}
