package care

import (
	caredomain "care-hub-go/internal/domain/care"
	commonhandler "care-hub-go/internal/transport/httpserver/handler/common"
	"care-hub-go/pkg/logger"
)

type Handlers struct {
	Care      *caredomain.Service
	sanitizer *commonhandler.Sanitizer
	log       logger.Logger
}

func New(care *caredomain.Service, sanitizer *commonhandler.Sanitizer, log logger.Logger) *Handlers {
	return &Handlers{
		Care:      care,
		sanitizer: sanitizer,
		log:       log,
	}
}
