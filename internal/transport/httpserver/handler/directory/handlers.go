package directory

import (
	directorydomain "care-hub-go/internal/domain/directory"
	commonhandler "care-hub-go/internal/transport/httpserver/handler/common"
	"care-hub-go/pkg/logger"
)

type Handlers struct {
	Directory *directorydomain.Service
	sanitizer *commonhandler.Sanitizer
	log       logger.Logger
}

func New(directory *directorydomain.Service, sanitizer *commonhandler.Sanitizer, log logger.Logger) *Handlers {
	return &Handlers{
		Directory: directory,
		sanitizer: sanitizer,
		log:       log,
	}
}
