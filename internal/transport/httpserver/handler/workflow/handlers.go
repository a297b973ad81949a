package workflow

import (
	workflowdomain "care-hub-go/internal/domain/workflow"
	commonhandler "care-hub-go/internal/transport/httpserver/handler/common"
	"care-hub-go/pkg/logger"
)

type Handlers struct {
	Workflow  *workflowdomain.Service
	sanitizer *commonhandler.Sanitizer
	log       logger.Logger
}

func New(workflow *workflowdomain.Service, sanitizer *commonhandler.Sanitizer, log logger.Logger) *Handlers {
	return &Handlers{
		Workflow:  workflow,
		sanitizer: sanitizer,
		log:       log,
	}
}
