package common

import (
	"care-hub-go/internal/polish"
	"care-hub-go/pkg/logger"
)

type Handlers struct {
	Polisher  polish.Polisher
	sanitizer *Sanitizer
	log       logger.Logger
}

func New(polisher polish.Polisher, sanitizer *Sanitizer, log logger.Logger) *Handlers {
	return &Handlers{
		Polisher:  polisher,
		sanitizer: sanitizer,
		log:       log,
	}
}
