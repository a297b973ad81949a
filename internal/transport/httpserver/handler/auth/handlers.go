package auth

import (
	accountdomain "care-hub-go/internal/domain/account"
	directorydomain "care-hub-go/internal/domain/directory"
	sessiondomain "care-hub-go/internal/domain/session"
	"care-hub-go/internal/transport/httpserver/middleware"
	"care-hub-go/pkg/logger"
)

type Handlers struct {
	Gate      *sessiondomain.Gate
	Accounts  *accountdomain.Service
	Directory *directorydomain.Service
	cookies   *middleware.SessionAuth
	log       logger.Logger
}

func New(gate *sessiondomain.Gate, accounts *accountdomain.Service, directory *directorydomain.Service, cookies *middleware.SessionAuth, log logger.Logger) *Handlers {
	return &Handlers{
		Gate:      gate,
		Accounts:  accounts,
		Directory: directory,
		cookies:   cookies,
		log:       log,
	}
}
