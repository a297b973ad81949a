package workflow

import (
	"context"
	"time"

	"care-hub-go/internal/domain/directory"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListRequests(ctx context.Context) ([]Request, error)
	GetRequest(ctx context.Context, id string) (*Request, error)
	CreateRequest(ctx context.Context, request *Request) error
	SaveRequest(ctx context.Context, request *Request) error
	ListUsers(ctx context.Context) ([]directory.User, error)
	GetUser(ctx context.Context, id string) (*directory.User, error)
	// SuspendUser is the only user write the workflow performs.
	SuspendUser(ctx context.Context, userID string, until time.Time) error
}
