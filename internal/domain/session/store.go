package session

import (
	"context"
	"time"

	"care-hub-go/internal/domain/directory"
)

// Store holds the single active identity. Load returns ErrNoSession when the
// slot is empty.
type Store interface {
	Load(ctx context.Context) (*directory.User, error)
	Save(ctx context.Context, user directory.User) error
	Clear(ctx context.Context) error
}

type Directory interface {
	FindByUsername(ctx context.Context, username string) (*directory.User, error)
}

type Lifecycle interface {
	EffectiveStatus(ctx context.Context, user *directory.User, today time.Time) (directory.Status, error)
	Today() time.Time
}
