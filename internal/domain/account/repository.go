package account

import (
	"context"

	"care-hub-go/internal/domain/directory"
)

type Repository interface {
	ListUsers(ctx context.Context) ([]directory.User, error)
	GetUser(ctx context.Context, id string) (*directory.User, error)
	// ClearSuspension sets the user back to normal and drops the end date.
	ClearSuspension(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, password string) error
}
