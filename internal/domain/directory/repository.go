package directory

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// LockDirectory serializes username assignment and team size checks for
	// the rest of the surrounding transaction.
	LockDirectory(ctx context.Context) error
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	SaveUser(ctx context.Context, user *User) error
	CountTeam(ctx context.Context, leaderID, excludeUserID string) (int64, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
}

// SessionRefresher receives the stored copy of a user after every edit so an
// active session never authorizes against a stale role or status.
type SessionRefresher interface {
	Refresh(ctx context.Context, user User) error
}

type noopRefresher struct{}

func (noopRefresher) Refresh(context.Context, User) error { return nil }
