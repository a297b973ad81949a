package inmemory

import (
	"context"
	"time"

	"care-hub-go/internal/domain/directory"
)

// DirectoryRepository serves both the directory and the account lifecycle.
type DirectoryRepository struct {
	tx
}

func NewDirectoryRepository(store *Store) *DirectoryRepository {
	return &DirectoryRepository{tx: tx{store: store}}
}

func (r *DirectoryRepository) Transaction(ctx context.Context, fn func(directory.Repository) error) error {
	return r.transaction(func(t tx) error {
		return fn(&DirectoryRepository{tx: t})
	})
}

func (r *DirectoryRepository) LockDirectory(ctx context.Context) error {
	return nil
}

func (r *DirectoryRepository) ListUsers(ctx context.Context) ([]directory.User, error) {
	return r.listUsers(), nil
}

func (r *DirectoryRepository) GetUser(ctx context.Context, id string) (*directory.User, error) {
	return r.getUser(id)
}

func (r *DirectoryRepository) GetUserByUsername(ctx context.Context, username string) (*directory.User, error) {
	for _, u := range r.listUsers() {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, directory.ErrUserNotFound
}

func (r *DirectoryRepository) CreateUser(ctx context.Context, user *directory.User) error {
	return r.write(func(d *dataset) error {
		for _, u := range d.users {
			if u.Username == user.Username {
				return directory.ErrDuplicateUsername
			}
		}
		now := time.Now().UTC()
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		user.UpdatedAt = now
		d.users = append(d.users, cloneUser(*user))
		return nil
	})
}

func (r *DirectoryRepository) SaveUser(ctx context.Context, user *directory.User) error {
	user.UpdatedAt = time.Now().UTC()
	saved := cloneUser(*user)
	return r.updateUser(user.ID, func(u *directory.User) {
		saved.Username = u.Username
		saved.Password = u.Password
		saved.CreatedAt = u.CreatedAt
		*u = saved
	})
}

func (r *DirectoryRepository) CountTeam(ctx context.Context, leaderID, excludeUserID string) (int64, error) {
	return int64(directory.CountTeam(r.listUsers(), leaderID, excludeUserID)), nil
}

func (r *DirectoryRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := r.GetUserByUsername(ctx, username)
	return err == nil, nil
}

func (r *DirectoryRepository) ClearSuspension(ctx context.Context, userID string) error {
	return r.updateUser(userID, func(u *directory.User) {
		if u.Status != directory.StatusSuspended {
			return
		}
		u.Status = directory.StatusNormal
		u.SuspensionEndDate = nil
		u.UpdatedAt = time.Now().UTC()
	})
}

func (r *DirectoryRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	return r.updateUser(userID, func(u *directory.User) {
		u.Password = password
		u.UpdatedAt = time.Now().UTC()
	})
}
