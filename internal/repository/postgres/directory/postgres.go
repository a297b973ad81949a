package directory

import (
	"context"
	"errors"
	"time"

	directorydomain "care-hub-go/internal/domain/directory"
	"care-hub-go/internal/repository/postgres/users"
	"gorm.io/gorm"
)

const directoryLockKey = "care-hub:directory"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(directorydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) LockDirectory(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", directoryLockKey).
		Error
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]directorydomain.User, error) {
	return users.List(ctx, r.db)
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*directorydomain.User, error) {
	return users.Get(ctx, r.db, id)
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*directorydomain.User, error) {
	var user directorydomain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, directorydomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *directorydomain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *PostgresRepository) SaveUser(ctx context.Context, user *directorydomain.User) error {
	result := r.db.WithContext(ctx).
		Model(&directorydomain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":                user.Name,
			"role":                user.Role,
			"status":              user.Status,
			"suspension_end_date": user.SuspensionEndDate,
			"ban_reason":          user.BanReason,
			"leader_id":           user.LeaderID,
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return directorydomain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) CountTeam(ctx context.Context, leaderID, excludeUserID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&directorydomain.User{}).
		Where("role = ? AND leader_id = ?", directorydomain.RoleVolunteer, leaderID)
	if excludeUserID != "" {
		query = query.Where("id <> ?", excludeUserID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&directorydomain.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ClearSuspension only touches rows that are still suspended so a concurrent
// ban is never overwritten.
func (r *PostgresRepository) ClearSuspension(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&directorydomain.User{}).
		Where("id = ? AND status = ?", userID, directorydomain.StatusSuspended).
		Updates(map[string]interface{}{
			"status":              directorydomain.StatusNormal,
			"suspension_end_date": nil,
			"updated_at":          time.Now().UTC(),
		}).Error
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	result := r.db.WithContext(ctx).
		Model(&directorydomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":   password,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return directorydomain.ErrUserNotFound
	}
	return nil
}
