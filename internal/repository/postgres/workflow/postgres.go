package workflow

import (
	"context"
	"errors"
	"time"

	"care-hub-go/internal/domain/directory"
	workflowdomain "care-hub-go/internal/domain/workflow"
	"care-hub-go/internal/repository/postgres/users"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(workflowdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListRequests(ctx context.Context) ([]workflowdomain.Request, error) {
	var requests []workflowdomain.Request
	if err := r.db.WithContext(ctx).Order("created_at desc, id asc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetRequest locks the row so two decisions on the same request serialize
// when called inside a transaction.
func (r *PostgresRepository) GetRequest(ctx context.Context, id string) (*workflowdomain.Request, error) {
	var request workflowdomain.Request
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflowdomain.ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *PostgresRepository) CreateRequest(ctx context.Context, request *workflowdomain.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *PostgresRepository) SaveRequest(ctx context.Context, request *workflowdomain.Request) error {
	result := r.db.WithContext(ctx).
		Model(&workflowdomain.Request{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"status":           request.Status,
			"approver_id":      request.ApproverID,
			"rejection_reason": request.RejectionReason,
			"decided_at":       request.DecidedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return workflowdomain.ErrRequestNotFound
	}
	return nil
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]directory.User, error) {
	return users.List(ctx, r.db)
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*directory.User, error) {
	return users.Get(ctx, r.db, id)
}

func (r *PostgresRepository) SuspendUser(ctx context.Context, userID string, until time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&directory.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"status":              directory.StatusSuspended,
			"suspension_end_date": until,
			"ban_reason":          "",
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return directory.ErrUserNotFound
	}
	return nil
}
