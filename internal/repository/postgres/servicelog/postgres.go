package servicelog

import (
	"context"
	"errors"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/directory"
	servicelogdomain "care-hub-go/internal/domain/servicelog"
	"care-hub-go/internal/repository/postgres/users"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListEntries(ctx context.Context) ([]servicelogdomain.Entry, error) {
	var entries []servicelogdomain.Entry
	if err := r.db.WithContext(ctx).Order("date desc, created_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) CreateEntry(ctx context.Context, entry *servicelogdomain.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) GetBeneficiary(ctx context.Context, id string) (*care.Beneficiary, error) {
	var beneficiary care.Beneficiary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&beneficiary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, care.ErrBeneficiaryNotFound
		}
		return nil, err
	}
	return &beneficiary, nil
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]directory.User, error) {
	return users.List(ctx, r.db)
}
