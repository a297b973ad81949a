package care

import (
	"context"
	"errors"
	"time"

	caredomain "care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/repository/postgres/users"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(caredomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListBeneficiaries(ctx context.Context) ([]caredomain.Beneficiary, error) {
	var beneficiaries []caredomain.Beneficiary
	if err := r.db.WithContext(ctx).Order("created_at asc, id asc").Find(&beneficiaries).Error; err != nil {
		return nil, err
	}
	return beneficiaries, nil
}

func (r *PostgresRepository) GetBeneficiary(ctx context.Context, id string) (*caredomain.Beneficiary, error) {
	var beneficiary caredomain.Beneficiary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&beneficiary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, caredomain.ErrBeneficiaryNotFound
		}
		return nil, err
	}
	return &beneficiary, nil
}

func (r *PostgresRepository) CreateBeneficiary(ctx context.Context, beneficiary *caredomain.Beneficiary) error {
	return r.db.WithContext(ctx).Create(beneficiary).Error
}

func (r *PostgresRepository) SaveBeneficiary(ctx context.Context, beneficiary *caredomain.Beneficiary) error {
	result := r.db.WithContext(ctx).
		Model(&caredomain.Beneficiary{}).
		Where("id = ?", beneficiary.ID).
		Updates(map[string]interface{}{
			"name":                  beneficiary.Name,
			"info":                  beneficiary.Info,
			"assigned_volunteer_id": beneficiary.AssignedVolunteerID,
			"updated_at":            time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return caredomain.ErrBeneficiaryNotFound
	}
	return nil
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]directory.User, error) {
	return users.List(ctx, r.db)
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*directory.User, error) {
	return users.Get(ctx, r.db, id)
}
