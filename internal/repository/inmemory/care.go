package inmemory

import (
	"context"
	"time"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/directory"
)

type CareRepository struct {
	tx
}

func NewCareRepository(store *Store) *CareRepository {
	return &CareRepository{tx: tx{store: store}}
}

func (r *CareRepository) Transaction(ctx context.Context, fn func(care.Repository) error) error {
	return r.transaction(func(t tx) error {
		return fn(&CareRepository{tx: t})
	})
}

func (r *CareRepository) ListBeneficiaries(ctx context.Context) ([]care.Beneficiary, error) {
	return r.listBeneficiaries(), nil
}

func (r *CareRepository) GetBeneficiary(ctx context.Context, id string) (*care.Beneficiary, error) {
	for _, b := range r.listBeneficiaries() {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, care.ErrBeneficiaryNotFound
}

func (r *CareRepository) CreateBeneficiary(ctx context.Context, beneficiary *care.Beneficiary) error {
	return r.write(func(d *dataset) error {
		now := time.Now().UTC()
		if beneficiary.CreatedAt.IsZero() {
			beneficiary.CreatedAt = now
		}
		beneficiary.UpdatedAt = now
		d.beneficiaries = append(d.beneficiaries, *beneficiary)
		return nil
	})
}

func (r *CareRepository) SaveBeneficiary(ctx context.Context, beneficiary *care.Beneficiary) error {
	return r.write(func(d *dataset) error {
		for i := range d.beneficiaries {
			if d.beneficiaries[i].ID == beneficiary.ID {
				beneficiary.CreatedAt = d.beneficiaries[i].CreatedAt
				beneficiary.UpdatedAt = time.Now().UTC()
				d.beneficiaries[i] = *beneficiary
				return nil
			}
		}
		return care.ErrBeneficiaryNotFound
	})
}

func (r *CareRepository) ListUsers(ctx context.Context) ([]directory.User, error) {
	return r.listUsers(), nil
}

func (r *CareRepository) GetUser(ctx context.Context, id string) (*directory.User, error) {
	return r.getUser(id)
}
