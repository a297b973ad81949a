package inmemory

import (
	"context"
	"time"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/servicelog"
)

type ServiceLogRepository struct {
	tx
}

func NewServiceLogRepository(store *Store) *ServiceLogRepository {
	return &ServiceLogRepository{tx: tx{store: store}}
}

func (r *ServiceLogRepository) ListEntries(ctx context.Context) ([]servicelog.Entry, error) {
	var list []servicelog.Entry
	r.read(func(d *dataset) {
		list = append([]servicelog.Entry(nil), d.entries...)
	})
	return list, nil
}

func (r *ServiceLogRepository) CreateEntry(ctx context.Context, entry *servicelog.Entry) error {
	return r.write(func(d *dataset) error {
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = time.Now().UTC()
		}
		d.entries = append(d.entries, *entry)
		return nil
	})
}

func (r *ServiceLogRepository) GetBeneficiary(ctx context.Context, id string) (*care.Beneficiary, error) {
	for _, b := range r.listBeneficiaries() {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, care.ErrBeneficiaryNotFound
}

func (r *ServiceLogRepository) ListUsers(ctx context.Context) ([]directory.User, error) {
	return r.listUsers(), nil
}
