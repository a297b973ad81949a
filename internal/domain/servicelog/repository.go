package servicelog

import (
	"context"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/directory"
)

// Repository is append-only: entries are never edited or removed.
type Repository interface {
	ListEntries(ctx context.Context) ([]Entry, error)
	CreateEntry(ctx context.Context, entry *Entry) error
	GetBeneficiary(ctx context.Context, id string) (*care.Beneficiary, error)
	ListUsers(ctx context.Context) ([]directory.User, error)
}
