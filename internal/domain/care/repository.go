package care

import (
	"context"

	"care-hub-go/internal/domain/directory"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListBeneficiaries(ctx context.Context) ([]Beneficiary, error)
	GetBeneficiary(ctx context.Context, id string) (*Beneficiary, error)
	CreateBeneficiary(ctx context.Context, beneficiary *Beneficiary) error
	SaveBeneficiary(ctx context.Context, beneficiary *Beneficiary) error
	ListUsers(ctx context.Context) ([]directory.User, error)
	GetUser(ctx context.Context, id string) (*directory.User, error)
}
