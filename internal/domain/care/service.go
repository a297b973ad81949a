package care

import (
	"context"
	"errors"
	"strings"

	"care-hub-go/internal/domain/directory"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListVisible(ctx context.Context, viewer directory.User) ([]Beneficiary, error) {
	beneficiaries, err := s.repo.ListBeneficiaries(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return VisibleTo(viewer, beneficiaries, users), nil
}

// Get returns a single beneficiary if viewer is allowed to see it. Hidden
// records are reported as not found.
func (s *Service) Get(ctx context.Context, viewer directory.User, id string) (*Beneficiary, error) {
	visible, err := s.ListVisible(ctx, viewer)
	if err != nil {
		return nil, err
	}
	for _, b := range visible {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, ErrBeneficiaryNotFound
}

func (s *Service) CreateBeneficiary(ctx context.Context, actor directory.User, input CreateInput) (*Beneficiary, error) {
	if !canManage(actor) {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	var result Beneficiary
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		volunteerID := strings.TrimSpace(input.AssignedVolunteerID)
		if volunteerID != "" {
			if err := requireVolunteer(ctx, tx, volunteerID); err != nil {
				return err
			}
		}

		beneficiary := Beneficiary{
			ID:                  uuid.NewString(),
			Name:                name,
			Info:                strings.TrimSpace(input.Info),
			AssignedVolunteerID: volunteerID,
		}
		if err := tx.CreateBeneficiary(ctx, &beneficiary); err != nil {
			return err
		}
		result = beneficiary
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) UpdateBeneficiary(ctx context.Context, actor directory.User, id string, patch Patch) (*Beneficiary, error) {
	if !canManage(actor) {
		return nil, ErrForbidden
	}

	var result Beneficiary
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		beneficiary, err := getManaged(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return ErrNameRequired
			}
			beneficiary.Name = name
		}
		if patch.Info != nil {
			beneficiary.Info = strings.TrimSpace(*patch.Info)
		}
		if err := tx.SaveBeneficiary(ctx, beneficiary); err != nil {
			return err
		}
		result = *beneficiary
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Assign sets or clears (nil volunteerID) the volunteer caring for a beneficiary.
func (s *Service) Assign(ctx context.Context, actor directory.User, beneficiaryID string, volunteerID *string) (*Beneficiary, error) {
	if !canManage(actor) {
		return nil, ErrForbidden
	}

	var result Beneficiary
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		beneficiary, err := getManaged(ctx, tx, actor, beneficiaryID)
		if err != nil {
			return err
		}

		assigned := ""
		if volunteerID != nil {
			assigned = strings.TrimSpace(*volunteerID)
		}
		if assigned != "" {
			if err := requireVolunteer(ctx, tx, assigned); err != nil {
				return err
			}
		}

		beneficiary.AssignedVolunteerID = assigned
		if err := tx.SaveBeneficiary(ctx, beneficiary); err != nil {
			return err
		}
		result = *beneficiary
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// getManaged loads a beneficiary for a write by actor. Leaders only manage
// what they can see; hidden records are reported as not found.
func getManaged(ctx context.Context, tx Repository, actor directory.User, id string) (*Beneficiary, error) {
	beneficiary, err := tx.GetBeneficiary(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == directory.RoleAdmin {
		return beneficiary, nil
	}
	users, err := tx.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(VisibleTo(actor, []Beneficiary{*beneficiary}, users)) == 0 {
		return nil, ErrBeneficiaryNotFound
	}
	return beneficiary, nil
}

func requireVolunteer(ctx context.Context, repo Repository, id string) error {
	user, err := repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return ErrVolunteerNotFound
		}
		return err
	}
	if !user.IsVolunteer() {
		return ErrVolunteerNotFound
	}
	return nil
}
