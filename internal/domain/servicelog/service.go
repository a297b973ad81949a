package servicelog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/clock"
	"care-hub-go/internal/domain/directory"
	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	clock clock.Clock
}

func NewService(repo Repository, now clock.Clock) *Service {
	if now == nil {
		now = clock.System
	}
	return &Service{repo: repo, clock: now}
}

// ListVisible returns the entries viewer may read, newest first.
func (s *Service) ListVisible(ctx context.Context, viewer directory.User) ([]Entry, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	visible := VisibleTo(viewer, entries, users)
	sort.SliceStable(visible, func(i, j int) bool {
		if !visible[i].Date.Equal(visible[j].Date) {
			return visible[i].Date.After(visible[j].Date)
		}
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible, nil
}

// Record appends an entry for an existing beneficiary. Any role may record;
// visibility only narrows what is read back. The date is always today's date
// on the service clock.
func (s *Service) Record(ctx context.Context, recorder directory.User, beneficiaryID, content string) (*Entry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	if _, err := s.repo.GetBeneficiary(ctx, beneficiaryID); err != nil {
		if errors.Is(err, care.ErrBeneficiaryNotFound) {
			return nil, ErrBeneficiaryNotFound
		}
		return nil, err
	}

	now := s.clock()
	entry := &Entry{
		ID:            uuid.NewString(),
		BeneficiaryID: beneficiaryID,
		VolunteerID:   recorder.ID,
		Content:       content,
		Date:          clock.DateOnly(now),
		CreatedAt:     now,
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
