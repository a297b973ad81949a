package account

import (
	"context"
	"time"

	"care-hub-go/internal/domain/clock"
	"care-hub-go/internal/domain/directory"
)

type Service struct {
	repo     Repository
	policy   Policy
	clock    clock.Clock
	sessions directory.SessionRefresher
}

func NewService(repo Repository, policy Policy, now clock.Clock, sessions directory.SessionRefresher) *Service {
	if now == nil {
		now = clock.System
	}
	return &Service{repo: repo, policy: policy, clock: now, sessions: sessions}
}

func (s *Service) Policy() Policy {
	return s.policy
}

func (s *Service) Today() time.Time {
	return clock.Today(s.clock)
}

// EffectiveStatus evaluates user on today and heals an expired suspension in
// storage. user is updated in place when healed.
func (s *Service) EffectiveStatus(ctx context.Context, user *directory.User, today time.Time) (directory.Status, error) {
	if !SuspensionExpired(*user, today) {
		return EffectiveStatusOf(*user, today), nil
	}

	if err := s.repo.ClearSuspension(ctx, user.ID); err != nil {
		return "", err
	}
	user.Status = directory.StatusNormal
	user.SuspensionEndDate = nil
	return directory.StatusNormal, nil
}

// HealExpired clears every suspension that ended before today and returns
// how many users were reactivated.
func (s *Service) HealExpired(ctx context.Context) (int, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return 0, err
	}

	today := s.Today()
	healed := 0
	for _, user := range users {
		if !SuspensionExpired(user, today) {
			continue
		}
		if err := s.repo.ClearSuspension(ctx, user.ID); err != nil {
			return healed, err
		}
		healed++
	}
	return healed, nil
}

func (s *Service) MustChangePassword(user directory.User) bool {
	return s.policy.MustChangePassword(user)
}

func (s *Service) ChangePassword(ctx context.Context, userID, newPassword string) (*directory.User, error) {
	if len([]rune(newPassword)) < s.policy.MinLength() {
		return nil, ErrTooShort
	}
	if err := s.repo.UpdatePassword(ctx, userID, newPassword); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.sessions != nil {
		if err := s.sessions.Refresh(ctx, *user); err != nil {
			return nil, err
		}
	}
	return user, nil
}
