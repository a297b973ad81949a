package directory

import (
	"context"
	"errors"
	"strings"

	"care-hub-go/internal/domain/clock"
	"github.com/google/uuid"
)

type Service struct {
	repo            Repository
	sessions        SessionRefresher
	defaultPassword string
}

func NewService(repo Repository, defaultPassword string, sessions SessionRefresher) *Service {
	if sessions == nil {
		sessions = noopRefresher{}
	}
	return &Service{repo: repo, sessions: sessions, defaultPassword: defaultPassword}
}

func (s *Service) DefaultPassword() string {
	return s.defaultPassword
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) ListVisible(ctx context.Context, viewer User) ([]User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return VisibleTo(viewer, users), nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

func (s *Service) NextUsername(ctx context.Context) (string, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	return NextUsernameFrom(users), nil
}

func (s *Service) TeamSize(ctx context.Context, leaderID, excludeUserID string) (int, error) {
	count, err := s.repo.CountTeam(ctx, leaderID, excludeUserID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *Service) OrgChart(ctx context.Context, viewer User) (OrgChart, error) {
	if !viewer.IsAdmin() {
		return OrgChart{}, ErrForbidden
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return OrgChart{}, err
	}
	return BuildOrgChart(users), nil
}

func (s *Service) CreateUser(ctx context.Context, actor User, input CreateUserInput) (*User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	leaderID := strings.TrimSpace(input.LeaderID)
	if input.Role != RoleVolunteer {
		leaderID = ""
	}

	var result User
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.LockDirectory(ctx); err != nil {
			return err
		}
		users, err := tx.ListUsers(ctx)
		if err != nil {
			return err
		}
		username := NextUsernameFrom(users)

		taken, err := tx.IsUsernameTaken(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateUsername
		}

		user := User{
			ID:       uuid.NewString(),
			Username: username,
			Password: s.defaultPassword,
			Role:     input.Role,
			Name:     name,
			Status:   StatusNormal,
			LeaderID: leaderID,
		}
		if err := checkLeaderSlot(ctx, tx, user); err != nil {
			return err
		}
		if err := tx.CreateUser(ctx, &user); err != nil {
			return err
		}

		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) UpdateUser(ctx context.Context, actor User, id string, patch UserPatch) (*User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var result User
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.LockDirectory(ctx); err != nil {
			return err
		}
		current, err := tx.GetUser(ctx, id)
		if err != nil {
			return err
		}

		updated, err := applyPatch(*current, patch)
		if err != nil {
			return err
		}

		if current.Role == RoleLeader && updated.Role != RoleLeader {
			members, err := tx.CountTeam(ctx, current.ID, "")
			if err != nil {
				return err
			}
			if members > 0 {
				return ErrLeaderHasTeam
			}
		}

		if err := checkLeaderSlot(ctx, tx, updated); err != nil {
			return err
		}
		if err := tx.SaveUser(ctx, &updated); err != nil {
			return err
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Refresh(ctx, result); err != nil {
		return nil, err
	}
	return &result, nil
}

// applyPatch returns the edited copy of user with the role and status
// invariants restored. The input value is never modified.
func applyPatch(user User, patch UserPatch) (User, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return User{}, ErrNameRequired
		}
		user.Name = name
	}
	if patch.Role != nil {
		if !patch.Role.Valid() {
			return User{}, ErrInvalidRole
		}
		user.Role = *patch.Role
	}
	if patch.LeaderID != nil {
		user.LeaderID = strings.TrimSpace(*patch.LeaderID)
	}
	if user.Role != RoleVolunteer {
		user.LeaderID = ""
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return User{}, ErrInvalidStatus
		}
		user.Status = *patch.Status
	}
	if patch.SuspensionEndDate != nil {
		end := clock.DateOnly(*patch.SuspensionEndDate)
		user.SuspensionEndDate = &end
	}
	if patch.BanReason != nil {
		user.BanReason = strings.TrimSpace(*patch.BanReason)
	}

	switch user.Status {
	case StatusSuspended:
		if user.SuspensionEndDate == nil {
			return User{}, ErrSuspensionEndRequired
		}
		user.BanReason = ""
	case StatusBanned:
		user.SuspensionEndDate = nil
	default:
		user.SuspensionEndDate = nil
		user.BanReason = ""
	}

	return user, nil
}

// checkLeaderSlot verifies the leader reference of a volunteer and that the
// team has room for it. The user itself is never counted.
func checkLeaderSlot(ctx context.Context, tx Repository, user User) error {
	if user.LeaderID == "" {
		return nil
	}
	if user.LeaderID == user.ID {
		return ErrInvalidLeader
	}

	leader, err := tx.GetUser(ctx, user.LeaderID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrLeaderNotFound
		}
		return err
	}
	if leader.Role != RoleLeader {
		return ErrInvalidLeader
	}

	count, err := tx.CountTeam(ctx, user.LeaderID, user.ID)
	if err != nil {
		return err
	}
	if count >= MaxTeamSize {
		return ErrTeamFull
	}
	return nil
}
