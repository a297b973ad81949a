// Package seed loads the demo organization used in development.
package seed

import (
	"context"
	"errors"
	"fmt"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/clock"
	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/servicelog"
	"care-hub-go/internal/domain/workflow"
	"care-hub-go/pkg/logger"
	"github.com/google/uuid"
)

type Users interface {
	GetUserByUsername(ctx context.Context, username string) (*directory.User, error)
	CreateUser(ctx context.Context, user *directory.User) error
}

type Beneficiaries interface {
	ListBeneficiaries(ctx context.Context) ([]care.Beneficiary, error)
	CreateBeneficiary(ctx context.Context, beneficiary *care.Beneficiary) error
}

type Requests interface {
	ListRequests(ctx context.Context) ([]workflow.Request, error)
	CreateRequest(ctx context.Context, request *workflow.Request) error
}

type Logs interface {
	ListEntries(ctx context.Context) ([]servicelog.Entry, error)
	CreateEntry(ctx context.Context, entry *servicelog.Entry) error
}

type Seeder struct {
	users           Users
	beneficiaries   Beneficiaries
	requests        Requests
	logs            Logs
	defaultPassword string
	clock           clock.Clock
	log             logger.Logger
}

func New(users Users, beneficiaries Beneficiaries, requests Requests, logs Logs, defaultPassword string, now clock.Clock, log logger.Logger) *Seeder {
	if now == nil {
		now = clock.System
	}
	return &Seeder{
		users:           users,
		beneficiaries:   beneficiaries,
		requests:        requests,
		logs:            logs,
		defaultPassword: defaultPassword,
		clock:           now,
		log:             log,
	}
}

// Run adds missing demo users by username and missing beneficiaries by name.
// Requests and logs are only seeded into empty collections.
func (s *Seeder) Run(ctx context.Context) error {
	createdUsers, err := s.seedUsers(ctx)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	birds, createdBirds, err := s.seedBeneficiaries(ctx)
	if err != nil {
		return fmt.Errorf("seed beneficiaries: %w", err)
	}
	createdRequests, err := s.seedRequests(ctx)
	if err != nil {
		return fmt.Errorf("seed requests: %w", err)
	}
	createdLogs, err := s.seedLogs(ctx, birds)
	if err != nil {
		return fmt.Errorf("seed service logs: %w", err)
	}

	s.log.Info("demo data seeded",
		"users", createdUsers,
		"beneficiaries", createdBirds,
		"requests", createdRequests,
		"service_logs", createdLogs,
	)
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) (int, error) {
	created := 0
	for _, u := range demoUsers() {
		_, err := s.users.GetUserByUsername(ctx, u.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, directory.ErrUserNotFound) {
			return created, err
		}

		user := u
		user.Password = s.defaultPassword
		if err := s.users.CreateUser(ctx, &user); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedBeneficiaries returns the id of every demo beneficiary keyed by name,
// including ones that already existed.
func (s *Seeder) seedBeneficiaries(ctx context.Context) (map[string]string, int, error) {
	existing, err := s.beneficiaries.ListBeneficiaries(ctx)
	if err != nil {
		return nil, 0, err
	}
	ids := make(map[string]string, len(existing))
	for _, b := range existing {
		ids[b.Name] = b.ID
	}

	created := 0
	for _, b := range demoBeneficiaries() {
		if _, ok := ids[b.Name]; ok {
			continue
		}
		beneficiary := b
		if err := s.beneficiaries.CreateBeneficiary(ctx, &beneficiary); err != nil {
			return nil, created, err
		}
		ids[beneficiary.Name] = beneficiary.ID
		created++
	}
	return ids, created, nil
}

func (s *Seeder) seedRequests(ctx context.Context) (int, error) {
	existing, err := s.requests.ListRequests(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	created := 0
	for _, r := range demoRequests() {
		request := r
		request.ID = uuid.NewString()
		if err := s.requests.CreateRequest(ctx, &request); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *Seeder) seedLogs(ctx context.Context, birds map[string]string) (int, error) {
	existing, err := s.logs.ListEntries(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	now := s.clock()
	created := 0
	for _, l := range demoLogs() {
		birdID, ok := birds[l.beneficiary]
		if !ok {
			continue
		}
		entry := servicelog.Entry{
			ID:            uuid.NewString(),
			BeneficiaryID: birdID,
			VolunteerID:   l.volunteerID,
			Content:       l.content,
			Date:          clock.DateOnly(now),
			CreatedAt:     now,
		}
		if err := s.logs.CreateEntry(ctx, &entry); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
