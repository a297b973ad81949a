package workflow

import (
	"context"
	"errors"
	"strings"

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

func (s *Service) ListVisible(ctx context.Context, viewer directory.User) ([]Request, error) {
	requests, err := s.repo.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return VisibleTo(viewer, requests, users), nil
}

func (s *Service) PendingCount(ctx context.Context, viewer directory.User) (int, error) {
	visible, err := s.ListVisible(ctx, viewer)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, request := range visible {
		if request.Status == StatusPending {
			count++
		}
	}
	return count, nil
}

func (s *Service) Submit(ctx context.Context, applicant directory.User, input SubmitInput) (*Request, error) {
	if !CanSubmit(applicant) {
		return nil, ErrForbidden
	}
	request, err := newRequest(applicant, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func newRequest(applicant directory.User, input SubmitInput) (*Request, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidType
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrContentRequired
	}

	request := &Request{
		ID:          uuid.NewString(),
		Type:        input.Type,
		Content:     content,
		Status:      StatusPending,
		ApplicantID: applicant.ID,
	}

	if input.Type == TypeFunding {
		if input.Amount == nil || *input.Amount <= 0 {
			return nil, ErrAmountRequired
		}
		amount := *input.Amount
		request.Amount = &amount
	}

	if input.StartDate != nil {
		start := clock.DateOnly(*input.StartDate)
		request.StartDate = &start
	}
	if input.EndDate != nil {
		end := clock.DateOnly(*input.EndDate)
		request.EndDate = &end
	}
	if input.Type == TypeTemporarySuspension && request.EndDate == nil {
		return nil, ErrEndDateRequired
	}
	if request.StartDate != nil && request.EndDate != nil && request.StartDate.After(*request.EndDate) {
		return nil, ErrInvalidDateRange
	}

	return request, nil
}

// CanApproveByID loads the request and its applicant and evaluates CanApprove.
func (s *Service) CanApproveByID(ctx context.Context, approver directory.User, requestID string) (bool, error) {
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return false, err
	}
	applicant, err := s.repo.GetUser(ctx, request.ApplicantID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return CanApprove(approver, *request, applicant), nil
}

// Decide moves a pending request to approved or rejected. Approving a
// temporary suspension also suspends the applicant until the request's end
// date, unless the applicant is banned; both writes commit or roll back
// together.
func (s *Service) Decide(ctx context.Context, approver directory.User, requestID string, decision Status, reason string) (*Request, error) {
	if !decision.Terminal() {
		return nil, ErrInvalidDecision
	}

	var result Request
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		request, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if request.Status != StatusPending {
			return ErrAlreadyDecided
		}

		applicant, err := tx.GetUser(ctx, request.ApplicantID)
		if err != nil {
			if errors.Is(err, directory.ErrUserNotFound) {
				return ErrForbidden
			}
			return err
		}
		if !CanApprove(approver, *request, applicant) {
			return ErrForbidden
		}

		now := s.clock()
		request.Status = decision
		request.ApproverID = approver.ID
		request.DecidedAt = &now
		request.RejectionReason = ""
		if decision == StatusRejected {
			request.RejectionReason = strings.TrimSpace(reason)
		}

		if err := tx.SaveRequest(ctx, request); err != nil {
			return err
		}

		// A ban outranks an approved leave; the request is still recorded.
		if request.Type == TypeTemporarySuspension && decision == StatusApproved && applicant.Status != directory.StatusBanned {
			if request.EndDate == nil {
				return ErrEndDateRequired
			}
			if err := tx.SuspendUser(ctx, applicant.ID, *request.EndDate); err != nil {
				return err
			}
		}

		result = *request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
