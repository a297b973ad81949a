package dashboard

import (
	"context"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/servicelog"
	"care-hub-go/internal/domain/workflow"
)

const recentLimit = 5

type Summary struct {
	Beneficiaries   int                `json:"beneficiaries"`
	AssignedToMe    int                `json:"assigned_to_me"`
	PendingRequests int                `json:"pending_requests"`
	ServiceLogs     int                `json:"service_logs"`
	RecentLogs      []servicelog.Entry `json:"recent_logs"`
}

type Beneficiaries interface {
	ListVisible(ctx context.Context, viewer directory.User) ([]care.Beneficiary, error)
}

type Requests interface {
	ListVisible(ctx context.Context, viewer directory.User) ([]workflow.Request, error)
}

type Logs interface {
	ListVisible(ctx context.Context, viewer directory.User) ([]servicelog.Entry, error)
}

type Service struct {
	beneficiaries Beneficiaries
	requests      Requests
	logs          Logs
}

func NewService(beneficiaries Beneficiaries, requests Requests, logs Logs) *Service {
	return &Service{beneficiaries: beneficiaries, requests: requests, logs: logs}
}

// Summary counts only what viewer is allowed to see.
func (s *Service) Summary(ctx context.Context, viewer directory.User) (Summary, error) {
	var summary Summary

	beneficiaries, err := s.beneficiaries.ListVisible(ctx, viewer)
	if err != nil {
		return Summary{}, err
	}
	summary.Beneficiaries = len(beneficiaries)
	for _, b := range beneficiaries {
		if b.AssignedVolunteerID == viewer.ID {
			summary.AssignedToMe++
		}
	}

	requests, err := s.requests.ListVisible(ctx, viewer)
	if err != nil {
		return Summary{}, err
	}
	for _, r := range requests {
		if r.Status == workflow.StatusPending {
			summary.PendingRequests++
		}
	}

	logs, err := s.logs.ListVisible(ctx, viewer)
	if err != nil {
		return Summary{}, err
	}
	summary.ServiceLogs = len(logs)
	if len(logs) > recentLimit {
		logs = logs[:recentLimit]
	}
	summary.RecentLogs = append(make([]servicelog.Entry, 0, len(logs)), logs...)

	return summary, nil
}
