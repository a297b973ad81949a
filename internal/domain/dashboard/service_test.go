package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/servicelog"
	"care-hub-go/internal/domain/workflow"
)

type stubBeneficiaries []care.Beneficiary

func (s stubBeneficiaries) ListVisible(context.Context, directory.User) ([]care.Beneficiary, error) {
	return s, nil
}

type stubRequests struct {
	list []workflow.Request
	err  error
}

func (s stubRequests) ListVisible(context.Context, directory.User) ([]workflow.Request, error) {
	return s.list, s.err
}

type stubLogs []servicelog.Entry

func (s stubLogs) ListVisible(context.Context, directory.User) ([]servicelog.Entry, error) {
	return s, nil
}

func TestSummaryCounts(t *testing.T) {
	viewer := directory.User{ID: "V1", Role: directory.RoleVolunteer}
	logs := make(stubLogs, 0, 7)
	for i := 0; i < 7; i++ {
		logs = append(logs, servicelog.Entry{ID: fmt.Sprintf("e%d", i)})
	}

	svc := NewService(
		stubBeneficiaries{{ID: "b1", AssignedVolunteerID: "V1"}, {ID: "b2", AssignedVolunteerID: "V9"}},
		stubRequests{list: []workflow.Request{{Status: workflow.StatusPending}, {Status: workflow.StatusApproved}, {Status: workflow.StatusPending}}},
		logs,
	)

	summary, err := svc.Summary(context.Background(), viewer)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Beneficiaries != 2 || summary.AssignedToMe != 1 {
		t.Fatalf("unexpected beneficiary counts %+v", summary)
	}
	if summary.PendingRequests != 2 {
		t.Fatalf("expected 2 pending, got %d", summary.PendingRequests)
	}
	if summary.ServiceLogs != 7 || len(summary.RecentLogs) != 5 || summary.RecentLogs[0].ID != "e0" {
		t.Fatalf("unexpected logs %+v", summary)
	}
}

func TestSummaryPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(stubBeneficiaries{}, stubRequests{err: boom}, stubLogs{})

	if _, err := svc.Summary(context.Background(), directory.User{ID: "x", Role: directory.RoleAdmin}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
