package servicelog

import (
	"context"
	"errors"
	"testing"
	"time"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/clock"
	"care-hub-go/internal/domain/directory"
)

type fakeLogRepo struct {
	entries       []Entry
	beneficiaries []care.Beneficiary
	users         []directory.User
}

func (r *fakeLogRepo) ListEntries(ctx context.Context) ([]Entry, error) {
	return append([]Entry(nil), r.entries...), nil
}

func (r *fakeLogRepo) CreateEntry(ctx context.Context, entry *Entry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeLogRepo) GetBeneficiary(ctx context.Context, id string) (*care.Beneficiary, error) {
	for _, b := range r.beneficiaries {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, care.ErrBeneficiaryNotFound
}

func (r *fakeLogRepo) ListUsers(ctx context.Context) ([]directory.User, error) {
	return r.users, nil
}

var (
	admin   = directory.User{ID: "admin", Role: directory.RoleAdmin}
	leader  = directory.User{ID: "L1", Role: directory.RoleLeader}
	member  = directory.User{ID: "V1", Role: directory.RoleVolunteer, LeaderID: "L1"}
	stray   = directory.User{ID: "V2", Role: directory.RoleVolunteer}
	members = []directory.User{admin, leader, member, stray}
)

func newRepo() *fakeLogRepo {
	return &fakeLogRepo{
		users: members,
		beneficiaries: []care.Beneficiary{
			{ID: "b1", Name: "Ming", AssignedVolunteerID: "V1"},
			{ID: "b2", Name: "Lan", AssignedVolunteerID: "V2"},
			{ID: "b3", Name: "Hong"},
		},
	}
}

func at(value string) clock.Clock {
	return func() time.Time { return clock.MustParseDate(value).Add(15 * time.Hour) }
}

func TestRecordStampsTodayAndRecorder(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, at("2024-05-20"))

	entry, err := svc.Record(context.Background(), member, "b1", "  read a book together ")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.VolunteerID != "V1" || entry.Content != "read a book together" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if got := clock.FormatDate(&entry.Date); got != "2024-05-20" {
		t.Fatalf("expected today's date, got %s", got)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected entry stored")
	}
}

func TestRecordValidation(t *testing.T) {
	svc := NewService(newRepo(), at("2024-05-20"))
	ctx := context.Background()

	if _, err := svc.Record(ctx, member, "b1", "   "); !errors.Is(err, ErrContentRequired) {
		t.Fatalf("expected ErrContentRequired, got %v", err)
	}
	if _, err := svc.Record(ctx, member, "missing", "hello"); !errors.Is(err, ErrBeneficiaryNotFound) {
		t.Fatalf("expected ErrBeneficiaryNotFound, got %v", err)
	}
	if _, err := svc.Record(ctx, admin, "b2", "visit"); err != nil {
		t.Fatalf("admin can record for anyone: %v", err)
	}
}

func TestRecordAcceptsAnyExistingBeneficiary(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, at("2024-05-20"))
	ctx := context.Background()

	for _, recorder := range []directory.User{member, leader} {
		entry, err := svc.Record(ctx, recorder, "b3", "brought books")
		if err != nil {
			t.Fatalf("%s recording for unassigned beneficiary: %v", recorder.ID, err)
		}
		if entry.BeneficiaryID != "b3" || entry.VolunteerID != recorder.ID {
			t.Fatalf("unexpected entry %+v", entry)
		}
	}
	if _, err := svc.Record(ctx, member, "b2", "covered for a friend"); err != nil {
		t.Fatalf("recording for another volunteer's beneficiary: %v", err)
	}
	if len(repo.entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(repo.entries))
	}

	got, err := svc.ListVisible(ctx, stray)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("entries recorded by others must stay hidden, got %+v", got)
	}
}

func TestListVisibleByRole(t *testing.T) {
	repo := newRepo()
	repo.entries = []Entry{
		{ID: "e1", VolunteerID: "V1", Date: clock.MustParseDate("2024-05-01")},
		{ID: "e2", VolunteerID: "V2", Date: clock.MustParseDate("2024-05-02")},
		{ID: "e3", VolunteerID: "L1", Date: clock.MustParseDate("2024-05-03")},
		{ID: "e4", VolunteerID: "admin", Date: clock.MustParseDate("2024-05-04")},
	}
	svc := NewService(repo, at("2024-05-20"))

	cases := []struct {
		viewer directory.User
		want   []string
	}{
		{admin, []string{"e4", "e3", "e2", "e1"}},
		{leader, []string{"e3", "e1"}},
		{member, []string{"e1"}},
		{stray, []string{"e2"}},
	}
	for _, tc := range cases {
		got, err := svc.ListVisible(context.Background(), tc.viewer)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %+v", tc.viewer.ID, tc.want, got)
		}
		for i := range got {
			if got[i].ID != tc.want[i] {
				t.Fatalf("%s: expected %v at %d, got %s", tc.viewer.ID, tc.want[i], i, got[i].ID)
			}
		}
	}
}

func TestVisibleToIsSubset(t *testing.T) {
	entries := []Entry{{ID: "e1", VolunteerID: "V1"}, {ID: "e2", VolunteerID: "V2"}}
	for _, viewer := range append(members, directory.User{ID: "ghost", Role: "guest"}) {
		got := VisibleTo(viewer, entries, members)
		if len(got) > len(entries) {
			t.Fatalf("%s: visibility amplified", viewer.ID)
		}
	}
	if got := VisibleTo(directory.User{ID: "ghost", Role: "guest"}, entries, members); len(got) != 0 {
		t.Fatalf("unknown role must see nothing")
	}
}
