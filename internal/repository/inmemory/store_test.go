package inmemory

import (
	"context"
	"errors"
	"testing"
	"time"

	"care-hub-go/internal/domain/clock"
	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/session"
	"care-hub-go/internal/domain/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = directory.User{ID: "admin", Username: "00000", Role: directory.RoleAdmin, Name: "Admin", Status: directory.StatusNormal}

func seededStore(t *testing.T, users ...directory.User) *Store {
	t.Helper()
	store := NewStore()
	repo := NewDirectoryRepository(store)
	for _, u := range append([]directory.User{admin}, users...) {
		user := u
		require.NoError(t, repo.CreateUser(context.Background(), &user))
	}
	return store
}

func TestTransactionRestoresSnapshotOnError(t *testing.T) {
	store := seededStore(t)
	repo := NewDirectoryRepository(store)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx directory.Repository) error {
		user := directory.User{ID: "u1", Username: "00001", Role: directory.RoleLeader, Name: "Leader"}
		require.NoError(t, tx.CreateUser(ctx, &user))
		renamed := admin
		renamed.Name = "Renamed"
		require.NoError(t, tx.SaveUser(ctx, &renamed))
		return boom
	})
	require.ErrorIs(t, err, boom)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Admin", users[0].Name)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	store := seededStore(t)
	repo := NewDirectoryRepository(store)

	dup := directory.User{ID: "other", Username: "00000", Role: directory.RoleLeader}
	assert.ErrorIs(t, repo.CreateUser(context.Background(), &dup), directory.ErrDuplicateUsername)
}

func TestReturnedUsersAreCopies(t *testing.T) {
	end := clock.MustParseDate("2024-01-01")
	store := seededStore(t, directory.User{ID: "v1", Username: "00001", Role: directory.RoleVolunteer, Status: directory.StatusSuspended, SuspensionEndDate: &end})
	repo := NewDirectoryRepository(store)
	ctx := context.Background()

	user, err := repo.GetUser(ctx, "v1")
	require.NoError(t, err)
	*user.SuspensionEndDate = clock.MustParseDate("2030-01-01")
	user.Name = "mutated"

	again, err := repo.GetUser(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", clock.FormatDate(again.SuspensionEndDate))
	assert.Empty(t, again.Name)
}

func TestTeamCapThroughDirectoryService(t *testing.T) {
	store := seededStore(t, directory.User{ID: "L001", Username: "00001", Role: directory.RoleLeader, Name: "Leader"})
	svc := directory.NewService(NewDirectoryRepository(store), "ZCFE2026", nil)
	ctx := context.Background()

	for i := 0; i < directory.MaxTeamSize; i++ {
		_, err := svc.CreateUser(ctx, admin, directory.CreateUserInput{Name: "V", Role: directory.RoleVolunteer, LeaderID: "L001"})
		require.NoError(t, err)
	}
	_, err := svc.CreateUser(ctx, admin, directory.CreateUserInput{Name: "V6", Role: directory.RoleVolunteer, LeaderID: "L001"})
	assert.ErrorIs(t, err, directory.ErrTeamFull)

	users, _ := svc.ListUsers(ctx)
	assert.Len(t, users, 2+directory.MaxTeamSize)
	assert.Equal(t, "00006", users[len(users)-1].Username)
}

func TestApprovedSuspensionIsVisibleToNextRead(t *testing.T) {
	leader := directory.User{ID: "L001", Username: "00001", Role: directory.RoleLeader, Name: "Leader"}
	volunteer := directory.User{ID: "V1", Username: "00002", Role: directory.RoleVolunteer, LeaderID: "L001", Name: "Vol"}
	store := seededStore(t, leader, volunteer)
	repo := NewWorkflowRepository(store)
	svc := workflow.NewService(repo, func() time.Time { return clock.MustParseDate("2024-03-01") })
	ctx := context.Background()

	end := clock.MustParseDate("2024-04-01")
	request, err := svc.Submit(ctx, volunteer, workflow.SubmitInput{Type: workflow.TypeTemporarySuspension, Content: "exams", EndDate: &end})
	require.NoError(t, err)

	_, err = svc.Decide(ctx, leader, request.ID, workflow.StatusApproved, "")
	require.NoError(t, err)

	user, err := NewDirectoryRepository(store).GetUser(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, directory.StatusSuspended, user.Status)
	assert.Equal(t, "2024-04-01", clock.FormatDate(user.SuspensionEndDate))

	_, err = svc.Decide(ctx, leader, request.ID, workflow.StatusRejected, "")
	assert.ErrorIs(t, err, workflow.ErrAlreadyDecided)
}

func TestClearSuspensionLeavesBannedUsers(t *testing.T) {
	store := seededStore(t, directory.User{ID: "b1", Username: "00001", Role: directory.RoleVolunteer, Status: directory.StatusBanned, BanReason: "x"})
	repo := NewDirectoryRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.ClearSuspension(ctx, "b1"))
	user, _ := repo.GetUser(ctx, "b1")
	assert.Equal(t, directory.StatusBanned, user.Status)
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore(time.Hour)
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)

	require.NoError(t, store.Save(ctx, admin))
	user, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.ID)

	now = now.Add(2 * time.Hour)
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)

	require.NoError(t, store.Save(ctx, admin))
	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)
}
