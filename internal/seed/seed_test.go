package seed

import (
	"context"
	"testing"
	"time"

	"care-hub-go/internal/domain/account"
	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/clock"
	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/workflow"
	"care-hub-go/internal/repository/inmemory"
	"care-hub-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeder(store *inmemory.Store) *Seeder {
	now := func() time.Time { return clock.MustParseDate("2024-06-01") }
	return New(
		inmemory.NewDirectoryRepository(store),
		inmemory.NewCareRepository(store),
		inmemory.NewWorkflowRepository(store),
		inmemory.NewServiceLogRepository(store),
		"ZCFE2026",
		now,
		logger.Discard(),
	)
}

func TestRunSeedsDemoOrganization(t *testing.T) {
	store := inmemory.NewStore()
	ctx := context.Background()
	require.NoError(t, newSeeder(store).Run(ctx))

	users, err := inmemory.NewDirectoryRepository(store).ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 11)
	assert.Equal(t, 4, directory.CountTeam(users, "leader_01", ""))
	assert.Equal(t, 3, directory.CountTeam(users, "leader_02", ""))
	assert.Equal(t, "00011", directory.NextUsernameFrom(users))

	birds, _ := inmemory.NewCareRepository(store).ListBeneficiaries(ctx)
	assert.Len(t, birds, 8)
	requests, _ := inmemory.NewWorkflowRepository(store).ListRequests(ctx)
	assert.Len(t, requests, 5)
	logs, _ := inmemory.NewServiceLogRepository(store).ListEntries(ctx)
	require.Len(t, logs, 2)
	assert.Equal(t, "2024-06-01", clock.FormatDate(&logs[0].Date))
}

func TestRunIsIdempotent(t *testing.T) {
	store := inmemory.NewStore()
	ctx := context.Background()
	seeder := newSeeder(store)

	require.NoError(t, seeder.Run(ctx))
	require.NoError(t, seeder.Run(ctx))

	users, _ := inmemory.NewDirectoryRepository(store).ListUsers(ctx)
	assert.Len(t, users, 11)
	birds, _ := inmemory.NewCareRepository(store).ListBeneficiaries(ctx)
	assert.Len(t, birds, 8)
	requests, _ := inmemory.NewWorkflowRepository(store).ListRequests(ctx)
	assert.Len(t, requests, 5)
}

func TestSeededScenarios(t *testing.T) {
	store := inmemory.NewStore()
	ctx := context.Background()
	require.NoError(t, newSeeder(store).Run(ctx))

	users := inmemory.NewDirectoryRepository(store)
	leader, err := users.GetUser(ctx, "leader_01")
	require.NoError(t, err)
	admin, err := users.GetUser(ctx, "admin_00")
	require.NoError(t, err)

	wf := workflow.NewService(inmemory.NewWorkflowRepository(store), nil)
	visible, err := wf.ListVisible(ctx, *leader)
	require.NoError(t, err)
	require.NotEmpty(t, visible)
	assert.Equal(t, workflow.StatusPending, visible[0].Status)

	for _, r := range visible {
		if r.ApplicantID == "vol_02" && r.Type == workflow.TypeFunding {
			ok, err := wf.CanApproveByID(ctx, *leader, r.ID)
			require.NoError(t, err)
			assert.True(t, ok)
			ok, err = wf.CanApproveByID(ctx, *admin, r.ID)
			require.NoError(t, err)
			assert.False(t, ok)
		}
	}

	policy := account.Policy{DefaultPassword: "ZCFE2026", ExemptUsernames: []string{"00000", "00001", "00002"}}
	assert.False(t, policy.MustChangePassword(*admin))
	vol4, _ := users.GetUser(ctx, "vol_04")
	assert.True(t, policy.MustChangePassword(*vol4))

	birds, _ := care.NewService(inmemory.NewCareRepository(store)).ListVisible(ctx, *leader)
	assert.Len(t, birds, 4)
}
