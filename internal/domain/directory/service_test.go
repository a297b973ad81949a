package directory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeDirectoryRepo struct {
	users   map[string]*User
	order   []string
	takenFn func(username string) bool
}

func newFakeDirectoryRepo(users ...User) *fakeDirectoryRepo {
	repo := &fakeDirectoryRepo{users: make(map[string]*User)}
	for _, user := range users {
		u := user
		repo.users[u.ID] = &u
		repo.order = append(repo.order, u.ID)
	}
	return repo
}

func (r *fakeDirectoryRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeDirectoryRepo) LockDirectory(ctx context.Context) error {
	return nil
}

func (r *fakeDirectoryRepo) ListUsers(ctx context.Context) ([]User, error) {
	result := make([]User, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *r.users[id])
	}
	return result, nil
}

func (r *fakeDirectoryRepo) GetUser(ctx context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeDirectoryRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	for _, id := range r.order {
		if r.users[id].Username == username {
			copied := *r.users[id]
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeDirectoryRepo) CreateUser(ctx context.Context, user *User) error {
	copied := *user
	r.users[user.ID] = &copied
	r.order = append(r.order, user.ID)
	return nil
}

func (r *fakeDirectoryRepo) SaveUser(ctx context.Context, user *User) error {
	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeDirectoryRepo) CountTeam(ctx context.Context, leaderID, excludeUserID string) (int64, error) {
	users, _ := r.ListUsers(ctx)
	return int64(CountTeam(users, leaderID, excludeUserID)), nil
}

func (r *fakeDirectoryRepo) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	if r.takenFn != nil {
		return r.takenFn(username), nil
	}
	_, err := r.GetUserByUsername(ctx, username)
	return err == nil, nil
}

type recordingRefresher struct {
	refreshed []User
}

func (r *recordingRefresher) Refresh(ctx context.Context, user User) error {
	r.refreshed = append(r.refreshed, user)
	return nil
}

var (
	admin  = User{ID: "admin", Username: "00000", Role: RoleAdmin, Name: "Admin", Status: StatusNormal}
	leader = User{ID: "L001", Username: "00001", Role: RoleLeader, Name: "Leader", Status: StatusNormal}
)

func TestNextUsernameSkipsGaps(t *testing.T) {
	users := []User{{Username: "00000"}, {Username: "00001"}, {Username: "00003"}}
	if got := NextUsernameFrom(users); got != "00004" {
		t.Fatalf("expected 00004, got %s", got)
	}
}

func TestNextUsernameIgnoresNonNumeric(t *testing.T) {
	users := []User{{Username: "root"}, {Username: "00007"}, {Username: "x12"}}
	if got := NextUsernameFrom(users); got != "00008" {
		t.Fatalf("expected 00008, got %s", got)
	}
	if got := NextUsernameFrom(nil); got != "00001" {
		t.Fatalf("expected 00001 for empty directory, got %s", got)
	}
}

func TestCreateUserAssignsUsernameAndDefaultPassword(t *testing.T) {
	repo := newFakeDirectoryRepo(admin, leader)
	svc := NewService(repo, "ZCFE2026", nil)

	user, err := svc.CreateUser(context.Background(), admin, CreateUserInput{Name: "  Vol  ", Role: RoleVolunteer, LeaderID: leader.ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "00002" {
		t.Fatalf("expected username 00002, got %s", user.Username)
	}
	if user.Password != "ZCFE2026" {
		t.Fatalf("expected default password, got %q", user.Password)
	}
	if user.Name != "Vol" || user.Status != StatusNormal || user.LeaderID != leader.ID {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreateUserTeamCap(t *testing.T) {
	repo := newFakeDirectoryRepo(admin, leader)
	svc := NewService(repo, "ZCFE2026", nil)
	ctx := context.Background()

	for i := 0; i < MaxTeamSize; i++ {
		if _, err := svc.CreateUser(ctx, admin, CreateUserInput{Name: fmt.Sprintf("v%d", i), Role: RoleVolunteer, LeaderID: leader.ID}); err != nil {
			t.Fatalf("volunteer %d: expected no error, got %v", i, err)
		}
	}

	before := len(repo.users)
	_, err := svc.CreateUser(ctx, admin, CreateUserInput{Name: "sixth", Role: RoleVolunteer, LeaderID: leader.ID})
	if !errors.Is(err, ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}
	if len(repo.users) != before {
		t.Fatalf("expected no user created on rejection")
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := newFakeDirectoryRepo(admin)
	repo.takenFn = func(string) bool { return true }
	svc := NewService(repo, "ZCFE2026", nil)

	_, err := svc.CreateUser(context.Background(), admin, CreateUserInput{Name: "x", Role: RoleLeader})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestCreateUserDropsLeaderForNonVolunteer(t *testing.T) {
	repo := newFakeDirectoryRepo(admin, leader)
	svc := NewService(repo, "ZCFE2026", nil)

	user, err := svc.CreateUser(context.Background(), admin, CreateUserInput{Name: "lead", Role: RoleLeader, LeaderID: leader.ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.LeaderID != "" {
		t.Fatalf("expected leader id cleared, got %q", user.LeaderID)
	}
}

func TestCreateUserRejectsBadLeader(t *testing.T) {
	vol := User{ID: "V1", Username: "00002", Role: RoleVolunteer, Name: "v", Status: StatusNormal}
	repo := newFakeDirectoryRepo(admin, leader, vol)
	svc := NewService(repo, "ZCFE2026", nil)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, admin, CreateUserInput{Name: "x", Role: RoleVolunteer, LeaderID: "missing"}); !errors.Is(err, ErrLeaderNotFound) {
		t.Fatalf("expected ErrLeaderNotFound, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, admin, CreateUserInput{Name: "x", Role: RoleVolunteer, LeaderID: vol.ID}); !errors.Is(err, ErrInvalidLeader) {
		t.Fatalf("expected ErrInvalidLeader, got %v", err)
	}
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	repo := newFakeDirectoryRepo(admin, leader)
	svc := NewService(repo, "ZCFE2026", nil)

	_, err := svc.CreateUser(context.Background(), leader, CreateUserInput{Name: "x", Role: RoleVolunteer, LeaderID: leader.ID})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func fullTeam() []User {
	users := []User{admin, leader, {ID: "L002", Username: "00002", Role: RoleLeader, Name: "Other", Status: StatusNormal}}
	for i := 0; i < MaxTeamSize; i++ {
		users = append(users, User{
			ID:       fmt.Sprintf("V%d", i),
			Username: fmt.Sprintf("%05d", 10+i),
			Role:     RoleVolunteer,
			Name:     "v",
			Status:   StatusNormal,
			LeaderID: leader.ID,
		})
	}
	users = append(users, User{ID: "V9", Username: "00099", Role: RoleVolunteer, Name: "free", Status: StatusNormal, LeaderID: "L002"})
	return users
}

func TestUpdateUserKeepsOwnSlotInFullTeam(t *testing.T) {
	repo := newFakeDirectoryRepo(fullTeam()...)
	svc := NewService(repo, "ZCFE2026", nil)

	name := "renamed"
	same := leader.ID
	updated, err := svc.UpdateUser(context.Background(), admin, "V0", UserPatch{Name: &name, LeaderID: &same})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "renamed" || updated.LeaderID != leader.ID {
		t.Fatalf("unexpected user %+v", updated)
	}
}

func TestUpdateUserReassignIntoFullTeam(t *testing.T) {
	repo := newFakeDirectoryRepo(fullTeam()...)
	svc := NewService(repo, "ZCFE2026", nil)

	target := leader.ID
	_, err := svc.UpdateUser(context.Background(), admin, "V9", UserPatch{LeaderID: &target})
	if !errors.Is(err, ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}
	if repo.users["V9"].LeaderID != "L002" {
		t.Fatalf("expected user unchanged, got leader %q", repo.users["V9"].LeaderID)
	}
}

func TestUpdateUserRoleChangeClearsLeader(t *testing.T) {
	repo := newFakeDirectoryRepo(fullTeam()...)
	svc := NewService(repo, "ZCFE2026", nil)

	role := RoleLeader
	updated, err := svc.UpdateUser(context.Background(), admin, "V0", UserPatch{Role: &role})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.LeaderID != "" {
		t.Fatalf("expected leader cleared, got %q", updated.LeaderID)
	}
	if repo.users["V0"].LeaderID != "" {
		t.Fatalf("expected stored leader cleared")
	}
}

func TestUpdateUserCannotDemoteLeaderWithTeam(t *testing.T) {
	repo := newFakeDirectoryRepo(fullTeam()...)
	svc := NewService(repo, "ZCFE2026", nil)

	role := RoleVolunteer
	_, err := svc.UpdateUser(context.Background(), admin, leader.ID, UserPatch{Role: &role})
	if !errors.Is(err, ErrLeaderHasTeam) {
		t.Fatalf("expected ErrLeaderHasTeam, got %v", err)
	}
}

func TestUpdateUserSuspensionNeedsEndDate(t *testing.T) {
	repo := newFakeDirectoryRepo(fullTeam()...)
	svc := NewService(repo, "ZCFE2026", nil)

	status := StatusSuspended
	_, err := svc.UpdateUser(context.Background(), admin, "V1", UserPatch{Status: &status})
	if !errors.Is(err, ErrSuspensionEndRequired) {
		t.Fatalf("expected ErrSuspensionEndRequired, got %v", err)
	}

	end := time.Date(2030, 1, 2, 15, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateUser(context.Background(), admin, "V1", UserPatch{Status: &status, SuspensionEndDate: &end})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.SuspensionEndDate == nil || !updated.SuspensionEndDate.Equal(time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected end date truncated to day, got %v", updated.SuspensionEndDate)
	}
}

func TestUpdateUserBanKeepsReasonAndClearsOnRestore(t *testing.T) {
	repo := newFakeDirectoryRepo(fullTeam()...)
	svc := NewService(repo, "ZCFE2026", nil)
	ctx := context.Background()

	banned := StatusBanned
	reason := "misconduct"
	updated, err := svc.UpdateUser(ctx, admin, "V2", UserPatch{Status: &banned, BanReason: &reason})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.BanReason != "misconduct" {
		t.Fatalf("expected ban reason, got %q", updated.BanReason)
	}

	normal := StatusNormal
	restored, err := svc.UpdateUser(ctx, admin, "V2", UserPatch{Status: &normal})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if restored.BanReason != "" {
		t.Fatalf("expected ban reason cleared, got %q", restored.BanReason)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	repo := newFakeDirectoryRepo(admin)
	svc := NewService(repo, "ZCFE2026", nil)

	name := "x"
	_, err := svc.UpdateUser(context.Background(), admin, "missing", UserPatch{Name: &name})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserRefreshesSession(t *testing.T) {
	repo := newFakeDirectoryRepo(fullTeam()...)
	sessions := &recordingRefresher{}
	svc := NewService(repo, "ZCFE2026", sessions)

	role := RoleLeader
	if _, err := svc.UpdateUser(context.Background(), admin, "V3", UserPatch{Role: &role}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sessions.refreshed) != 1 || sessions.refreshed[0].Role != RoleLeader {
		t.Fatalf("expected refreshed copy with new role, got %+v", sessions.refreshed)
	}
}

func TestUpdateUserFailureDoesNotRefresh(t *testing.T) {
	repo := newFakeDirectoryRepo(fullTeam()...)
	sessions := &recordingRefresher{}
	svc := NewService(repo, "ZCFE2026", sessions)

	role := Role("owner")
	if _, err := svc.UpdateUser(context.Background(), admin, "V3", UserPatch{Role: &role}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if len(sessions.refreshed) != 0 {
		t.Fatalf("expected no refresh on failure")
	}
}

func TestTeamSizeExcludesUser(t *testing.T) {
	repo := newFakeDirectoryRepo(fullTeam()...)
	svc := NewService(repo, "ZCFE2026", nil)
	ctx := context.Background()

	size, err := svc.TeamSize(ctx, leader.ID, "")
	if err != nil || size != MaxTeamSize {
		t.Fatalf("expected %d, got %d (%v)", MaxTeamSize, size, err)
	}
	size, err = svc.TeamSize(ctx, leader.ID, "V0")
	if err != nil || size != MaxTeamSize-1 {
		t.Fatalf("expected %d, got %d (%v)", MaxTeamSize-1, size, err)
	}
}

func TestVisibleUsers(t *testing.T) {
	users := fullTeam()

	if got := VisibleTo(admin, users); len(got) != len(users) {
		t.Fatalf("admin: expected all %d users, got %d", len(users), len(got))
	}
	if got := VisibleTo(leader, users); len(got) != MaxTeamSize+1 {
		t.Fatalf("leader: expected self and team, got %d", len(got))
	}

	vol := users[3]
	got := VisibleTo(vol, users)
	if len(got) != 2 {
		t.Fatalf("volunteer: expected self and leader, got %+v", got)
	}
	if got := VisibleTo(User{ID: "x", Role: Role("guest")}, users); len(got) != 0 {
		t.Fatalf("unknown role: expected nothing, got %d", len(got))
	}
}

func TestBuildOrgChart(t *testing.T) {
	users := append(fullTeam(), User{ID: "V10", Username: "00100", Role: RoleVolunteer, Name: "loose", Status: StatusNormal})
	chart := BuildOrgChart(users)

	if len(chart.Admins) != 1 {
		t.Fatalf("expected 1 admin, got %d", len(chart.Admins))
	}
	if len(chart.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(chart.Teams))
	}
	if chart.Teams[0].Leader.ID != leader.ID || !chart.Teams[0].Full || chart.Teams[0].Size != MaxTeamSize {
		t.Fatalf("unexpected first team %+v", chart.Teams[0])
	}
	if len(chart.Unassigned) != 1 || chart.Unassigned[0].ID != "V10" {
		t.Fatalf("unexpected unassigned %+v", chart.Unassigned)
	}
}
