package directory

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLeader    Role = "leader"
	RoleVolunteer Role = "volunteer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLeader, RoleVolunteer:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusNormal    Status = "normal"
	StatusSuspended Status = "suspended"
	StatusBanned    Status = "banned"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNormal, StatusSuspended, StatusBanned:
		return true
	default:
		return false
	}
}

const (
	MaxTeamSize    = 5
	usernameDigits = 5
)

type User struct {
	ID                string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Username          string     `gorm:"size:5;not null;uniqueIndex" json:"username"`
	Password          string     `gorm:"not null" json:"-"`
	Role              Role       `gorm:"type:varchar(16);not null" json:"role"`
	Name              string     `gorm:"not null" json:"name"`
	Status            Status     `gorm:"type:varchar(16);not null;default:normal" json:"status"`
	SuspensionEndDate *time.Time `gorm:"type:date" json:"suspension_end_date,omitempty"`
	BanReason         string     `gorm:"type:text" json:"ban_reason,omitempty"`
	LeaderID          string     `gorm:"type:varchar(64);index" json:"leader_id,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u User) IsAdmin() bool     { return u.Role == RoleAdmin }
func (u User) IsLeader() bool    { return u.Role == RoleLeader }
func (u User) IsVolunteer() bool { return u.Role == RoleVolunteer }

// ReportsTo reports whether u is a volunteer on leaderID's team.
func (u User) ReportsTo(leaderID string) bool {
	return leaderID != "" && u.Role == RoleVolunteer && u.LeaderID == leaderID
}

type CreateUserInput struct {
	Name     string
	Role     Role
	LeaderID string
}

// UserPatch carries admin edits. Nil fields are left untouched; an empty
// LeaderID clears the assignment.
type UserPatch struct {
	Name              *string
	Role              *Role
	Status            *Status
	SuspensionEndDate *time.Time
	BanReason         *string
	LeaderID          *string
}

type TeamSummary struct {
	Leader  User   `json:"leader"`
	Members []User `json:"members"`
	Size    int    `json:"size"`
	Full    bool   `json:"full"`
}

type OrgChart struct {
	Admins     []User        `json:"admins"`
	Teams      []TeamSummary `json:"teams"`
	Unassigned []User        `json:"unassigned"`
}
