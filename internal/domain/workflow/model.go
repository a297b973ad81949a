package workflow

import "time"

type Type string

const (
	TypeFunding             Type = "funding"
	TypeLeave               Type = "leave"
	TypeReschedule          Type = "reschedule"
	TypeTemporarySuspension Type = "temporary-suspension"
)

func (t Type) Valid() bool {
	switch t {
	case TypeFunding, TypeLeave, TypeReschedule, TypeTemporarySuspension:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Request struct {
	ID              string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Type            Type       `gorm:"type:varchar(32);not null" json:"type"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	Status          Status     `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	ApplicantID     string     `gorm:"type:varchar(64);not null;index" json:"applicant_id"`
	ApproverID      string     `gorm:"type:varchar(64)" json:"approver_id,omitempty"`
	Amount          *float64   `gorm:"type:numeric(12,2)" json:"amount,omitempty"`
	StartDate       *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate         *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
}

func (Request) TableName() string { return "requests" }

type SubmitInput struct {
	Type      Type
	Content   string
	Amount    *float64
	StartDate *time.Time
	EndDate   *time.Time
}
