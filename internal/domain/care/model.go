package care

import "time"

// Beneficiary is a cared-for individual ("bird").
type Beneficiary struct {
	ID                  string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name                string    `gorm:"not null" json:"name"`
	Info                string    `gorm:"type:text" json:"info"`
	AssignedVolunteerID string    `gorm:"type:varchar(64);index" json:"assigned_volunteer_id,omitempty"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Beneficiary) TableName() string { return "beneficiaries" }

type CreateInput struct {
	Name                string
	Info                string
	AssignedVolunteerID string
}

type Patch struct {
	Name *string
	Info *string
}
