package servicelog

import "time"

type Entry struct {
	ID            string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	BeneficiaryID string    `gorm:"column:beneficiary_id;type:varchar(64);not null;index" json:"beneficiary_id"`
	VolunteerID   string    `gorm:"column:volunteer_id;type:varchar(64);not null;index" json:"volunteer_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Date          time.Time `gorm:"type:date;not null" json:"date"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "service_logs" }
