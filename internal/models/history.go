package models

import (
	"time"
)

// HistoryRecord is an append-only audit row written for every prediction.
// It snapshots the profile fields that were fed to the model, the chosen
// result and the full ranked list as JSON.
type HistoryRecord struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Degree         string    `json:"degree"`
	Major          string    `json:"major"`
	CGPA           string    `json:"cgpa"`
	Experience     string    `json:"experience"`
	Skills         string    `json:"skills"`
	Certifications string    `json:"certifications"`
	Result         string    `gorm:"not null" json:"result"`
	TopPredictions string    `gorm:"type:text" json:"-"`
	CreatedAt      time.Time `gorm:"index" json:"date"`
}

// TableName keeps the table name the frontend-era schema used.
func (HistoryRecord) TableName() string {
	return "history"
}
