package models

import (
	"time"
)

// Profile holds the latest academic/skills profile for a user, one row per
// user, updated in place on every save.
type Profile struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User           User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Degree         string    `json:"degree"`
	Major          string    `json:"major"`
	CGPA           float64   `json:"cgpa"`
	Experience     float64   `json:"experience"`
	Skills         string    `json:"skills"`
	Certifications string    `json:"certifications"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
