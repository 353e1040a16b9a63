package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/careerlens/backend/internal/models"
)

// ProfileFields are the mutable profile attributes a user can save.
type ProfileFields struct {
	Degree         string
	Major          string
	CGPA           float64
	Experience     float64
	Skills         string
	Certifications string
}

// ProfileService persists one profile row per user.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Upsert updates the profile row for userID in place, inserting it on first
// save. Repeated calls with the same fields are idempotent.
func (s *ProfileService) Upsert(userID uint, fields ProfileFields) error {
	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
	} else if err != nil {
		return err
	}

	profile.Degree = fields.Degree
	profile.Major = fields.Major
	profile.CGPA = fields.CGPA
	profile.Experience = fields.Experience
	profile.Skills = fields.Skills
	profile.Certifications = fields.Certifications

	return s.db.Save(&profile).Error
}

// Fetch returns the profile for userID. A missing row is not an error; the
// zero-valued fields stand in for the absent profile.
func (s *ProfileService) Fetch(userID uint) (ProfileFields, error) {
	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ProfileFields{}, nil
	}
	if err != nil {
		return ProfileFields{}, err
	}
	return ProfileFields{
		Degree:         profile.Degree,
		Major:          profile.Major,
		CGPA:           profile.CGPA,
		Experience:     profile.Experience,
		Skills:         profile.Skills,
		Certifications: profile.Certifications,
	}, nil
}
