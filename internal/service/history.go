package service

import (
	"encoding/json"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/careerlens/backend/internal/models"
)

// RankedPrediction is one (role, confidence) pair of a prediction's ranked
// list, stored as JSON on the history row.
type RankedPrediction struct {
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
}

// HistorySnapshot carries the profile fields exactly as submitted for a
// prediction. Values stay as raw strings so the audit row reflects the
// request, not the parsed feature values.
type HistorySnapshot struct {
	Degree         string
	Major          string
	CGPA           string
	Experience     string
	Skills         string
	Certifications string
}

// HistoryEntry is a history row as returned to its owning user.
type HistoryEntry struct {
	Degree         string             `json:"degree"`
	Major          string             `json:"major"`
	CGPA           string             `json:"cgpa"`
	Experience     string             `json:"experience"`
	Skills         string             `json:"skills"`
	Certifications string             `json:"certifications"`
	Result         string             `json:"result"`
	TopPredictions []RankedPrediction `json:"top_predictions"`
	Date           time.Time          `json:"date"`
}

// AdminHistoryEntry is a history row joined with its owner's identity.
type AdminHistoryEntry struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	HistoryEntry
}

// RoleCount is a role with the number of predictions that chose it.
type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

// DayCount is a calendar day with its prediction count.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Stats are the admin dashboard headline numbers.
type Stats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalAdmins      int64 `json:"total_admins"`
	TotalPredictions int64 `json:"total_predictions"`
}

// HistoryService owns the append-only prediction log.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Append writes one history row. Callers on the predict path treat a failure
// here as non-fatal: the prediction result is returned regardless.
func (s *HistoryService) Append(userID uint, snap HistorySnapshot, result string, ranked []RankedPrediction) error {
	encoded, err := json.Marshal(ranked)
	if err != nil {
		return err
	}
	record := models.HistoryRecord{
		UserID:         userID,
		Degree:         snap.Degree,
		Major:          snap.Major,
		CGPA:           snap.CGPA,
		Experience:     snap.Experience,
		Skills:         snap.Skills,
		Certifications: snap.Certifications,
		Result:         result,
		TopPredictions: string(encoded),
	}
	return s.db.Create(&record).Error
}

// ListForUser returns the user's history, newest first.
func (s *HistoryService) ListForUser(userID uint) ([]HistoryEntry, error) {
	var records []models.HistoryRecord
	if err := s.db.Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&records).Error; err != nil {
		return nil, err
	}
	entries := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, toEntry(r))
	}
	return entries, nil
}

// ListAll returns every history row joined with the owning user's name and
// email, newest first.
func (s *HistoryService) ListAll() ([]AdminHistoryEntry, error) {
	type row struct {
		models.HistoryRecord
		UserName  string
		UserEmail string
	}
	var rows []row
	err := s.db.Model(&models.HistoryRecord{}).
		Select("history.*, users.name as user_name, users.email as user_email").
		Joins("JOIN users ON users.id = history.user_id").
		Order("history.created_at desc, history.id desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]AdminHistoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, AdminHistoryEntry{
			ID:           r.ID,
			UserID:       r.UserID,
			UserName:     r.UserName,
			UserEmail:    r.UserEmail,
			HistoryEntry: toEntry(r.HistoryRecord),
		})
	}
	return entries, nil
}

// Delete removes a single history row. Unknown ids are not an error.
func (s *HistoryService) Delete(id uint) error {
	return s.db.Delete(&models.HistoryRecord{}, id).Error
}

// ClearForUser removes all history rows owned by userID.
func (s *HistoryService) ClearForUser(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.HistoryRecord{}).Error
}

// ClearAll removes every history row.
func (s *HistoryService) ClearAll() error {
	return s.db.Where("1 = 1").Delete(&models.HistoryRecord{}).Error
}

// GetStats returns the admin dashboard counters.
func (s *HistoryService) GetStats() (Stats, error) {
	var stats Stats
	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&stats.TotalAdmins).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&models.HistoryRecord{}).Count(&stats.TotalPredictions).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// TopRoles counts predictions by chosen role, most frequent first. Ties
// break alphabetically so the output is deterministic.
func (s *HistoryService) TopRoles() ([]RoleCount, error) {
	counts := []RoleCount{}
	err := s.db.Model(&models.HistoryRecord{}).
		Select("result as role, count(*) as count").
		Group("result").
		Order("count desc, result asc").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// PredictionsOverTime returns per-day prediction counts in ascending date
// order. Day truncation happens here rather than in SQL so sqlite and
// postgres agree.
func (s *HistoryService) PredictionsOverTime() ([]DayCount, error) {
	var stamps []time.Time
	if err := s.db.Model(&models.HistoryRecord{}).Pluck("created_at", &stamps).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]int64)
	for _, ts := range stamps {
		byDay[ts.UTC().Format("2006-01-02")]++
	}

	days := make([]DayCount, 0, len(byDay))
	for day, n := range byDay {
		days = append(days, DayCount{Date: day, Count: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

func toEntry(r models.HistoryRecord) HistoryEntry {
	var ranked []RankedPrediction
	if r.TopPredictions != "" {
		// A corrupt payload degrades to an empty list rather than failing
		// the whole listing.
		if err := json.Unmarshal([]byte(r.TopPredictions), &ranked); err != nil {
			ranked = nil
		}
	}
	if ranked == nil {
		ranked = []RankedPrediction{}
	}
	return HistoryEntry{
		Degree:         r.Degree,
		Major:          r.Major,
		CGPA:           r.CGPA,
		Experience:     r.Experience,
		Skills:         r.Skills,
		Certifications: r.Certifications,
		Result:         r.Result,
		TopPredictions: ranked,
		Date:           r.CreatedAt,
	}
}
