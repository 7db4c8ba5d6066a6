package services

import (
	"database/sql"
	"encoding/json"

	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

// StatsServiceProvider defines the interface for the dashboard counters.
type StatsServiceProvider interface {
	GetStats() (models.Stats, error)
}

// StatsService derives the public dashboard counters from the stored content.
type StatsService struct {
	db *sql.DB
}

// NewStatsService creates a new StatsService.
func NewStatsService(db *sql.DB) *StatsService {
	return &StatsService{db: db}
}

// GetStats counts modules, assessments, projects, published modules and
// categories.
func (s *StatsService) GetStats() (models.Stats, error) {
	var stats models.Stats

	if err := s.db.QueryRow("SELECT COUNT(*) FROM modules").Scan(&stats.Modules); err != nil {
		return models.Stats{}, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM modules WHERE status = 'published'").Scan(&stats.Published); err != nil {
		return models.Stats{}, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&stats.Projects); err != nil {
		return models.Stats{}, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&stats.Categories); err != nil {
		return models.Stats{}, err
	}

	// Assessments live inside each module's JSON column; count them in Go
	// rather than depending on the driver's JSON1 support.
	rows, err := s.db.Query("SELECT assessments_json FROM modules")
	if err != nil {
		return models.Stats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var assessmentsJSON sql.NullString
		if err := rows.Scan(&assessmentsJSON); err != nil {
			return models.Stats{}, err
		}
		if assessmentsJSON.String == "" {
			continue
		}
		var assessments []models.Assessment
		if err := json.Unmarshal([]byte(assessmentsJSON.String), &assessments); err != nil {
			continue
		}
		stats.Assessments += len(assessments)
	}
	return stats, rows.Err()
}
