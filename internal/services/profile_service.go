package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/eduportfolio/eduportfolio-be/internal/apperror"
	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

// ProfileServiceProvider defines the interface for the singleton profile accessor.
type ProfileServiceProvider interface {
	// GetProfile returns the stored document for authenticated callers.
	// Anonymous callers get the stored document only when it is public,
	// otherwise the placeholder default.
	GetProfile(authenticated bool) (models.Profile, error)
	// UpdateProfile replaces the singleton, creating it if absent. The
	// bool result reports whether the document was created.
	UpdateProfile(profile models.Profile) (models.Profile, bool, error)
}

// ProfileService provides business logic for the singleton profile document.
type ProfileService struct {
	db *sql.DB
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *sql.DB) *ProfileService {
	return &ProfileService{db: db}
}

// scanProfile reads the singleton row. sql.ErrNoRows passes through so
// callers can lazily create the document.
func (s *ProfileService) scanProfile() (models.Profile, error) {
	var profile models.Profile
	var education, skills sql.NullString

	row := s.db.QueryRow("SELECT id, name, bio, education_json, skills_json, is_public FROM profile LIMIT 1")
	err := row.Scan(&profile.ID, &profile.Name, &profile.Bio, &education, &skills, &profile.IsPublic)
	if err != nil {
		return models.Profile{}, err
	}

	profile.EducationJSON = education.String
	profile.SkillsJSON = skills.String
	profile.PrepareForAPI()
	return profile, nil
}

// GetProfile returns the profile document, creating the placeholder
// singleton on first access.
func (s *ProfileService) GetProfile(authenticated bool) (models.Profile, error) {
	profile, err := s.scanProfile()
	if err == sql.ErrNoRows {
		profile, err = s.createDefault()
	}
	if err != nil {
		return models.Profile{}, err
	}

	if !authenticated && !profile.IsPublic {
		return models.DefaultProfile(), nil
	}
	return profile, nil
}

// UpdateProfile validates and replaces the singleton in place. Omitted list
// fields become empty; there is no partial merge.
func (s *ProfileService) UpdateProfile(profile models.Profile) (models.Profile, bool, error) {
	if strings.TrimSpace(profile.Name) == "" {
		return models.Profile{}, false, apperror.Validation("name", "name is required")
	}
	if len(strings.TrimSpace(profile.Bio)) < 10 {
		return models.Profile{}, false, apperror.Validation("bio", "bio must be at least 10 characters")
	}
	profile.PrepareForSave()

	existing, err := s.scanProfile()
	if err == sql.ErrNoRows {
		profile.ID = uuid.New().String()
		const insert = "INSERT INTO profile(id, name, bio, education_json, skills_json, is_public) VALUES(?, ?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(insert, profile.ID, profile.Name, profile.Bio,
			profile.EducationJSON, profile.SkillsJSON, profile.IsPublic); err != nil {
			return models.Profile{}, false, err
		}
		profile.PrepareForAPI()
		return profile, true, nil
	}
	if err != nil {
		return models.Profile{}, false, err
	}

	const update = "UPDATE profile SET name = ?, bio = ?, education_json = ?, skills_json = ?, is_public = ? WHERE id = ?"
	if _, err := s.db.Exec(update, profile.Name, profile.Bio,
		profile.EducationJSON, profile.SkillsJSON, profile.IsPublic, existing.ID); err != nil {
		return models.Profile{}, false, err
	}

	profile.ID = existing.ID
	profile.PrepareForAPI()
	return profile, false, nil
}

// createDefault writes the placeholder singleton.
func (s *ProfileService) createDefault() (models.Profile, error) {
	profile := models.DefaultProfile()
	profile.ID = uuid.New().String()
	profile.PrepareForSave()

	const insert = "INSERT INTO profile(id, name, bio, education_json, skills_json, is_public) VALUES(?, ?, ?, ?, ?, ?)"
	if _, err := s.db.Exec(insert, profile.ID, profile.Name, profile.Bio,
		profile.EducationJSON, profile.SkillsJSON, profile.IsPublic); err != nil {
		return models.Profile{}, err
	}

	log.Info().Msg("Created default profile")
	profile.PrepareForAPI()
	return profile, nil
}
