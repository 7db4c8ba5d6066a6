package services

import (
	"database/sql"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eduportfolio/eduportfolio-be/internal/apperror"
	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

// githubURLPattern matches repository links on the github.com host.
var githubURLPattern = regexp.MustCompile(`^https?://(www\.)?github\.com/`)

// ProjectServiceProvider defines the interface for project services.
type ProjectServiceProvider interface {
	GetAllProjects() ([]models.Project, error)
	GetProjectByID(id string) (models.Project, error)
	CreateProject(project models.Project) (models.Project, error)
	UpdateProject(id string, project models.Project) (models.Project, error)
	DeleteProject(id string) error
}

// ProjectService provides business logic for project management.
type ProjectService struct {
	db *sql.DB
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *sql.DB) *ProjectService {
	return &ProjectService{db: db}
}

// scanProject is a helper to scan a project from a row or rows object.
func scanProject(scanner interface{ Scan(...interface{}) error }) (models.Project, error) {
	var project models.Project
	var module, description, date, githubURL, technologies sql.NullString

	err := scanner.Scan(
		&project.ID, &project.Title, &module, &description,
		&date, &githubURL, &technologies,
	)
	if err != nil {
		return project, err
	}

	project.Module = module.String
	project.Description = description.String
	project.Date = date.String
	project.GithubURL = githubURL.String
	project.TechnologiesJSON = technologies.String

	project.PrepareForAPI()
	return project, nil
}

const projectColumns = "id, title, module, description, date, github_url, technologies_json"

// GetAllProjects retrieves all projects with their categories populated.
func (s *ProjectService) GetAllProjects() ([]models.Project, error) {
	rows, err := s.db.Query("SELECT " + projectColumns + " FROM projects ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs, err := loadCategoryRefs(s.db, "project_categories", "project_id")
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if categories, ok := refs[projects[i].ID]; ok {
			projects[i].Categories = categories
		}
	}
	return projects, nil
}

// GetProjectByID retrieves a single project by its ID with categories populated.
func (s *ProjectService) GetProjectByID(id string) (models.Project, error) {
	row := s.db.QueryRow("SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	project, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Project{}, apperror.NotFound("project")
		}
		return models.Project{}, err
	}

	categories, err := loadCategoryRefsForDoc(s.db, "project_categories", "project_id", id)
	if err != nil {
		return models.Project{}, err
	}
	project.Categories = categories
	return project, nil
}

// CreateProject validates and adds a new project. The date defaults to
// today when omitted.
func (s *ProjectService) CreateProject(project models.Project) (models.Project, error) {
	if project.Date == "" {
		project.Date = time.Now().Format("2006-01-02")
	}
	if err := validateProject(project); err != nil {
		return models.Project{}, err
	}

	project.ID = uuid.New().String()
	project.PrepareForSave()

	tx, err := s.db.Begin()
	if err != nil {
		return models.Project{}, err
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO projects(id, title, module, description, date, github_url, technologies_json)
		VALUES(?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.Exec(query,
		project.ID, project.Title, project.Module, project.Description,
		project.Date, project.GithubURL, project.TechnologiesJSON,
	)
	if err != nil {
		return models.Project{}, err
	}

	if err := replaceCategoryRefs(tx, "project_categories", "project_id", project.ID, project.CategoryIDs); err != nil {
		return models.Project{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Project{}, err
	}

	return s.GetProjectByID(project.ID)
}

// UpdateProject replaces an existing project with full-document semantics.
func (s *ProjectService) UpdateProject(id string, project models.Project) (models.Project, error) {
	if _, err := s.GetProjectByID(id); err != nil {
		return models.Project{}, err
	}

	if project.Date == "" {
		project.Date = time.Now().Format("2006-01-02")
	}
	if err := validateProject(project); err != nil {
		return models.Project{}, err
	}
	project.PrepareForSave()

	tx, err := s.db.Begin()
	if err != nil {
		return models.Project{}, err
	}
	defer tx.Rollback()

	const query = `
		UPDATE projects SET title = ?, module = ?, description = ?, date = ?, github_url = ?, technologies_json = ?
		WHERE id = ?`
	_, err = tx.Exec(query,
		project.Title, project.Module, project.Description,
		project.Date, project.GithubURL, project.TechnologiesJSON, id,
	)
	if err != nil {
		return models.Project{}, err
	}

	if err := replaceCategoryRefs(tx, "project_categories", "project_id", id, project.CategoryIDs); err != nil {
		return models.Project{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Project{}, err
	}

	return s.GetProjectByID(id)
}

// DeleteProject removes a project; its category join rows cascade.
func (s *ProjectService) DeleteProject(id string) error {
	if _, err := s.GetProjectByID(id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM projects WHERE id = ?", id)
	return err
}

func validateProject(project models.Project) error {
	if strings.TrimSpace(project.Title) == "" {
		return apperror.Validation("title", "project title is required")
	}
	if !githubURLPattern.MatchString(project.GithubURL) {
		return apperror.Validation("githubUrl", "githubUrl must point to github.com")
	}
	return nil
}
