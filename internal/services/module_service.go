package services

import (
	"database/sql"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/eduportfolio/eduportfolio-be/internal/apperror"
	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

// httpURLPattern matches the project links embedded in a module.
var httpURLPattern = regexp.MustCompile(`^https?://`)

// ModuleServiceProvider defines the interface for module services.
type ModuleServiceProvider interface {
	GetAllModules() ([]models.Module, error)
	GetModuleByID(id string) (models.Module, error)
	CreateModule(module models.Module) (models.Module, error)
	UpdateModule(id string, module models.Module) (models.Module, error)
	DeleteModule(id string) error
}

// ModuleService provides business logic for module management.
type ModuleService struct {
	db *sql.DB
}

// NewModuleService creates a new ModuleService.
func NewModuleService(db *sql.DB) *ModuleService {
	return &ModuleService{db: db}
}

// scanModule is a helper to scan a module from a row or rows object.
func scanModule(scanner interface{ Scan(...interface{}) error }) (models.Module, error) {
	var module models.Module
	var description, startDate, endDate sql.NullString
	var projects, assessments sql.NullString

	err := scanner.Scan(
		&module.ID, &module.Name, &module.Type, &description,
		&startDate, &endDate, &module.Status, &projects, &assessments,
	)
	if err != nil {
		return module, err
	}

	module.Description = description.String
	module.StartDate = startDate.String
	module.EndDate = endDate.String
	module.ProjectsJSON = projects.String
	module.AssessmentsJSON = assessments.String

	module.PrepareForAPI()
	return module, nil
}

const moduleColumns = "id, name, type, description, start_date, end_date, status, projects_json, assessments_json"

// GetAllModules retrieves all modules with their categories populated.
func (s *ModuleService) GetAllModules() ([]models.Module, error) {
	rows, err := s.db.Query("SELECT " + moduleColumns + " FROM modules ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	modules := []models.Module{}
	for rows.Next() {
		module, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs, err := loadCategoryRefs(s.db, "module_categories", "module_id")
	if err != nil {
		return nil, err
	}
	for i := range modules {
		if categories, ok := refs[modules[i].ID]; ok {
			modules[i].Categories = categories
		}
	}
	return modules, nil
}

// GetModuleByID retrieves a single module by its ID with categories populated.
func (s *ModuleService) GetModuleByID(id string) (models.Module, error) {
	row := s.db.QueryRow("SELECT "+moduleColumns+" FROM modules WHERE id = ?", id)
	module, err := scanModule(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Module{}, apperror.NotFound("module")
		}
		return models.Module{}, err
	}

	categories, err := loadCategoryRefsForDoc(s.db, "module_categories", "module_id", id)
	if err != nil {
		return models.Module{}, err
	}
	module.Categories = categories
	return module, nil
}

// CreateModule validates and adds a new module.
func (s *ModuleService) CreateModule(module models.Module) (models.Module, error) {
	if module.Status == "" {
		module.Status = models.StatusDraft
	}
	if err := validateModule(module); err != nil {
		return models.Module{}, err
	}

	module.ID = uuid.New().String()
	module.PrepareForSave()

	tx, err := s.db.Begin()
	if err != nil {
		return models.Module{}, err
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO modules(id, name, type, description, start_date, end_date, status, projects_json, assessments_json)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.Exec(query,
		module.ID, module.Name, module.Type, module.Description,
		module.StartDate, module.EndDate, module.Status,
		module.ProjectsJSON, module.AssessmentsJSON,
	)
	if err != nil {
		return models.Module{}, err
	}

	if err := replaceCategoryRefs(tx, "module_categories", "module_id", module.ID, module.CategoryIDs); err != nil {
		return models.Module{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Module{}, err
	}

	return s.GetModuleByID(module.ID)
}

// UpdateModule replaces an existing module. Full-document semantics: every
// field is overwritten and omitted lists become empty.
func (s *ModuleService) UpdateModule(id string, module models.Module) (models.Module, error) {
	if _, err := s.GetModuleByID(id); err != nil {
		return models.Module{}, err
	}

	if module.Status == "" {
		module.Status = models.StatusDraft
	}
	if err := validateModule(module); err != nil {
		return models.Module{}, err
	}
	module.PrepareForSave()

	tx, err := s.db.Begin()
	if err != nil {
		return models.Module{}, err
	}
	defer tx.Rollback()

	const query = `
		UPDATE modules SET name = ?, type = ?, description = ?, start_date = ?, end_date = ?,
		                   status = ?, projects_json = ?, assessments_json = ?
		WHERE id = ?`
	_, err = tx.Exec(query,
		module.Name, module.Type, module.Description,
		module.StartDate, module.EndDate, module.Status,
		module.ProjectsJSON, module.AssessmentsJSON, id,
	)
	if err != nil {
		return models.Module{}, err
	}

	if err := replaceCategoryRefs(tx, "module_categories", "module_id", id, module.CategoryIDs); err != nil {
		return models.Module{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Module{}, err
	}

	return s.GetModuleByID(id)
}

// DeleteModule removes a module; its category join rows cascade.
func (s *ModuleService) DeleteModule(id string) error {
	if _, err := s.GetModuleByID(id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM modules WHERE id = ?", id)
	return err
}

func validateModule(module models.Module) error {
	if strings.TrimSpace(module.Name) == "" {
		return apperror.Validation("name", "module name is required")
	}
	if !models.ModuleTypes[module.Type] {
		return apperror.Validation("type", "module type must be one of university, online, workshop, certification")
	}
	if !models.ModuleStatuses[module.Status] {
		return apperror.Validation("status", "module status must be one of draft, published, archived")
	}
	for _, project := range module.Projects {
		if !httpURLPattern.MatchString(project.URL) {
			return apperror.Validation("projects", "project url must be an http(s) URL")
		}
	}
	return nil
}
