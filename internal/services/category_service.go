package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/eduportfolio/eduportfolio-be/internal/apperror"
	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

// CategoryServiceProvider defines the interface for category services.
type CategoryServiceProvider interface {
	GetAllCategories() ([]models.Category, error)
	GetCategoryByID(id string) (models.Category, error)
	CreateCategory(category models.Category) (models.Category, error)
	UpdateCategory(id string, category models.Category) (models.Category, error)
	DeleteCategory(id string) error
}

// CategoryService provides business logic for category management.
type CategoryService struct {
	db *sql.DB
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{db: db}
}

// GetAllCategories retrieves all categories from the database.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query("SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(id string) (models.Category, error) {
	var category models.Category
	row := s.db.QueryRow("SELECT id, name FROM categories WHERE id = ?", id)
	if err := row.Scan(&category.ID, &category.Name); err != nil {
		if err == sql.ErrNoRows {
			return models.Category{}, apperror.NotFound("category")
		}
		return models.Category{}, err
	}
	return category, nil
}

// CreateCategory validates and adds a new category.
func (s *CategoryService) CreateCategory(category models.Category) (models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if err := validateCategoryName(category.Name); err != nil {
		return models.Category{}, err
	}
	if err := s.checkNameUnique(category.Name, ""); err != nil {
		return models.Category{}, err
	}

	category.ID = uuid.New().String()
	_, err := s.db.Exec("INSERT INTO categories(id, name) VALUES(?, ?)", category.ID, category.Name)
	if err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// UpdateCategory validates and replaces an existing category.
func (s *CategoryService) UpdateCategory(id string, category models.Category) (models.Category, error) {
	if _, err := s.GetCategoryByID(id); err != nil {
		return models.Category{}, err
	}

	category.Name = strings.TrimSpace(category.Name)
	if err := validateCategoryName(category.Name); err != nil {
		return models.Category{}, err
	}
	if err := s.checkNameUnique(category.Name, id); err != nil {
		return models.Category{}, err
	}

	if _, err := s.db.Exec("UPDATE categories SET name = ? WHERE id = ?", category.Name, id); err != nil {
		return models.Category{}, err
	}
	category.ID = id
	return category, nil
}

// DeleteCategory removes a category and pulls its id out of every module
// and project that references it. The referencing documents themselves are
// untouched.
func (s *CategoryService) DeleteCategory(id string) error {
	if _, err := s.GetCategoryByID(id); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM module_categories WHERE category_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM project_categories WHERE category_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM categories WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

func validateCategoryName(name string) error {
	if len(name) < 2 {
		return apperror.Validation("name", "category name must be at least 2 characters")
	}
	return nil
}

// checkNameUnique enforces the unique-name invariant at write time.
// excludeID lets an update keep its own name.
func (s *CategoryService) checkNameUnique(name, excludeID string) error {
	var count int
	row := s.db.QueryRow("SELECT COUNT(*) FROM categories WHERE name = ? AND id != ?", name, excludeID)
	if err := row.Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return apperror.DuplicateKey("category name must be unique")
	}
	return nil
}
