package services

import (
	"database/sql"
	"fmt"

	"github.com/eduportfolio/eduportfolio-be/internal/apperror"
	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

// Category references are stored in join tables (module_categories,
// project_categories) so that deleting a category can pull its id out of
// every referencing document in one statement. These helpers are shared by
// the module and project services.

// loadCategoryRefs returns the populated categories for every document in
// the given join table, keyed by document id.
func loadCategoryRefs(db *sql.DB, joinTable, docColumn string) (map[string][]models.Category, error) {
	query := fmt.Sprintf(
		"SELECT j.%s, c.id, c.name FROM %s j JOIN categories c ON c.id = j.category_id ORDER BY c.name",
		docColumn, joinTable,
	)
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make(map[string][]models.Category)
	for rows.Next() {
		var docID string
		var category models.Category
		if err := rows.Scan(&docID, &category.ID, &category.Name); err != nil {
			return nil, err
		}
		refs[docID] = append(refs[docID], category)
	}
	return refs, rows.Err()
}

// loadCategoryRefsForDoc returns the populated categories for one document.
func loadCategoryRefsForDoc(db *sql.DB, joinTable, docColumn, docID string) ([]models.Category, error) {
	query := fmt.Sprintf(
		"SELECT c.id, c.name FROM %s j JOIN categories c ON c.id = j.category_id WHERE j.%s = ? ORDER BY c.name",
		joinTable, docColumn,
	)
	rows, err := db.Query(query, docID)
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

// replaceCategoryRefs rewrites a document's category references inside the
// caller's transaction. Every referenced category must exist.
func replaceCategoryRefs(tx *sql.Tx, joinTable, docColumn, docID string, categoryIDs []string) error {
	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", joinTable, docColumn), docID); err != nil {
		return err
	}

	for _, categoryID := range categoryIDs {
		var count int
		row := tx.QueryRow("SELECT COUNT(*) FROM categories WHERE id = ?", categoryID)
		if err := row.Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return apperror.Validation("categoryIds", "unknown category id")
		}

		insert := fmt.Sprintf("INSERT INTO %s(%s, category_id) VALUES(?, ?)", joinTable, docColumn)
		if _, err := tx.Exec(insert, docID, categoryID); err != nil {
			return err
		}
	}
	return nil
}
