package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS modules (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		description TEXT,
		start_date TEXT,
		end_date TEXT,
		status TEXT NOT NULL,
		-- Store embedded lists as JSON text
		projects_json TEXT,
		assessments_json TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS module_categories (
		module_id TEXT NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL REFERENCES categories(id),
		PRIMARY KEY (module_id, category_id)
	);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		module TEXT,
		description TEXT,
		date TEXT,
		github_url TEXT,
		technologies_json TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS project_categories (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL REFERENCES categories(id),
		PRIMARY KEY (project_id, category_id)
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS profile (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		bio TEXT NOT NULL,
		education_json TEXT,
		skills_json TEXT,
		is_public INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		entity_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
