package models

// Category is a shared tag applied to modules and projects.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
