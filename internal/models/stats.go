package models

// Stats holds the dashboard counters derived from the stored content.
type Stats struct {
	Modules     int `json:"modules"`
	Assessments int `json:"assessments"`
	Projects    int `json:"projects"`
	Published   int `json:"published"`
	Categories  int `json:"categories"`
}
