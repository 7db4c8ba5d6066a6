package models

import "encoding/json"

// Project represents a standalone showcased work item linked to GitHub.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Module       string   `json:"module,omitempty"` // free-text label
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	Date         string   `json:"date,omitempty"` // defaults to today on create
	GithubURL    string   `json:"githubUrl"`

	CategoryIDs []string   `json:"categoryIds,omitempty"`
	Categories  []Category `json:"categories"`

	// JSON string field for DB storage
	TechnologiesJSON string `json:"-"`
}

// PrepareForSave marshals the technologies list into its JSON string column.
func (p *Project) PrepareForSave() {
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	technologiesBytes, _ := json.Marshal(p.Technologies)
	p.TechnologiesJSON = string(technologiesBytes)
}

// PrepareForAPI unmarshals the JSON string column back into the list.
func (p *Project) PrepareForAPI() {
	p.Technologies = []string{}
	if p.TechnologiesJSON != "" {
		json.Unmarshal([]byte(p.TechnologiesJSON), &p.Technologies)
	}
	if p.Categories == nil {
		p.Categories = []Category{}
	}
}
