package models

import "encoding/json"

// Module types and statuses accepted by the API.
var (
	ModuleTypes    = map[string]bool{"university": true, "online": true, "workshop": true, "certification": true}
	ModuleStatuses = map[string]bool{"draft": true, "published": true, "archived": true}
)

// StatusDraft is the status assigned when a module is created without one.
const StatusDraft = "draft"

// ModuleProject is a work item embedded in a module.
type ModuleProject struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Assessment is a graded item embedded in a module.
type Assessment struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

// Module represents an educational course, workshop or certification record.
type Module struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"` // university, online, workshop, certification
	Description string          `json:"description,omitempty"`
	StartDate   string          `json:"startDate,omitempty"`
	EndDate     string          `json:"endDate,omitempty"`
	Projects    []ModuleProject `json:"projects"`
	Assessments []Assessment    `json:"assessments"`
	Status      string          `json:"status"` // draft, published, archived

	// Category references: ids accepted on writes, populated documents
	// returned on reads.
	CategoryIDs []string   `json:"categoryIds,omitempty"`
	Categories  []Category `json:"categories"`

	// JSON string fields for DB storage
	ProjectsJSON    string `json:"-"`
	AssessmentsJSON string `json:"-"`
}

// PrepareForSave marshals the embedded lists into their JSON string columns.
func (m *Module) PrepareForSave() {
	if m.Projects == nil {
		m.Projects = []ModuleProject{}
	}
	if m.Assessments == nil {
		m.Assessments = []Assessment{}
	}

	projectsBytes, _ := json.Marshal(m.Projects)
	m.ProjectsJSON = string(projectsBytes)

	assessmentsBytes, _ := json.Marshal(m.Assessments)
	m.AssessmentsJSON = string(assessmentsBytes)
}

// PrepareForAPI unmarshals the JSON string columns back into their lists.
func (m *Module) PrepareForAPI() {
	m.Projects = []ModuleProject{}
	m.Assessments = []Assessment{}

	if m.ProjectsJSON != "" {
		json.Unmarshal([]byte(m.ProjectsJSON), &m.Projects)
	}
	if m.AssessmentsJSON != "" {
		json.Unmarshal([]byte(m.AssessmentsJSON), &m.Assessments)
	}
	if m.Categories == nil {
		m.Categories = []Category{}
	}
}
