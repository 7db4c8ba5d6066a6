package models

import "encoding/json"

// EducationEntry is a degree held by the profile owner.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
}

// Profile is the singleton "about me" record. At most one row exists.
type Profile struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Bio       string           `json:"bio"`
	Education []EducationEntry `json:"education"`
	Skills    []string         `json:"skills"`
	IsPublic  bool             `json:"isPublic"`

	// JSON string fields for DB storage
	EducationJSON string `json:"-"`
	SkillsJSON    string `json:"-"`
}

// DefaultProfile returns the placeholder document served to anonymous
// callers when the stored profile is not public, and written on first
// access when no profile exists yet.
func DefaultProfile() Profile {
	return Profile{
		Name:      "N/A",
		Bio:       "N/A",
		Education: []EducationEntry{{Degree: "N/A", Institution: "N/A, N/A"}},
		Skills:    []string{"N/A", "N/A"},
		IsPublic:  true,
	}
}

// PrepareForSave marshals the embedded lists into their JSON string columns.
func (p *Profile) PrepareForSave() {
	if p.Education == nil {
		p.Education = []EducationEntry{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}

	educationBytes, _ := json.Marshal(p.Education)
	p.EducationJSON = string(educationBytes)

	skillsBytes, _ := json.Marshal(p.Skills)
	p.SkillsJSON = string(skillsBytes)
}

// PrepareForAPI unmarshals the JSON string columns back into their lists.
func (p *Profile) PrepareForAPI() {
	p.Education = []EducationEntry{}
	p.Skills = []string{}

	if p.EducationJSON != "" {
		json.Unmarshal([]byte(p.EducationJSON), &p.Education)
	}
	if p.SkillsJSON != "" {
		json.Unmarshal([]byte(p.SkillsJSON), &p.Skills)
	}
}
