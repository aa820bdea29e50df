package server

import (
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a content project materials can be associated with.
type Project struct {
	ID        string `gorm:"primaryKey;size:36"`
	Title     string
	Prompt    string
	Outline   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a UUID primary key.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Material is a stored material image. ProjectID is nil for materials
// without a project association.
type Material struct {
	ID           string  `gorm:"primaryKey;size:36"`
	ProjectID    *string `gorm:"index;size:36"`
	Filename     string
	RelativePath string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BeforeCreate assigns a UUID primary key.
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// URL returns the static file URL the material is served under.
func (m *Material) URL() string {
	return "/files/" + path.Clean(filepath.ToSlash(m.RelativePath))
}

// materialView is the wire shape of a material.
type materialView struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id,omitempty"`
	Filename     string `json:"filename"`
	RelativePath string `json:"relative_path"`
	URL          string `json:"url"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func newMaterialView(m *Material) materialView {
	projectID := ""
	if m.ProjectID != nil {
		projectID = *m.ProjectID
	}
	return materialView{
		ID:           m.ID,
		ProjectID:    projectID,
		Filename:     m.Filename,
		RelativePath: filepath.ToSlash(m.RelativePath),
		URL:          m.URL(),
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.Format(time.RFC3339),
	}
}

func newMaterialViews(materials []Material) []materialView {
	views := make([]materialView, len(materials))
	for i := range materials {
		views[i] = newMaterialView(&materials[i])
	}
	return views
}

// projectView is the wire shape of a project.
type projectView struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Prompt    string `json:"prompt,omitempty"`
	Outline   string `json:"outline,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func newProjectView(p *Project) projectView {
	return projectView{
		ID:        p.ID,
		Title:     p.Title,
		Prompt:    p.Prompt,
		Outline:   p.Outline,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

func newProjectViews(projects []Project) []projectView {
	views := make([]projectView, len(projects))
	for i := range projects {
		views[i] = newProjectView(&projects[i])
	}
	return views
}
