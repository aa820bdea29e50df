package api

import (
	"fmt"
)

// Material represents a material image stored by the materials service.
// Within a loaded batch the URL is the unique identity key; the picker keys
// its selection set on it.
type Material struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id,omitempty"`
	Filename     string `json:"filename"`
	RelativePath string `json:"relative_path,omitempty"`
	URL          string `json:"url"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Project represents an entry of the project catalog. The descriptive fields
// are all optional; DisplayLabel picks the first usable one.
type Project struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Prompt    string `json:"prompt,omitempty"`
	Outline   string `json:"outline,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ProjectLabelMaxRunes is the display width budget for project labels in
// selectors and tables.
const ProjectLabelMaxRunes = 20

// DisplayLabel returns a short human-readable label for the project:
// title, then prompt, then outline, then a synthesized "Project <id[:8]>".
// The result is truncated to ProjectLabelMaxRunes runes.
func (p Project) DisplayLabel() string {
	for _, candidate := range []string{p.Title, p.Prompt, p.Outline} {
		if candidate != "" {
			return TruncateLabel(candidate, ProjectLabelMaxRunes)
		}
	}
	id := p.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return TruncateLabel(fmt.Sprintf("Project %s", id), ProjectLabelMaxRunes)
}

// TruncateLabel shortens s to at most max runes, appending an ellipsis when
// anything was cut. Labels of max runes or fewer pass through unchanged.
func TruncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

// GenerateResult is the payload returned by the material generation endpoint.
type GenerateResult struct {
	ImageURL     string `json:"image_url"`
	RelativePath string `json:"relative_path"`
	MaterialID   string `json:"material_id"`
}
