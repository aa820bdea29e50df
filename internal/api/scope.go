package api

// ScopeKind discriminates the material scope filter.
type ScopeKind int

// Scope kinds
const (
	ScopeAll ScopeKind = iota
	ScopeUnassigned
	ScopeProject
)

// Wire tokens understood by the materials service.
const (
	scopeTokenAll        = "all"
	scopeTokenUnassigned = "none"
)

// Scope selects which materials a list request returns: every material,
// only materials without a project, or the materials of one concrete project.
type Scope struct {
	kind      ScopeKind
	projectID string
}

// AllScope returns the scope matching every material.
func AllScope() Scope {
	return Scope{kind: ScopeAll}
}

// UnassignedScope returns the scope matching materials without a project.
func UnassignedScope() Scope {
	return Scope{kind: ScopeUnassigned}
}

// ProjectScope returns the scope matching one project's materials.
func ProjectScope(projectID string) Scope {
	if projectID == "" {
		return AllScope()
	}
	return Scope{kind: ScopeProject, projectID: projectID}
}

// DefaultScope derives the initial scope from an externally supplied project
// id: that project when present, otherwise all materials.
func DefaultScope(externalProjectID string) Scope {
	if externalProjectID != "" {
		return ProjectScope(externalProjectID)
	}
	return AllScope()
}

// ParseScope maps a CLI-level token to a scope. "all" and "none" are
// reserved; anything else is treated as a concrete project id.
func ParseScope(token string) Scope {
	switch token {
	case scopeTokenAll, "":
		return AllScope()
	case scopeTokenUnassigned:
		return UnassignedScope()
	default:
		return ProjectScope(token)
	}
}

// Kind returns the scope discriminator.
func (s Scope) Kind() ScopeKind {
	return s.kind
}

// ProjectID returns the concrete project id, empty unless Kind is ScopeProject.
func (s Scope) ProjectID() string {
	return s.projectID
}

// Token returns the wire token passed to the service as the project_id
// query parameter.
func (s Scope) Token() string {
	switch s.kind {
	case ScopeUnassigned:
		return scopeTokenUnassigned
	case ScopeProject:
		return s.projectID
	default:
		return scopeTokenAll
	}
}

// UploadTarget resolves which project an upload issued under this scope is
// associated with. Empty means no association:
//   - all: the externally supplied project id, if any
//   - none: no association, even when an external project id exists
//   - project: that project
func (s Scope) UploadTarget(externalProjectID string) string {
	switch s.kind {
	case ScopeUnassigned:
		return ""
	case ScopeProject:
		return s.projectID
	default:
		return externalProjectID
	}
}
