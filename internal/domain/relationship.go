package domain

// DependencyLink names the edge for dependency creation and deletion.
// Exactly one of DependsOn or DependencyOf must be set; the handlers
// enforce this before any request is built.
type DependencyLink struct {
	DependsOn    string `json:"depends_on,omitempty"`
	DependencyOf string `json:"dependency_of,omitempty"`
}

// ScopeOptions qualifies task identifiers for operations that accept
// custom task ids. When UseCustomTaskIDs is set, the outbound request
// always carries both the custom_task_ids flag and a team_id: the
// caller-supplied TeamID if present, otherwise the configured default.
// The flag unset means neither parameter appears.
type ScopeOptions struct {
	UseCustomTaskIDs bool
	TeamID           string
}
