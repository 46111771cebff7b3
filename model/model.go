package model

// GeneratedFile is a single file produced by the planner: a project-relative
// path and its full content.
type GeneratedFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// UpdateAction tags an entry in an update plan.
type UpdateAction string

const (
	ActionCreate UpdateAction = "create"
	ActionUpdate UpdateAction = "update"
	ActionDelete UpdateAction = "delete"
)

// UpdateChange is a single planned change to an existing project. Content is
// required for create and update, ignored for delete.
type UpdateChange struct {
	Path    string       `json:"path"`
	Action  UpdateAction `json:"action"`
	Content string       `json:"content,omitempty"`
}

// Summary holds the results of an operation for display.
type Summary struct {
	Created  []string
	Updated  []string
	Deleted  []string
	Degraded []string
	Code     string
	Message  string
}

// Files returns the total number of files touched.
func (s Summary) Files() int {
	return len(s.Created) + len(s.Updated) + len(s.Deleted)
}
