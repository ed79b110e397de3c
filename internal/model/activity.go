package model

import "time"

// ActionType classifies an activity log entry.
type ActionType string

const (
	ActionCreate        ActionType = "CREATE"
	ActionComplete      ActionType = "COMPLETE"
	ActionUncomplete    ActionType = "UNCOMPLETE"
	ActionUpdateContent ActionType = "UPDATE_CONTENT"
	ActionDelete        ActionType = "DELETE"
)

// Metadata snapshot keys.
const (
	SnapshotTitle         = "title"
	SnapshotDeletedTodoID = "deleted_todo_id"
)

// Valid reports whether a is one of the known action types.
func (a ActionType) Valid() bool {
	switch a {
	case ActionCreate, ActionComplete, ActionUncomplete, ActionUpdateContent, ActionDelete:
		return true
	}
	return false
}

// ActivityLogEntry is an append-only audit record of a meaningful change to
// a todo. TodoID becomes nil once the referenced todo is deleted.
type ActivityLogEntry struct {
	ID               string            `json:"id" db:"id"`
	UserID           string            `json:"user_id" db:"user_id"`
	TodoID           *string           `json:"todo_id" db:"todo_id"`
	ActionType       ActionType        `json:"action_type" db:"action_type"`
	MetadataSnapshot map[string]string `json:"metadata_snapshot" db:"-"`
	Timestamp        time.Time         `json:"timestamp" db:"-"`
}
