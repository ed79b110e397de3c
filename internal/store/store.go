package store

import (
	"context"
	"errors"
	"time"

	"github.com/nhle/todo-journal/internal/model"
)

var (
	// ErrNotFound is returned when a todo does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("not found")

	// ErrStorage wraps every other persistence failure.
	ErrStorage = errors.New("storage failure")
)

// TodoFilter controls filtering and pagination for todo queries.
// Results are ordered by created_at, newest first.
type TodoFilter struct {
	UserID      string
	IsDocument  *bool // documents only, tasks only, or nil (all)
	IsCompleted *bool
	Limit       int // 0 means no limit
	Offset      int
}

// ActivityFilter controls filtering and pagination for activity queries.
// Results are ordered by timestamp, newest first.
type ActivityFilter struct {
	UserID string
	TodoID *string
	Since  *time.Time // inclusive lower bound
	Limit  int        // 0 means no limit
	Offset int
}

// Tx is the write surface available inside a transaction.
type Tx interface {
	// InsertTodo stores a new todo, assigning its ID when empty and its
	// timestamps when zero.
	InsertTodo(ctx context.Context, todo *model.Todo) error
	// UpdateTodo overwrites the stored todo and refreshes UpdatedAt.
	UpdateTodo(ctx context.Context, todo *model.Todo) error
	DeleteTodo(ctx context.Context, userID, id string) error

	// InsertActivity appends an entry, assigning its ID and Timestamp when unset.
	InsertActivity(ctx context.Context, entry *model.ActivityLogEntry) error
	// DetachActivity nulls todo_id on every entry referencing todoID and
	// reports how many entries were touched.
	DetachActivity(ctx context.Context, todoID string) (int64, error)
}

// Store defines the persistence interface for todos and their activity log.
type Store interface {
	// InTx runs fn in a single transaction. It commits when fn returns nil
	// and rolls back otherwise; fn's error is returned unchanged.
	InTx(ctx context.Context, fn func(Tx) error) error

	GetTodo(ctx context.Context, userID, id string) (*model.Todo, error)
	ListTodos(ctx context.Context, filter TodoFilter) ([]model.Todo, error)
	CountTodos(ctx context.Context, filter TodoFilter) (int, error)

	ListActivity(ctx context.Context, filter ActivityFilter) ([]model.ActivityLogEntry, error)

	Close() error
}
