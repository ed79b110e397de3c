// Package todos sequences todo mutations with their activity log appends.
// Each create, update and delete commits the todo change and its derived
// entries in one transaction, or neither.
//
// Ownership is checked by the caller: Get resolves a todo for a user and
// returns store.ErrNotFound otherwise, and the mutation methods trust the
// todo they are handed.
package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/todo-journal/internal/activity"
	"github.com/nhle/todo-journal/internal/embedded"
	"github.com/nhle/todo-journal/internal/logging"
	"github.com/nhle/todo-journal/internal/model"
	"github.com/nhle/todo-journal/internal/store"
)

var (
	// ErrInvalidTodo is returned when a create or update would leave a todo
	// without a title.
	ErrInvalidTodo = errors.New("invalid todo")

	// ErrInvalidRange is returned for negative paging values.
	ErrInvalidRange = errors.New("invalid range")
)

// Service is the todo mutation orchestrator.
type Service struct {
	store store.Store
	log   *logging.Logger
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for activity timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns an orchestrator writing through st.
func NewService(st store.Store, log *logging.Logger, opts ...Option) *Service {
	s := &Service{
		store: st,
		log:   log.With("component", "todos"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new todo for userID and logs a CREATE entry.
func (s *Service) Create(ctx context.Context, userID string, in model.NewTodo) (*model.Todo, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidTodo)
	}

	now := s.now().UTC()
	todo := model.Todo{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		IsCompleted: in.IsCompleted,
		IsDocument:  in.IsDocument,
		DueDate:     in.DueDate,
		ReminderAt:  in.ReminderAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var entry model.ActivityLogEntry
	err := s.store.InTx(ctx, func(tx store.Tx) error {
		if err := tx.InsertTodo(ctx, &todo); err != nil {
			return err
		}
		entry = activity.ForCreate(todo)
		entry.Timestamp = now
		return tx.InsertActivity(ctx, &entry)
	})
	if err != nil {
		s.log.Error("creating todo failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	s.log.Debug("todo created", "user_id", userID, "todo_id", todo.ID, "actions", actions(entry))
	return enrich(todo), nil
}

// Update applies patch to existing and logs whatever entries the change
// derives. Fields absent from patch are left untouched.
func (s *Service) Update(ctx context.Context, existing model.Todo, patch model.TodoPatch) (*model.Todo, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidTodo)
	}

	now := s.now().UTC()
	entries := activity.ForUpdate(existing, patch)
	updated := patch.Apply(existing)

	err := s.store.InTx(ctx, func(tx store.Tx) error {
		if err := tx.UpdateTodo(ctx, &updated); err != nil {
			return err
		}
		for i := range entries {
			entries[i].Timestamp = now
			if err := tx.InsertActivity(ctx, &entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("updating todo failed", "user_id", existing.UserID, "todo_id", existing.ID, "error", err)
		return nil, fmt.Errorf("updating todo %s: %w", existing.ID, err)
	}

	s.log.Debug("todo updated",
		"user_id", existing.UserID,
		"todo_id", existing.ID,
		"changed", activity.ChangedFields(existing, patch),
		"actions", actions(entries...),
	)
	return enrich(updated), nil
}

// Delete removes existing, detaches its prior entries and logs a DELETE
// entry. It returns the todo's last known state.
func (s *Service) Delete(ctx context.Context, existing model.Todo) (*model.Todo, error) {
	now := s.now().UTC()
	entry := activity.ForDelete(existing)
	entry.Timestamp = now

	var detached int64
	err := s.store.InTx(ctx, func(tx store.Tx) error {
		var err error
		if detached, err = tx.DetachActivity(ctx, existing.ID); err != nil {
			return err
		}
		if err := tx.InsertActivity(ctx, &entry); err != nil {
			return err
		}
		return tx.DeleteTodo(ctx, existing.UserID, existing.ID)
	})
	if err != nil {
		s.log.Error("deleting todo failed", "user_id", existing.UserID, "todo_id", existing.ID, "error", err)
		return nil, fmt.Errorf("deleting todo %s: %w", existing.ID, err)
	}

	s.log.Debug("todo deleted", "user_id", existing.UserID, "todo_id", existing.ID, "detached", detached)
	return enrich(existing), nil
}

// SetEmbeddedTask checks or unchecks the embedded task at lineIndex and runs
// the new content through Update. A line that is out of range or no longer
// a checkbox leaves the content as it was.
func (s *Service) SetEmbeddedTask(ctx context.Context, existing model.Todo, lineIndex int, completed bool) (*model.Todo, error) {
	content := embedded.SetStatus(existing.Content, lineIndex, completed)
	if content == existing.Content {
		s.log.Debug("embedded task unchanged", "todo_id", existing.ID, "line_index", lineIndex)
	}
	return s.Update(ctx, existing, model.TodoPatch{Content: &content})
}

// Get returns the todo with id owned by userID, or store.ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, id string) (*model.Todo, error) {
	todo, err := s.store.GetTodo(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return enrich(*todo), nil
}

// ListFilter narrows a todo listing.
type ListFilter struct {
	IsDocument  *bool
	IsCompleted *bool
	Offset      int
	Limit       int
}

// List returns a page of the user's todos, newest first, and the total count
// matching the filter.
func (s *Service) List(ctx context.Context, userID string, f ListFilter) ([]model.Todo, int, error) {
	if f.Offset < 0 || f.Limit < 0 {
		return nil, 0, fmt.Errorf("%w: offset %d, limit %d", ErrInvalidRange, f.Offset, f.Limit)
	}
	filter := store.TodoFilter{
		UserID:      userID,
		IsDocument:  f.IsDocument,
		IsCompleted: f.IsCompleted,
		Offset:      f.Offset,
		Limit:       f.Limit,
	}
	total, err := s.store.CountTodos(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if f.Limit == 0 {
		return []model.Todo{}, total, nil
	}
	todos, err := s.store.ListTodos(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range todos {
		todos[i].EmbeddedTasks = embedded.Parse(todos[i].Content)
	}
	return todos, total, nil
}

// enrich attaches freshly parsed embedded tasks.
func enrich(todo model.Todo) *model.Todo {
	todo.EmbeddedTasks = embedded.Parse(todo.Content)
	return &todo
}

func actions(entries ...model.ActivityLogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, string(e.ActionType))
	}
	return out
}
