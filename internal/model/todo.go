package model

import "time"

// Todo is a task or Markdown document owned by a single user.
// Its Content is the only source of truth for embedded tasks.
type Todo struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Content     string     `json:"content" db:"content"`
	IsCompleted bool       `json:"is_completed" db:"is_completed"`
	IsDocument  bool       `json:"is_document" db:"is_document"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	ReminderAt  *time.Time `json:"reminder_at,omitempty" db:"reminder_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	// EmbeddedTasks is derived from Content on every read and never stored.
	EmbeddedTasks []EmbeddedTask `json:"embedded_tasks" db:"-"`
}

// NewTodo carries the caller-supplied fields for a todo being created.
type NewTodo struct {
	Title       string
	Description string
	Content     string
	IsCompleted bool
	IsDocument  bool
	DueDate     *time.Time
	ReminderAt  *time.Time
}

// TodoPatch is a partial update. A nil field was not supplied and is left
// untouched. ClearDueDate and ClearReminder unset the matching timestamps.
type TodoPatch struct {
	Title         *string
	Description   *string
	Content       *string
	IsCompleted   *bool
	IsDocument    *bool
	DueDate       *time.Time
	ReminderAt    *time.Time
	ClearDueDate  bool
	ClearReminder bool
}

// Apply returns a copy of todo with the supplied patch fields written over it.
func (p TodoPatch) Apply(todo Todo) Todo {
	if p.Title != nil {
		todo.Title = *p.Title
	}
	if p.Description != nil {
		todo.Description = *p.Description
	}
	if p.Content != nil {
		todo.Content = *p.Content
	}
	if p.IsCompleted != nil {
		todo.IsCompleted = *p.IsCompleted
	}
	if p.IsDocument != nil {
		todo.IsDocument = *p.IsDocument
	}
	switch {
	case p.ClearDueDate:
		todo.DueDate = nil
	case p.DueDate != nil:
		d := *p.DueDate
		todo.DueDate = &d
	}
	switch {
	case p.ClearReminder:
		todo.ReminderAt = nil
	case p.ReminderAt != nil:
		r := *p.ReminderAt
		todo.ReminderAt = &r
	}
	return todo
}

// EmbeddedTask is a Markdown checkbox line inside a todo's content,
// addressed by its zero-based line position.
type EmbeddedTask struct {
	LineIndex   int    `json:"line_index"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
}
