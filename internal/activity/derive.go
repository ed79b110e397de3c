// Package activity decides which activity log entries a todo mutation
// produces. Every function here is pure: it builds entries and leaves
// persistence, ids and timestamps to the caller.
package activity

import (
	"time"

	"github.com/nhle/todo-journal/internal/model"
)

// Field names a todo attribute supplied in an update.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldContent     Field = "content"
	FieldIsCompleted Field = "is_completed"
	FieldIsDocument  Field = "is_document"
	FieldDueDate     Field = "due_date"
	FieldReminderAt  Field = "reminder_at"
)

// ChangedFields lists the fields whose supplied value differs from old,
// in a fixed order. Fields absent from the patch are never reported.
func ChangedFields(old model.Todo, patch model.TodoPatch) []Field {
	var fields []Field
	if patch.Title != nil && *patch.Title != old.Title {
		fields = append(fields, FieldTitle)
	}
	if patch.Description != nil && *patch.Description != old.Description {
		fields = append(fields, FieldDescription)
	}
	if patch.Content != nil && *patch.Content != old.Content {
		fields = append(fields, FieldContent)
	}
	if patch.IsCompleted != nil && *patch.IsCompleted != old.IsCompleted {
		fields = append(fields, FieldIsCompleted)
	}
	if patch.IsDocument != nil && *patch.IsDocument != old.IsDocument {
		fields = append(fields, FieldIsDocument)
	}
	if timeChanged(old.DueDate, patch.DueDate, patch.ClearDueDate) {
		fields = append(fields, FieldDueDate)
	}
	if timeChanged(old.ReminderAt, patch.ReminderAt, patch.ClearReminder) {
		fields = append(fields, FieldReminderAt)
	}
	return fields
}

// ForCreate returns the single CREATE entry for a new todo.
func ForCreate(todo model.Todo) model.ActivityLogEntry {
	return entry(todo, model.ActionCreate, todo.Title)
}

// ForUpdate returns the entries an update produces, in order: a COMPLETE or
// UNCOMPLETE entry when the completion flag flips, then an UPDATE_CONTENT
// entry when content or title change. Both may fire; description, dates and
// is_document never do.
func ForUpdate(old model.Todo, patch model.TodoPatch) []model.ActivityLogEntry {
	var entries []model.ActivityLogEntry

	if patch.IsCompleted != nil && *patch.IsCompleted != old.IsCompleted {
		action := model.ActionUncomplete
		if *patch.IsCompleted {
			action = model.ActionComplete
		}
		entries = append(entries, entry(old, action, old.Title))
	}

	contentChanged := patch.Content != nil && *patch.Content != old.Content
	titleChanged := patch.Title != nil && *patch.Title != old.Title
	if contentChanged || titleChanged {
		title := old.Title
		if patch.Title != nil {
			title = *patch.Title
		}
		entries = append(entries, entry(old, model.ActionUpdateContent, title))
	}

	return entries
}

// ForDelete returns the DELETE entry for a todo being removed. It carries no
// todo reference since the todo will no longer exist.
func ForDelete(todo model.Todo) model.ActivityLogEntry {
	e := entry(todo, model.ActionDelete, todo.Title)
	e.TodoID = nil
	e.MetadataSnapshot[model.SnapshotDeletedTodoID] = todo.ID
	return e
}

func entry(todo model.Todo, action model.ActionType, title string) model.ActivityLogEntry {
	var todoID *string
	if todo.ID != "" {
		id := todo.ID
		todoID = &id
	}
	return model.ActivityLogEntry{
		UserID:           todo.UserID,
		TodoID:           todoID,
		ActionType:       action,
		MetadataSnapshot: map[string]string{model.SnapshotTitle: title},
	}
}

// timeChanged mirrors TodoPatch.Apply: clear wins over a supplied value.
func timeChanged(old, supplied *time.Time, cleared bool) bool {
	switch {
	case cleared:
		return old != nil
	case supplied == nil:
		return false
	case old == nil:
		return true
	default:
		return !old.Equal(*supplied)
	}
}
