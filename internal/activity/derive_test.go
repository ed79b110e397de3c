package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo-journal/internal/model"
)

func ptr[T any](v T) *T { return &v }

func baseTodo() model.Todo {
	return model.Todo{
		ID:      "todo-1",
		UserID:  "user-1",
		Title:   "Groceries",
		Content: "- [ ] buy milk\n- [x] pay rent\n\nnotes",
	}
}

func TestForCreate(t *testing.T) {
	e := ForCreate(baseTodo())

	assert.Equal(t, model.ActionCreate, e.ActionType)
	assert.Equal(t, "user-1", e.UserID)
	require.NotNil(t, e.TodoID)
	assert.Equal(t, "todo-1", *e.TodoID)
	assert.Equal(t, map[string]string{"title": "Groceries"}, e.MetadataSnapshot)
}

func TestForUpdate(t *testing.T) {
	tests := []struct {
		name    string
		patch   model.TodoPatch
		actions []model.ActionType
		titles  []string
	}{
		{
			name:    "complete",
			patch:   model.TodoPatch{IsCompleted: ptr(true)},
			actions: []model.ActionType{model.ActionComplete},
			titles:  []string{"Groceries"},
		},
		{
			name:  "completion unchanged",
			patch: model.TodoPatch{IsCompleted: ptr(false)},
		},
		{
			name:    "content change",
			patch:   model.TodoPatch{Content: ptr("- [x] buy milk\n- [x] pay rent\n\nnotes")},
			actions: []model.ActionType{model.ActionUpdateContent},
			titles:  []string{"Groceries"},
		},
		{
			name:    "rename uses new title",
			patch:   model.TodoPatch{Title: ptr("Shopping")},
			actions: []model.ActionType{model.ActionUpdateContent},
			titles:  []string{"Shopping"},
		},
		{
			name:    "complete and rename log twice",
			patch:   model.TodoPatch{IsCompleted: ptr(true), Title: ptr("Shopping")},
			actions: []model.ActionType{model.ActionComplete, model.ActionUpdateContent},
			titles:  []string{"Groceries", "Shopping"},
		},
		{
			name:    "content and title together log once",
			patch:   model.TodoPatch{Title: ptr("Shopping"), Content: ptr("new")},
			actions: []model.ActionType{model.ActionUpdateContent},
			titles:  []string{"Shopping"},
		},
		{
			name:  "same title and content supplied",
			patch: model.TodoPatch{Title: ptr("Groceries"), Content: ptr(baseTodo().Content)},
		},
		{
			name: "untracked fields never log",
			patch: model.TodoPatch{
				Description: ptr("weekly"),
				IsDocument:  ptr(true),
				DueDate:     ptr(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)),
				ReminderAt:  ptr(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := ForUpdate(baseTodo(), tt.patch)
			require.Len(t, entries, len(tt.actions))
			for i, e := range entries {
				assert.Equal(t, tt.actions[i], e.ActionType)
				assert.Equal(t, tt.titles[i], e.MetadataSnapshot[model.SnapshotTitle])
				assert.Equal(t, "user-1", e.UserID)
				require.NotNil(t, e.TodoID)
				assert.Equal(t, "todo-1", *e.TodoID)
			}
		})
	}
}

func TestForUpdateUncomplete(t *testing.T) {
	old := baseTodo()
	old.IsCompleted = true

	entries := ForUpdate(old, model.TodoPatch{IsCompleted: ptr(false)})
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionUncomplete, entries[0].ActionType)
}

func TestForUpdateDeterministic(t *testing.T) {
	patch := model.TodoPatch{IsCompleted: ptr(true), Content: ptr("x")}
	assert.Equal(t, ForUpdate(baseTodo(), patch), ForUpdate(baseTodo(), patch))
}

func TestForDelete(t *testing.T) {
	e := ForDelete(baseTodo())

	assert.Equal(t, model.ActionDelete, e.ActionType)
	assert.Nil(t, e.TodoID)
	assert.Equal(t, map[string]string{
		"title":           "Groceries",
		"deleted_todo_id": "todo-1",
	}, e.MetadataSnapshot)
}

func TestChangedFields(t *testing.T) {
	due := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	old := baseTodo()
	old.DueDate = &due

	assert.Empty(t, ChangedFields(old, model.TodoPatch{}))
	assert.Empty(t, ChangedFields(old, model.TodoPatch{DueDate: ptr(due), Title: ptr("Groceries")}))
	assert.Equal(t,
		[]Field{FieldTitle, FieldIsCompleted, FieldDueDate, FieldReminderAt},
		ChangedFields(old, model.TodoPatch{
			Title:        ptr("New"),
			IsCompleted:  ptr(true),
			ClearDueDate: true,
			ReminderAt:   ptr(due),
		}),
	)
}
