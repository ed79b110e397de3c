package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTodoPatchApply(t *testing.T) {
	due := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	base := Todo{ID: "t1", Title: "old", Content: "- [ ] a", DueDate: &due}

	title := "new"
	done := true
	got := TodoPatch{Title: &title, IsCompleted: &done}.Apply(base)

	assert.Equal(t, "new", got.Title)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, "- [ ] a", got.Content)
	assert.Equal(t, &due, got.DueDate)
	assert.Equal(t, "old", base.Title, "input must not be mutated")
}

func TestTodoPatchApplyClearsTimestamps(t *testing.T) {
	due := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	base := Todo{DueDate: &due, ReminderAt: &due}

	got := TodoPatch{ClearDueDate: true, ClearReminder: true}.Apply(base)

	assert.Nil(t, got.DueDate)
	assert.Nil(t, got.ReminderAt)
}

func TestActionTypeValid(t *testing.T) {
	assert.True(t, ActionUpdateContent.Valid())
	assert.False(t, ActionType("RENAME").Valid())
}
