// Package render formats todos and timeline entries for terminal output.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/nhle/todo-journal/internal/embedded"
	"github.com/nhle/todo-journal/internal/model"
	"github.com/nhle/todo-journal/internal/theme"
)

const timeLayout = "2006-01-02 15:04"

// TodoLine renders a todo as a single list row.
func TodoLine(todo model.Todo) string {
	mark := "[ ]"
	if todo.IsCompleted {
		mark = "[x]"
	}
	kind := ""
	if todo.IsDocument {
		kind = theme.MetaStyle.Render(" (doc)")
	}
	progress := ""
	if sum := embedded.Summarize(todo.Content); sum.Total > 0 {
		progress = theme.MetaStyle.Render(fmt.Sprintf(" %d/%d", sum.Done, sum.Total))
	}
	return fmt.Sprintf("%s %s%s%s  %s",
		theme.CheckboxStyle(todo.IsCompleted).Render(mark),
		theme.TitleStyle.Render(todo.Title),
		kind,
		progress,
		theme.MetaStyle.Render(todo.ID),
	)
}

// TodoDetail renders a todo with its embedded tasks inside a panel.
func TodoDetail(todo model.Todo, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(TodoLine(todo))
	b.WriteString("\n")
	if todo.Description != "" {
		b.WriteString(todo.Description + "\n")
	}
	if todo.DueDate != nil {
		b.WriteString(theme.MetaStyle.Render("due " + todo.DueDate.In(loc).Format(timeLayout)))
		b.WriteString("\n")
	}
	if todo.ReminderAt != nil {
		b.WriteString(theme.MetaStyle.Render("remind " + todo.ReminderAt.In(loc).Format(timeLayout)))
		b.WriteString("\n")
	}
	if len(todo.EmbeddedTasks) > 0 {
		b.WriteString("\n")
		for _, task := range todo.EmbeddedTasks {
			b.WriteString(EmbeddedTaskLine(task))
			b.WriteString("\n")
		}
	}
	b.WriteString(theme.MetaStyle.Render(fmt.Sprintf("created %s  updated %s",
		todo.CreatedAt.In(loc).Format(timeLayout), todo.UpdatedAt.In(loc).Format(timeLayout))))
	return theme.PanelStyle.Render(b.String())
}

// EmbeddedTaskLine renders one embedded task with its line index.
func EmbeddedTaskLine(task model.EmbeddedTask) string {
	mark := "[ ]"
	if task.IsCompleted {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %s %s",
		theme.MetaStyle.Render(fmt.Sprintf("%3d", task.LineIndex)),
		mark,
		theme.CheckboxStyle(task.IsCompleted).Render(task.Text),
	)
}

// ActivityLine renders one timeline entry in the viewer's location.
func ActivityLine(e model.ActivityLogEntry, loc *time.Location) string {
	title := e.MetadataSnapshot[model.SnapshotTitle]
	ref := ""
	if e.TodoID != nil {
		ref = theme.MetaStyle.Render(" " + *e.TodoID)
	} else if id, ok := e.MetadataSnapshot[model.SnapshotDeletedTodoID]; ok {
		ref = theme.MetaStyle.Render(" (deleted " + id + ")")
	}
	return fmt.Sprintf("%s %s %s%s",
		theme.MetaStyle.Render(e.Timestamp.In(loc).Format(timeLayout)),
		theme.ActionStyle(e.ActionType).Render(fmt.Sprintf("%-14s", e.ActionType)),
		title,
		ref,
	)
}

// Timeline renders a titled list of entries, or a hint when empty.
func Timeline(heading string, entries []model.ActivityLogEntry, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render(heading))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(theme.HelpStyle.Render("no activity"))
		return b.String()
	}
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(ActivityLine(e, loc))
	}
	return b.String()
}
