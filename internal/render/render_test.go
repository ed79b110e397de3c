package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/todo-journal/internal/embedded"
	"github.com/nhle/todo-journal/internal/model"
)

func TestTodoLineShowsProgress(t *testing.T) {
	todo := model.Todo{ID: "t1", Title: "Groceries", Content: "- [ ] a\n- [x] b"}
	out := TodoLine(todo)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "t1")
}

func TestTodoDetailListsEmbeddedTasks(t *testing.T) {
	content := "- [ ] buy milk\n- [x] pay rent"
	todo := model.Todo{ID: "t1", Title: "Groceries", Content: content, EmbeddedTasks: embedded.Parse(content)}
	out := TodoDetail(todo, time.UTC)
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "pay rent")
}

func TestActivityLineDeletedReference(t *testing.T) {
	e := model.ActivityLogEntry{
		ActionType:       model.ActionDelete,
		MetadataSnapshot: map[string]string{"title": "Groceries", "deleted_todo_id": "t1"},
		Timestamp:        time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC),
	}
	out := ActivityLine(e, time.FixedZone("UTC+8", 8*3600))
	assert.Contains(t, out, "2024-01-02 00:00")
	assert.Contains(t, out, "DELETE")
	assert.Contains(t, out, "deleted t1")
}

func TestTimelineEmpty(t *testing.T) {
	assert.Contains(t, Timeline("Today", nil, time.UTC), "no activity")
}
