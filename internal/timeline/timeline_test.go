package timeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo-journal/internal/model"
	"github.com/nhle/todo-journal/internal/store"
	"github.com/nhle/todo-journal/internal/timeline"
	"github.com/nhle/todo-journal/tests/testutil"
)

func seed(t *testing.T, s store.Store, user string, stamps ...time.Time) []*model.ActivityLogEntry {
	t.Helper()
	ctx := context.Background()
	entries := make([]*model.ActivityLogEntry, 0, len(stamps))
	require.NoError(t, s.InTx(ctx, func(tx store.Tx) error {
		for _, ts := range stamps {
			e := &model.ActivityLogEntry{
				UserID:           user,
				ActionType:       model.ActionCreate,
				MetadataSnapshot: map[string]string{"title": ts.Format(time.RFC3339)},
				Timestamp:        ts,
			}
			if err := tx.InsertActivity(ctx, e); err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	}))
	return entries
}

func TestTodayStart(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		offset int
		want   time.Time
	}{
		{
			name:   "UTC+8 just after local midnight",
			now:    time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC),
			offset: -480,
			want:   time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC),
		},
		{
			name:   "UTC+8 just before local midnight",
			now:    time.Date(2024, 1, 1, 15, 59, 0, 0, time.UTC),
			offset: -480,
			want:   time.Date(2023, 12, 31, 16, 0, 0, 0, time.UTC),
		},
		{
			name:   "UTC-5 early UTC morning is still yesterday locally",
			now:    time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC),
			offset: 300,
			want:   time.Date(2024, 3, 9, 5, 0, 0, 0, time.UTC),
		},
		{
			name:   "UTC",
			now:    time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC),
			offset: 0,
			want:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "half-hour zone",
			now:    time.Date(2024, 6, 1, 19, 0, 0, 0, time.UTC),
			offset: -330,
			want:   time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timeline.TodayStart(tt.now, tt.offset)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestTodayStartRejectsBadOffset(t *testing.T) {
	for _, off := range []int{-841, 721, 100000} {
		_, err := timeline.TodayStart(time.Now(), off)
		assert.ErrorIs(t, err, timeline.ErrInvalidRange, "offset %d", off)
	}
}

func TestListToday(t *testing.T) {
	s := testutil.NewTestStore(t)
	// 2024-01-02T00:30 at UTC+8.
	now := time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC)
	svc := timeline.NewService(s, timeline.WithClock(func() time.Time { return now }))

	entries := seed(t, s, "u1",
		time.Date(2024, 1, 1, 15, 59, 59, 0, time.UTC),
		time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 16, 20, 0, 0, time.UTC),
	)
	seed(t, s, "u2", time.Date(2024, 1, 1, 16, 10, 0, 0, time.UTC))

	got, err := svc.ListToday(context.Background(), "u1", -480)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entries[2].ID, got[0].ID)
	assert.Equal(t, entries[1].ID, got[1].ID)
	boundary := time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC)
	for _, e := range got {
		assert.False(t, e.Timestamp.Before(boundary))
	}

	_, err = svc.ListToday(context.Background(), "u1", 9999)
	assert.ErrorIs(t, err, timeline.ErrInvalidRange)
}

func TestListRecent(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := timeline.NewService(s, timeline.WithMaxLimit(2))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := seed(t, s, "u1", base, base.Add(time.Minute), base.Add(2*time.Minute), base.Add(3*time.Minute))
	ctx := context.Background()

	got, err := svc.ListRecent(ctx, "u1", 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 2, "limit is clamped to the configured maximum")
	assert.Equal(t, entries[2].ID, got[0].ID)
	assert.Equal(t, entries[1].ID, got[1].ID)

	empty, err := svc.ListRecent(ctx, "u1", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.ListRecent(ctx, "u1", -1, 10)
	assert.ErrorIs(t, err, timeline.ErrInvalidRange)
	_, err = svc.ListRecent(ctx, "u1", 0, -5)
	assert.ErrorIs(t, err, timeline.ErrInvalidRange)
}

func TestListForTodo(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := timeline.NewService(s)
	ctx := context.Background()

	todo := &model.Todo{UserID: "u1", Title: "tracked"}
	require.NoError(t, s.InTx(ctx, func(tx store.Tx) error { return tx.InsertTodo(ctx, todo) }))
	id := todo.ID
	require.NoError(t, s.InTx(ctx, func(tx store.Tx) error {
		if err := tx.InsertActivity(ctx, &model.ActivityLogEntry{UserID: "u1", TodoID: &id, ActionType: model.ActionCreate}); err != nil {
			return err
		}
		return tx.InsertActivity(ctx, &model.ActivityLogEntry{UserID: "u1", ActionType: model.ActionDelete})
	}))

	got, err := svc.ListForTodo(ctx, "u1", todo.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.ActionCreate, got[0].ActionType)
}
