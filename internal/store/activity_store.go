package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/todo-journal/internal/model"
)

// InsertActivity appends an activity log entry. Timestamps are stored as
// UTC unix nanoseconds so range filters and ordering compare exactly.
func (t *sqliteTx) InsertActivity(ctx context.Context, entry *model.ActivityLogEntry) error {
	if !entry.ActionType.Valid() {
		return fmt.Errorf("unknown action type %q", entry.ActionType)
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = t.now()
	}
	entry.Timestamp = entry.Timestamp.UTC()

	snapshot := entry.MetadataSnapshot
	if snapshot == nil {
		snapshot = map[string]string{}
	}
	metadata, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshaling metadata snapshot: %w", err)
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO activity_logs (id, user_id, todo_id, action_type, metadata_snapshot, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.TodoID, string(entry.ActionType),
		string(metadata), entry.Timestamp.UnixNano(),
	)
	if err != nil {
		return storageErr("appending activity", err)
	}
	return nil
}

// DetachActivity nulls the todo reference on every entry for todoID.
func (t *sqliteTx) DetachActivity(ctx context.Context, todoID string) (int64, error) {
	result, err := t.tx.ExecContext(ctx,
		"UPDATE activity_logs SET todo_id = NULL WHERE todo_id = ?", todoID)
	if err != nil {
		return 0, storageErr("detaching activity for todo "+todoID, err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

// ListActivity retrieves activity entries matching the filter, newest first.
// Entries sharing a timestamp come back in reverse insertion order.
func (s *SQLiteStore) ListActivity(
	ctx context.Context,
	filter ActivityFilter,
) ([]model.ActivityLogEntry, error) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{filter.UserID}

	if filter.TodoID != nil {
		conditions = append(conditions, "todo_id = ?")
		args = append(args, *filter.TodoID)
	}
	if filter.Since != nil {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filter.Since.UTC().UnixNano())
	}

	query := `SELECT id, user_id, todo_id, action_type, metadata_snapshot, timestamp
		FROM activity_logs WHERE ` + strings.Join(conditions, " AND ") +
		" ORDER BY timestamp DESC, rowid DESC"
	query = paginate(query, filter.Limit, filter.Offset)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("querying activity", err)
	}
	defer rows.Close()

	entries := make([]model.ActivityLogEntry, 0)
	for rows.Next() {
		entry, err := scanActivity(rows)
		if err != nil {
			return nil, storageErr("scanning activity row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating activity", err)
	}
	return entries, nil
}

// scanActivity scans an activity_logs row.
func scanActivity(row interface{ Scan(dest ...interface{}) error }) (model.ActivityLogEntry, error) {
	var (
		entry      model.ActivityLogEntry
		todoID     *string
		actionType string
		metadata   string
		unixNano   int64
	)

	err := row.Scan(
		&entry.ID, &entry.UserID, &todoID, &actionType, &metadata, &unixNano,
	)
	if err != nil {
		return model.ActivityLogEntry{}, err
	}

	entry.TodoID = todoID
	entry.ActionType = model.ActionType(actionType)
	entry.Timestamp = time.Unix(0, unixNano).UTC()
	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &entry.MetadataSnapshot); err != nil {
			return model.ActivityLogEntry{}, fmt.Errorf("unmarshaling metadata snapshot: %w", err)
		}
	}
	return entry, nil
}
