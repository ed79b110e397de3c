package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/todo-journal/internal/model"
)

const todoColumns = `id, user_id, title, description, content, is_completed, is_document,
	due_date, reminder_at, created_at, updated_at`

// InsertTodo inserts a new todo. Generates a UUID if ID is empty.
func (t *sqliteTx) InsertTodo(ctx context.Context, todo *model.Todo) error {
	if strings.TrimSpace(todo.Title) == "" {
		return fmt.Errorf("todo title must not be empty")
	}
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := t.now().UTC()
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}
	if todo.UpdatedAt.IsZero() {
		todo.UpdatedAt = todo.CreatedAt
	}
	todo.DueDate = utcPtr(todo.DueDate)
	todo.ReminderAt = utcPtr(todo.ReminderAt)

	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO todos (`+todoColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.Content,
		boolToInt(todo.IsCompleted), boolToInt(todo.IsDocument),
		todo.DueDate, todo.ReminderAt, todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return storageErr("creating todo", err)
	}
	return nil
}

// UpdateTodo updates an existing todo by ID and owner.
func (t *sqliteTx) UpdateTodo(ctx context.Context, todo *model.Todo) error {
	if strings.TrimSpace(todo.Title) == "" {
		return fmt.Errorf("todo title must not be empty")
	}
	todo.UpdatedAt = t.now().UTC()
	todo.DueDate = utcPtr(todo.DueDate)
	todo.ReminderAt = utcPtr(todo.ReminderAt)

	result, err := t.tx.ExecContext(ctx, `
		UPDATE todos SET
			title = ?, description = ?, content = ?,
			is_completed = ?, is_document = ?,
			due_date = ?, reminder_at = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		todo.Title, todo.Description, todo.Content,
		boolToInt(todo.IsCompleted), boolToInt(todo.IsDocument),
		todo.DueDate, todo.ReminderAt, todo.UpdatedAt,
		todo.ID, todo.UserID,
	)
	if err != nil {
		return storageErr("updating todo "+todo.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s: %w", todo.ID, ErrNotFound)
	}
	return nil
}

// DeleteTodo removes a todo by ID and owner.
func (t *sqliteTx) DeleteTodo(ctx context.Context, userID, id string) error {
	result, err := t.tx.ExecContext(ctx,
		"DELETE FROM todos WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return storageErr("deleting todo "+id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetTodo retrieves a single todo owned by userID.
func (s *SQLiteStore) GetTodo(
	ctx context.Context,
	userID, id string,
) (*model.Todo, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+todoColumns+" FROM todos WHERE id = ? AND user_id = ?", id, userID)

	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("getting todo "+id, err)
	}
	return &todo, nil
}

// ListTodos retrieves todos matching the filter.
func (s *SQLiteStore) ListTodos(
	ctx context.Context,
	filter TodoFilter,
) ([]model.Todo, error) {
	where, args := buildTodoWhere(filter)
	query := "SELECT " + todoColumns + " FROM todos" + where +
		" ORDER BY created_at DESC, rowid DESC"
	query = paginate(query, filter.Limit, filter.Offset)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("querying todos", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, storageErr("scanning todo row", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating todos", err)
	}
	return todos, nil
}

// CountTodos returns the count of todos matching the filter, ignoring
// pagination.
func (s *SQLiteStore) CountTodos(
	ctx context.Context,
	filter TodoFilter,
) (int, error) {
	where, args := buildTodoWhere(filter)

	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM todos"+where, args...); err != nil {
		return 0, storageErr("counting todos", err)
	}
	return count, nil
}

// buildTodoWhere constructs the WHERE clause and args for a TodoFilter.
func buildTodoWhere(filter TodoFilter) (string, []interface{}) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{filter.UserID}

	if filter.IsDocument != nil {
		conditions = append(conditions, "is_document = ?")
		args = append(args, boolToInt(*filter.IsDocument))
	}
	if filter.IsCompleted != nil {
		conditions = append(conditions, "is_completed = ?")
		args = append(args, boolToInt(*filter.IsCompleted))
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// scanTodo scans a todo row selected with todoColumns.
func scanTodo(row interface{ Scan(dest ...interface{}) error }) (model.Todo, error) {
	var (
		todo         model.Todo
		completedInt int
		documentInt  int
		dueDate      *time.Time
		reminderAt   *time.Time
	)

	err := row.Scan(
		&todo.ID, &todo.UserID, &todo.Title, &todo.Description, &todo.Content,
		&completedInt, &documentInt,
		&dueDate, &reminderAt, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		return model.Todo{}, err
	}

	todo.IsCompleted = completedInt != 0
	todo.IsDocument = documentInt != 0
	todo.DueDate = utcPtr(dueDate)
	todo.ReminderAt = utcPtr(reminderAt)
	todo.CreatedAt = todo.CreatedAt.UTC()
	todo.UpdatedAt = todo.UpdatedAt.UTC()
	return todo, nil
}
