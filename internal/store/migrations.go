package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS todos (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	title        TEXT NOT NULL CHECK(length(trim(title)) > 0),
	description  TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL DEFAULT '',
	is_completed INTEGER NOT NULL DEFAULT 0 CHECK(is_completed IN (0, 1)),
	is_document  INTEGER NOT NULL DEFAULT 0 CHECK(is_document IN (0, 1)),
	due_date     DATETIME,
	reminder_at  DATETIME,
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);
CREATE INDEX IF NOT EXISTS idx_todos_title ON todos(title);
CREATE INDEX IF NOT EXISTS idx_todos_user_created ON todos(user_id, created_at);

CREATE TABLE IF NOT EXISTS activity_logs (
	id                TEXT PRIMARY KEY,
	user_id           TEXT NOT NULL,
	todo_id           TEXT REFERENCES todos(id),
	action_type       TEXT NOT NULL CHECK(action_type IN
		('CREATE', 'COMPLETE', 'UNCOMPLETE', 'UPDATE_CONTENT', 'DELETE')),
	metadata_snapshot TEXT NOT NULL DEFAULT '{}',
	timestamp         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_logs_user_ts ON activity_logs(user_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_activity_logs_todo_id ON activity_logs(todo_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
