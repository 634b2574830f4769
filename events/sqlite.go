package events

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteLog is a Log persisted in a SQLite database.
type SQLiteLog struct {
	db *sql.DB
}

// NewSQLiteLog opens (or creates) the event log at dbPath.
// Use ":memory:" for an ephemeral database.
func NewSQLiteLog(dbPath string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("events: open database: %w", err)
	}

	l := &SQLiteLog{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("events: migrate: %w", err)
	}
	return l, nil
}

func (l *SQLiteLog) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		token_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_token ON events(token_id, seq);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Append implements Log.
func (l *SQLiteLog) Append(ctx context.Context, e *Event) error {
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO events (id, token_id, type, data, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.TokenID, e.Type, string(e.Data), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("events: append: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("events: append: %w", err)
	}
	e.Seq = uint64(seq)
	return nil
}

// Read implements Log.
func (l *SQLiteLog) Read(ctx context.Context, tokenID uint64, after uint64) ([]*Event, error) {
	query := `SELECT seq, id, token_id, type, data, created_at FROM events WHERE seq > ?`
	args := []any{after}
	if tokenID != 0 {
		query += ` AND token_id = ?`
		args = append(args, tokenID)
	}
	query += ` ORDER BY seq`

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("events: read: %w", err)
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		var e Event
		var data string
		if err := rows.Scan(&e.Seq, &e.ID, &e.TokenID, &e.Type, &data, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("events: scan: %w", err)
		}
		e.Data = []byte(data)
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Close implements Log.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}

var _ Log = (*SQLiteLog)(nil)
