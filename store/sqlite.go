package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/token"
)

// SQLiteStore persists engine state in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath.
// Use ":memory:" for an ephemeral database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tokens (
		token_id INTEGER PRIMARY KEY,
		game_id INTEGER NOT NULL DEFAULT 0,
		game_address TEXT NOT NULL DEFAULT '',
		minter_id INTEGER NOT NULL,
		lifecycle_start INTEGER NOT NULL DEFAULT 0,
		lifecycle_end INTEGER NOT NULL DEFAULT 0,
		player_name TEXT NOT NULL DEFAULT '',
		has_context INTEGER NOT NULL DEFAULT 0,
		settings_id INTEGER NOT NULL DEFAULT 0,
		has_settings INTEGER NOT NULL DEFAULT 0,
		client_url TEXT NOT NULL DEFAULT '',
		renderer TEXT NOT NULL DEFAULT '',
		soulbound INTEGER NOT NULL DEFAULT 0,
		objective_ids TEXT NOT NULL DEFAULT '[]',
		completed_objectives TEXT NOT NULL DEFAULT '[]',
		score INTEGER NOT NULL DEFAULT 0,
		game_over INTEGER NOT NULL DEFAULT 0,
		completed_all INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS minters (
		minter_id INTEGER PRIMARY KEY,
		address TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS games (
		game_id INTEGER PRIMARY KEY,
		address TEXT NOT NULL UNIQUE
	);

	CREATE INDEX IF NOT EXISTS idx_tokens_minter ON tokens(minter_id);
	CREATE INDEX IF NOT EXISTS idx_tokens_game ON tokens(game_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// PutToken implements Store.
func (s *SQLiteStore) PutToken(ctx context.Context, r *token.Record) error {
	objectives, err := json.Marshal(r.ObjectiveIDs)
	if err != nil {
		return fmt.Errorf("store: encode objectives: %w", err)
	}
	completed, err := json.Marshal(r.CompletedObjectives)
	if err != nil {
		return fmt.Errorf("store: encode completed objectives: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO tokens (
			token_id, game_id, game_address, minter_id,
			lifecycle_start, lifecycle_end,
			player_name, has_context, settings_id, has_settings,
			client_url, renderer, soulbound,
			objective_ids, completed_objectives,
			score, game_over, completed_all
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.TokenID, r.GameID, addrText(r.GameAddress), r.MinterID,
		r.Lifecycle.Start, r.Lifecycle.End,
		r.PlayerName, r.HasContext, r.SettingsID, r.HasSettings,
		r.ClientURL, addrText(r.Renderer), r.Soulbound,
		string(objectives), string(completed),
		r.Score, r.GameOver, r.CompletedAllObjectives,
	)
	if err != nil {
		return fmt.Errorf("store: put token %d: %w", r.TokenID, err)
	}
	return nil
}

// GetToken implements Store.
func (s *SQLiteStore) GetToken(ctx context.Context, id uint64) (*token.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT token_id, game_id, game_address, minter_id,
			lifecycle_start, lifecycle_end,
			player_name, has_context, settings_id, has_settings,
			client_url, renderer, soulbound,
			objective_ids, completed_objectives,
			score, game_over, completed_all
		 FROM tokens WHERE token_id = ?`, id,
	)

	var r token.Record
	var gameAddr, renderer, objectives, completed string
	err := row.Scan(&r.TokenID, &r.GameID, &gameAddr, &r.MinterID,
		&r.Lifecycle.Start, &r.Lifecycle.End,
		&r.PlayerName, &r.HasContext, &r.SettingsID, &r.HasSettings,
		&r.ClientURL, &renderer, &r.Soulbound,
		&objectives, &completed,
		&r.Score, &r.GameOver, &r.CompletedAllObjectives)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: token %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get token %d: %w", id, err)
	}

	if r.GameAddress, err = addrFromText(gameAddr); err != nil {
		return nil, fmt.Errorf("store: token %d: %w", id, err)
	}
	if r.Renderer, err = addrFromText(renderer); err != nil {
		return nil, fmt.Errorf("store: token %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(objectives), &r.ObjectiveIDs); err != nil {
		return nil, fmt.Errorf("store: token %d objectives: %w", id, err)
	}
	if err := json.Unmarshal([]byte(completed), &r.CompletedObjectives); err != nil {
		return nil, fmt.Errorf("store: token %d completed objectives: %w", id, err)
	}
	return &r, nil
}

// HasToken implements Store.
func (s *SQLiteStore) HasToken(ctx context.Context, id uint64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tokens WHERE token_id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("store: has token %d: %w", id, err)
	}
	return n > 0, nil
}

// MaxTokenID implements Store.
func (s *SQLiteStore) MaxTokenID(ctx context.Context) (uint64, error) {
	var max sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(token_id) FROM tokens`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("store: max token id: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return uint64(max.Int64), nil
}

// PutMinter implements Store.
func (s *SQLiteStore) PutMinter(ctx context.Context, id uint64, addr felt.Address) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO minters (minter_id, address) VALUES (?, ?)`,
		id, addrText(addr),
	)
	if err != nil {
		return fmt.Errorf("store: put minter %d: %w", id, err)
	}
	return nil
}

// Minters implements Store.
func (s *SQLiteStore) Minters(ctx context.Context) ([]Entry, error) {
	return s.entries(ctx, `SELECT minter_id, address FROM minters ORDER BY minter_id`)
}

// PutGame implements Store.
func (s *SQLiteStore) PutGame(ctx context.Context, id uint64, addr felt.Address) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO games (game_id, address) VALUES (?, ?)`,
		id, addrText(addr),
	)
	if err != nil {
		return fmt.Errorf("store: put game %d: %w", id, err)
	}
	return nil
}

// Games implements Store.
func (s *SQLiteStore) Games(ctx context.Context) ([]Entry, error) {
	return s.entries(ctx, `SELECT game_id, address FROM games ORDER BY game_id`)
}

func (s *SQLiteStore) entries(ctx context.Context, query string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: read registry: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var addr string
		if err := rows.Scan(&e.ID, &addr); err != nil {
			return nil, fmt.Errorf("store: scan registry: %w", err)
		}
		if e.Address, err = addrFromText(addr); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func addrText(a felt.Address) string {
	if a.IsZero() {
		return ""
	}
	return a.Hex()
}

func addrFromText(s string) (felt.Address, error) {
	if s == "" {
		return felt.Zero, nil
	}
	return felt.FromHex(s)
}

var _ Store = (*SQLiteStore)(nil)
