package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// StateDB is the SQLite database holding per-visitor key/value items, the
// server-side stand-in for a browser's local storage.
type StateDB struct {
	conn *sql.DB
}

// OpenStateDB opens (or creates) the SQLite file at path and initialises the schema.
func OpenStateDB(path string) (*StateDB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	// SQLite allows one writer at a time.
	conn.SetMaxOpenConns(1)

	db := &StateDB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init state schema: %w", err)
	}
	return db, nil
}

func (db *StateDB) Close() error {
	return db.conn.Close()
}

func (db *StateDB) initSchema() error {
	schema := `
	PRAGMA journal_mode=WAL;

	CREATE TABLE IF NOT EXISTS visitor_items (
		visitor_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (visitor_id, key)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// ForVisitor returns the item store scoped to one visitor.
func (db *StateDB) ForVisitor(visitorID string) *VisitorStorage {
	return &VisitorStorage{db: db, visitorID: visitorID}
}

// VisitorStorage is a GetItem/SetItem store for a single visitor.
type VisitorStorage struct {
	db        *StateDB
	visitorID string
}

func (s *VisitorStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT value FROM visitor_items WHERE visitor_id = ? AND key = ?`,
		s.visitorID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %q: %w", key, err)
	}
	return value, true, nil
}

func (s *VisitorStorage) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.conn.ExecContext(ctx, `
	INSERT INTO visitor_items (visitor_id, key, value, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(visitor_id, key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at
	`, s.visitorID, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("set item %q: %w", key, err)
	}
	return nil
}
