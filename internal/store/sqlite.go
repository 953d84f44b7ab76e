package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// sqliteKV persists scoped key-value pairs in the kv table.
type sqliteKV struct{ db *sql.DB }

// NewSQLiteKV constructs a KV backed by an open SQLite handle. The kv
// table is created by the migrations in sql/.
func NewSQLiteKV(db *sql.DB) KV { return &sqliteKV{db: db} }

func (s *sqliteKV) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE scope=? AND key=?`, scope, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %s/%s: %w", scope, key, err)
	}
	return v, true, nil
}

func (s *sqliteKV) Set(ctx context.Context, scope, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv(scope, key, value) VALUES(?,?,?)
		 ON CONFLICT(scope, key) DO UPDATE SET value=excluded.value`,
		scope, key, value,
	)
	if err != nil {
		return fmt.Errorf("kv set %s/%s: %w", scope, key, err)
	}
	return nil
}

func (s *sqliteKV) Delete(ctx context.Context, scope, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE scope=? AND key=?`, scope, key,
	)
	if err != nil {
		return fmt.Errorf("kv delete %s/%s: %w", scope, key, err)
	}
	return nil
}
