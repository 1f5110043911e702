package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Get returns the value stored under key and whether it exists.
func (db *DB) Get(key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value stored under key.
func (db *DB) Set(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Remove deletes the given keys in one transaction. Missing keys are ignored.
func (db *DB) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	for _, key := range keys {
		if _, err := tx.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("remove %q: %w", key, err)
		}
	}
	return tx.Commit()
}

// All returns every stored key/value pair.
func (db *DB) All() (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}
