package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
)

// read loads the blob. Any failure — missing row, corrupted JSON, driver
// error — degrades to the default empty shape: a broken store behaves
// like a fresh one and is never surfaced to callers.
func (s *Store) read() *blob {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, rootKey).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return defaultBlob()
	case err != nil:
		slog.Warn("failed to read store, using defaults", "error", err)
		return defaultBlob()
	}

	b := defaultBlob()
	if err := json.Unmarshal([]byte(value), b); err != nil {
		slog.Warn("corrupted store blob, using defaults", "error", err)
		return defaultBlob()
	}
	if b.Progress == nil {
		b.Progress = map[string]int{}
	}
	return b
}

// write persists the blob. Failures are logged and swallowed.
func (s *Store) write(b *blob) {
	value, err := json.Marshal(b)
	if err != nil {
		slog.Error("failed to encode store blob", "error", err)
		return
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		rootKey, string(value),
	)
	if err != nil {
		slog.Error("failed to write store blob", "error", err)
	}
}
