package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/KiidxAtlas/pyhover"
)

// Compile-time interface verification.
var _ pyhover.Storage = (*Storage)(nil)

// Storage implements pyhover.Storage using SQLite. The single-connection DB
// serializes writers, so each upsert is atomic per key even with multiple
// host instances sharing the database file.
type Storage struct {
	db *DB
}

// NewStorage creates a new Storage.
func NewStorage(db *DB) *Storage {
	return &Storage{db: db}
}

// Get returns the value stored under key, or ok=false when absent. Expired
// records are the caller's concern; Get returns whatever is stored.
func (s *Storage) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM doc_cache WHERE key_hash = ?
	`, string(key)).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous record atomically.
func (s *Storage) Put(ctx context.Context, key []byte, value []byte, versionTag string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO doc_cache (key_hash, version_tag, value, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key_hash) DO UPDATE SET
			version_tag = excluded.version_tag,
			value = excluded.value,
			expires_at = excluded.expires_at
	`, string(key), versionTag, value, expiresAt.Unix())
	return err
}

// Delete removes the record stored under key, if any.
func (s *Storage) Delete(ctx context.Context, key []byte) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM doc_cache WHERE key_hash = ?
	`, string(key))
	return err
}

// DeleteVersion removes every record stored under versionTag; an empty tag
// removes all records.
func (s *Storage) DeleteVersion(ctx context.Context, versionTag string) error {
	if versionTag == "" {
		_, err := s.db.ExecContext(ctx, `DELETE FROM doc_cache`)
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM doc_cache WHERE version_tag = ?
	`, versionTag)
	return err
}

// SweepExpired removes records whose expiry has passed and reports how many
// were removed.
func (s *Storage) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM doc_cache WHERE expires_at <= ?
	`, now.Unix())
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
