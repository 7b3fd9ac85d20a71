package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
)

// SQLStore keeps records in the records table and embeds the upload
// repository sharing the same connection.
type SQLStore struct {
	*UploadRepository
	db *Database
}

// NewSQLStore wraps a migrated database.
func NewSQLStore(db *Database) *SQLStore {
	return &SQLStore{UploadRepository: NewUploadRepository(db), db: db}
}

// Put inserts or replaces a record
func (s *SQLStore) Put(ctx context.Context, kind league.Kind, key string, payload []byte) error {
	query := `
		INSERT INTO records (kind, record_key, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (kind, record_key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`
	_, err := s.db.DB().ExecContext(ctx, s.db.rebind(query), string(kind), key, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upserting %s/%s: %w", kind, key, err)
	}
	return nil
}

// Get returns the payload of a record
func (s *SQLStore) Get(ctx context.Context, kind league.Kind, key string) ([]byte, error) {
	query := `SELECT payload FROM records WHERE kind = ? AND record_key = ?`

	var payload []byte
	err := s.db.DB().QueryRowContext(ctx, s.db.rebind(query), string(kind), key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", kind, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s/%s: %w", kind, key, err)
	}
	return payload, nil
}

// Delete removes a record
func (s *SQLStore) Delete(ctx context.Context, kind league.Kind, key string) error {
	query := `DELETE FROM records WHERE kind = ? AND record_key = ?`

	res, err := s.db.DB().ExecContext(ctx, s.db.rebind(query), string(kind), key)
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", kind, key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s/%s: %w", kind, key, ErrNotFound)
	}
	return nil
}

// Keys lists the record keys of kind in ascending order
func (s *SQLStore) Keys(ctx context.Context, kind league.Kind) ([]string, error) {
	query := `SELECT record_key FROM records WHERE kind = ? ORDER BY record_key`

	rows, err := s.db.DB().QueryContext(ctx, s.db.rebind(query), string(kind))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// HealthCheck pings the database.
func (s *SQLStore) HealthCheck(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// Close closes the connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
