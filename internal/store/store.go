// Package store persists extracted records and the raw uploads they came
// from. Records are JSON payloads addressed by kind and key.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
)

// ErrNotFound is returned when a record or upload does not exist.
var ErrNotFound = errors.New("not found")

// Driver names accepted by Open.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// CurrentKey addresses the single record of kinds that keep only the
// latest document (classification, calendar, top scorers, schedule).
const CurrentKey = "current"

// RecordStore keeps one JSON payload per (kind, key).
type RecordStore interface {
	Put(ctx context.Context, kind league.Kind, key string, payload []byte) error
	Get(ctx context.Context, kind league.Kind, key string) ([]byte, error)
	Delete(ctx context.Context, kind league.Kind, key string) error
	Keys(ctx context.Context, kind league.Kind) ([]string, error)
}

// Upload is an archived raw document.
type Upload struct {
	ID          string      `json:"id"`
	Kind        league.Kind `json:"kind"`
	Filename    string      `json:"filename"`
	ContentType string      `json:"content_type"`
	Size        int64       `json:"size"`
	CreatedAt   time.Time   `json:"created_at"`
	Data        []byte      `json:"-"`
}

// UploadArchive stores raw uploads for later reprocessing.
type UploadArchive interface {
	SaveUpload(ctx context.Context, u *Upload) error
	// Uploads returns the uploads of kind, oldest first. An empty kind
	// lists every upload.
	Uploads(ctx context.Context, kind league.Kind) ([]Upload, error)
}

// Backend bundles the persistence used by the service.
type Backend interface {
	RecordStore
	UploadArchive
	HealthCheck(ctx context.Context) error
	Close() error
}

// Open returns the backend for driver. dsn is the connection string for
// postgres and the database path for sqlite (defaulting to a file in
// dataDir); the file driver keeps everything under dataDir.
func Open(driver, dsn, dataDir string) (Backend, error) {
	switch driver {
	case DriverFile, "":
		return NewFileStore(dataDir)
	case DriverPostgres:
		db, err := OpenPostgres(dsn)
		if err != nil {
			return nil, err
		}
		return newMigratedSQLStore(db)
	case DriverSQLite:
		if dsn == "" {
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data dir: %w", err)
			}
			dsn = filepath.Join(dataDir, "realtajo.db")
		}
		db, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return newMigratedSQLStore(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func newMigratedSQLStore(db *Database) (*SQLStore, error) {
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQLStore(db), nil
}
