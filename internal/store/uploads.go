package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
)

// UploadRepository archives raw uploads in the uploads table.
type UploadRepository struct {
	db *Database
}

// NewUploadRepository creates a new upload repository
func NewUploadRepository(db *Database) *UploadRepository {
	return &UploadRepository{db: db}
}

// prepareUpload assigns the id, size and timestamp of a new upload.
func prepareUpload(u *Upload) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Size = int64(len(u.Data))
}

// SaveUpload stores u, filling its id and timestamp.
func (r *UploadRepository) SaveUpload(ctx context.Context, u *Upload) error {
	prepareUpload(u)
	query := `
		INSERT INTO uploads (id, kind, filename, content_type, size, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.DB().ExecContext(ctx, r.db.rebind(query),
		u.ID, string(u.Kind), u.Filename, u.ContentType, u.Size, u.Data, u.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting upload: %w", err)
	}
	return nil
}

// Uploads returns archived uploads oldest first.
func (r *UploadRepository) Uploads(ctx context.Context, kind league.Kind) ([]Upload, error) {
	query := `
		SELECT id, kind, filename, content_type, size, data, created_at
		FROM uploads
	`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.DB().QueryContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying uploads: %w", err)
	}
	defer rows.Close()

	var uploads []Upload
	for rows.Next() {
		var (
			u       Upload
			k       string
			created int64
		)
		if err := rows.Scan(&u.ID, &k, &u.Filename, &u.ContentType, &u.Size, &u.Data, &created); err != nil {
			return nil, fmt.Errorf("scanning upload: %w", err)
		}
		u.Kind = league.Kind(k)
		u.CreatedAt = time.Unix(0, created).UTC()
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}
