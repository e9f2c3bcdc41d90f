package postgres

import (
	"context"
	"database/sql"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// MediaPostgres is a PostgreSQL implementation of repository.MediaRepository.
type MediaPostgres struct {
	db *sql.DB
}

// NewMediaPostgres creates a new MediaPostgres repository.
func NewMediaPostgres(db *sql.DB) *MediaPostgres {
	return &MediaPostgres{db: db}
}

var _ repository.MediaRepository = (*MediaPostgres)(nil)

const mediaColumns = `id, url, public_id, resource_type, storage_type, original_name, size, mime_type, uploaded_by, created_at`

func scanMedia(row rowScanner) (*model.Media, error) {
	var (
		m          model.Media
		uploadedBy sql.NullString
	)
	if err := row.Scan(
		&m.ID,
		&m.URL,
		&m.PublicID,
		&m.ResourceType,
		&m.StorageType,
		&m.OriginalName,
		&m.Size,
		&m.MimeType,
		&uploadedBy,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.UploadedBy = uploadedBy.String
	return &m, nil
}

// Create inserts a media row and returns the stored record.
func (r *MediaPostgres) Create(ctx context.Context, m *model.Media) (*model.Media, error) {
	const q = `
		INSERT INTO media (id, url, public_id, resource_type, storage_type, original_name, size, mime_type, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + mediaColumns
	row := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.URL,
		m.PublicID,
		m.ResourceType,
		m.StorageType,
		m.OriginalName,
		m.Size,
		m.MimeType,
		nullString(m.UploadedBy),
		m.CreatedAt,
	)
	out, err := scanMedia(row)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// FindByID fetches a single media record by its ID.
func (r *MediaPostgres) FindByID(ctx context.Context, id string) (*model.Media, error) {
	const q = `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`
	return scanMedia(r.db.QueryRowContext(ctx, q, id))
}

// List returns media newest first, optionally filtered by resource type.
func (r *MediaPostgres) List(ctx context.Context, f repository.MediaFilter, pq repository.PageQuery) (*repository.PageResult[model.Media], error) {
	// $1 = '' disables the filter so one statement serves both cases.
	const qCount = `SELECT COUNT(*) FROM media WHERE ($1 = '' OR resource_type = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, string(f.ResourceType)).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + mediaColumns + `
		FROM media
		WHERE ($1 = '' OR resource_type = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, string(f.ResourceType), pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Media]{Items: items, Total: total}, nil
}

// Delete removes a media row by ID.
func (r *MediaPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
