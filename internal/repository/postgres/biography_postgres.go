package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// BiographyPostgres is a PostgreSQL implementation of repository.BiographyRepository.
// Sections are stored as a JSONB array.
type BiographyPostgres struct {
	db *sql.DB
}

// NewBiographyPostgres creates a new BiographyPostgres repository.
func NewBiographyPostgres(db *sql.DB) *BiographyPostgres {
	return &BiographyPostgres{db: db}
}

var _ repository.BiographyRepository = (*BiographyPostgres)(nil)

const biographySelect = `
	SELECT b.id, b.title, b.content, b.sections, b.created_at, b.updated_at,
		m.id, m.url, m.public_id, m.resource_type
	FROM biographies b
	LEFT JOIN media m ON m.id = b.image_media_id
`

func scanBiography(row rowScanner) (*model.Biography, error) {
	var (
		b        model.Biography
		sections []byte
		image    assetCols
	)
	dest := []any{&b.ID, &b.Title, &b.Content, &sections, &b.CreatedAt, &b.UpdatedAt}
	if err := row.Scan(append(dest, image.dest()...)...); err != nil {
		return nil, err
	}
	b.Sections = []model.Section{}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &b.Sections); err != nil {
			return nil, fmt.Errorf("decode sections: %w", err)
		}
	}
	b.Image = image.asset()
	return &b, nil
}

func encodeSections(s []model.Section) ([]byte, error) {
	if s == nil {
		s = []model.Section{}
	}
	return json.Marshal(s)
}

// Create inserts a biography entry and returns the stored record.
func (r *BiographyPostgres) Create(ctx context.Context, b *model.Biography) (*model.Biography, error) {
	sections, err := encodeSections(b.Sections)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO biographies (id, title, content, sections, image_media_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.db.ExecContext(ctx, q,
		b.ID, b.Title, b.Content, sections, assetID(b.Image), b.CreatedAt, b.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return r.FindByID(ctx, b.ID)
}

// FindByID fetches a single biography entry.
func (r *BiographyPostgres) FindByID(ctx context.Context, id string) (*model.Biography, error) {
	return scanBiography(r.db.QueryRowContext(ctx, biographySelect+` WHERE b.id = $1`, id))
}

// List returns biography entries oldest first so the page reads in order.
func (r *BiographyPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Biography], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM biographies`).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		biographySelect+` ORDER BY b.created_at ASC, b.id ASC LIMIT $1 OFFSET $2`,
		pq.Limit, pq.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Biography, 0)
	for rows.Next() {
		b, err := scanBiography(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Biography]{Items: items, Total: total}, nil
}

// Update overwrites the biography entry's mutable fields.
func (r *BiographyPostgres) Update(ctx context.Context, b *model.Biography) (*model.Biography, error) {
	sections, err := encodeSections(b.Sections)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE biographies
		SET title = $2, content = $3, sections = $4, image_media_id = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, b.ID, b.Title, b.Content, sections, assetID(b.Image), b.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, b.ID)
}

// Delete removes a biography entry by ID.
func (r *BiographyPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM biographies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
