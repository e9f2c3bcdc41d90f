package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// PublicationPostgres is a PostgreSQL implementation of repository.PublicationRepository.
type PublicationPostgres struct {
	db *sql.DB
}

// NewPublicationPostgres creates a new PublicationPostgres repository.
func NewPublicationPostgres(db *sql.DB) *PublicationPostgres {
	return &PublicationPostgres{db: db}
}

var _ repository.PublicationRepository = (*PublicationPostgres)(nil)

const publicationSelect = `
	SELECT p.id, p.title, p.description, p.authors, p.published_at, p.created_at, p.updated_at,
		m.id, m.url, m.public_id, m.resource_type
	FROM publications p
	LEFT JOIN media m ON m.id = p.pdf_media_id
`

func scanPublication(row rowScanner) (*model.Publication, error) {
	var (
		p           model.Publication
		authors     pq.StringArray
		publishedAt sql.NullTime
		pdf         assetCols
	)
	dest := []any{&p.ID, &p.Title, &p.Description, &authors, &publishedAt, &p.CreatedAt, &p.UpdatedAt}
	if err := row.Scan(append(dest, pdf.dest()...)...); err != nil {
		return nil, err
	}
	p.Authors = []string(authors)
	if p.Authors == nil {
		p.Authors = []string{}
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}
	p.PDF = pdf.asset()
	return &p, nil
}

func publishedAtArg(p *model.Publication) sql.NullTime {
	if p.PublishedAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p.PublishedAt, Valid: true}
}

// Create inserts a publication and returns the stored record.
func (r *PublicationPostgres) Create(ctx context.Context, p *model.Publication) (*model.Publication, error) {
	const q = `
		INSERT INTO publications (id, title, description, authors, published_at, pdf_media_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.db.ExecContext(ctx, q,
		p.ID, p.Title, p.Description, pq.Array(p.Authors), publishedAtArg(p), assetID(p.PDF), p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return r.FindByID(ctx, p.ID)
}

// FindByID fetches a single publication.
func (r *PublicationPostgres) FindByID(ctx context.Context, id string) (*model.Publication, error) {
	return scanPublication(r.db.QueryRowContext(ctx, publicationSelect+` WHERE p.id = $1`, id))
}

// List returns publications, most recently published first.
func (r *PublicationPostgres) List(ctx context.Context, page repository.PageQuery) (*repository.PageResult[model.Publication], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM publications`).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		publicationSelect+` ORDER BY p.published_at DESC NULLS LAST, p.created_at DESC LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Publication, 0)
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Publication]{Items: items, Total: total}, nil
}

// Update overwrites the publication's mutable fields.
func (r *PublicationPostgres) Update(ctx context.Context, p *model.Publication) (*model.Publication, error) {
	const q = `
		UPDATE publications
		SET title = $2, description = $3, authors = $4, published_at = $5, pdf_media_id = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		p.ID, p.Title, p.Description, pq.Array(p.Authors), publishedAtArg(p), assetID(p.PDF), p.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, p.ID)
}

// Delete removes a publication by ID.
func (r *PublicationPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM publications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
