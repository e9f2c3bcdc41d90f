package postgres

import (
	"context"
	"database/sql"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// BannerPostgres is a PostgreSQL implementation of repository.BannerRepository.
type BannerPostgres struct {
	db *sql.DB
}

// NewBannerPostgres creates a new BannerPostgres repository.
func NewBannerPostgres(db *sql.DB) *BannerPostgres {
	return &BannerPostgres{db: db}
}

var _ repository.BannerRepository = (*BannerPostgres)(nil)

const bannerSelect = `
	SELECT b.id, b.title, b.subtitle, b.link, b.position, b.active, b.created_at, b.updated_at,
		m.id, m.url, m.public_id, m.resource_type
	FROM banners b
	LEFT JOIN media m ON m.id = b.image_media_id
`

func scanBanner(row rowScanner) (*model.Banner, error) {
	var (
		b     model.Banner
		image assetCols
	)
	dest := []any{&b.ID, &b.Title, &b.Subtitle, &b.Link, &b.Position, &b.Active, &b.CreatedAt, &b.UpdatedAt}
	if err := row.Scan(append(dest, image.dest()...)...); err != nil {
		return nil, err
	}
	b.Image = image.asset()
	return &b, nil
}

// Create inserts a banner and returns the stored record.
func (r *BannerPostgres) Create(ctx context.Context, b *model.Banner) (*model.Banner, error) {
	const q = `
		INSERT INTO banners (id, title, subtitle, link, position, active, image_media_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := r.db.ExecContext(ctx, q,
		b.ID, b.Title, b.Subtitle, b.Link, b.Position, b.Active, assetID(b.Image), b.CreatedAt, b.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return r.FindByID(ctx, b.ID)
}

// FindByID fetches a single banner.
func (r *BannerPostgres) FindByID(ctx context.Context, id string) (*model.Banner, error) {
	return scanBanner(r.db.QueryRowContext(ctx, bannerSelect+` WHERE b.id = $1`, id))
}

// List returns banners in display order.
func (r *BannerPostgres) List(ctx context.Context, f repository.BannerFilter, pq repository.PageQuery) (*repository.PageResult[model.Banner], error) {
	var active sql.NullBool
	if f.Active != nil {
		active = sql.NullBool{Bool: *f.Active, Valid: true}
	}

	const where = ` WHERE ($1::boolean IS NULL OR b.active = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM banners b`+where, active).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		bannerSelect+where+` ORDER BY b.position ASC, b.created_at DESC LIMIT $2 OFFSET $3`,
		active, pq.Limit, pq.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Banner, 0)
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Banner]{Items: items, Total: total}, nil
}

// Update overwrites the banner's mutable fields.
func (r *BannerPostgres) Update(ctx context.Context, b *model.Banner) (*model.Banner, error) {
	const q = `
		UPDATE banners
		SET title = $2, subtitle = $3, link = $4, position = $5, active = $6, image_media_id = $7, updated_at = $8
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		b.ID, b.Title, b.Subtitle, b.Link, b.Position, b.Active, assetID(b.Image), b.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, b.ID)
}

// Delete removes a banner by ID.
func (r *BannerPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
