package postgres

import (
	"context"
	"database/sql"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// OrphanPostgres is a PostgreSQL implementation of repository.OrphanRepository.
type OrphanPostgres struct {
	db *sql.DB
}

// NewOrphanPostgres creates a new OrphanPostgres repository.
func NewOrphanPostgres(db *sql.DB) *OrphanPostgres {
	return &OrphanPostgres{db: db}
}

var _ repository.OrphanRepository = (*OrphanPostgres)(nil)

const orphanColumns = `id, public_id, storage_type, reason, attempts, last_error, created_at`

func scanOrphan(row rowScanner) (*model.Orphan, error) {
	var o model.Orphan
	if err := row.Scan(
		&o.ID,
		&o.PublicID,
		&o.StorageType,
		&o.Reason,
		&o.Attempts,
		&o.LastError,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create records an orphaned remote object.
func (r *OrphanPostgres) Create(ctx context.Context, o *model.Orphan) (*model.Orphan, error) {
	const q = `
		INSERT INTO orphans (id, public_id, storage_type, reason, last_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + orphanColumns
	return scanOrphan(r.db.QueryRowContext(ctx, q, o.ID, o.PublicID, o.StorageType, o.Reason, o.LastError, o.CreatedAt))
}

// ListOldest returns up to limit orphans, least retried first.
func (r *OrphanPostgres) ListOldest(ctx context.Context, limit int) ([]model.Orphan, error) {
	const q = `SELECT ` + orphanColumns + ` FROM orphans ORDER BY attempts ASC, created_at ASC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Orphan, 0)
	for rows.Next() {
		o, err := scanOrphan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// Delete removes a resolved orphan.
func (r *OrphanPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orphans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// MarkFailed bumps the attempt counter and stores the last error.
func (r *OrphanPostgres) MarkFailed(ctx context.Context, id string, lastErr string) error {
	const q = `UPDATE orphans SET attempts = attempts + 1, last_error = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, lastErr)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
