// Package postgres implements the repository interfaces on PostgreSQL using
// database/sql with parameterized queries. It contains no business logic.
package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

const uniqueViolation = "23505"

// translate maps driver errors onto repository errors.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

// requireAffected turns a zero-row write into sql.ErrNoRows.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func assetID(a *model.Asset) sql.NullString {
	if a == nil {
		return sql.NullString{}
	}
	return nullString(a.ID)
}

// assetCols receives a LEFT JOINed media row.
type assetCols struct {
	id, url, publicID, resourceType sql.NullString
}

func (c *assetCols) dest() []any {
	return []any{&c.id, &c.url, &c.publicID, &c.resourceType}
}

func (c *assetCols) asset() *model.Asset {
	if !c.id.Valid {
		return nil
	}
	return &model.Asset{
		ID:           c.id.String,
		URL:          c.url.String,
		PublicID:     c.publicID.String,
		ResourceType: model.ResourceType(c.resourceType.String),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
