package postgres

import (
	"context"
	"database/sql"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// CommentPostgres is a PostgreSQL implementation of repository.CommentRepository.
type CommentPostgres struct {
	db *sql.DB
}

// NewCommentPostgres creates a new CommentPostgres repository.
func NewCommentPostgres(db *sql.DB) *CommentPostgres {
	return &CommentPostgres{db: db}
}

var _ repository.CommentRepository = (*CommentPostgres)(nil)

const commentColumns = `id, article_id, user_id, user_name, text, created_at, updated_at`

func scanComment(row rowScanner) (*model.Comment, error) {
	var (
		c      model.Comment
		userID sql.NullString
	)
	if err := row.Scan(&c.ID, &c.ArticleID, &userID, &c.UserName, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.UserID = userID.String
	return &c, nil
}

// Create inserts a comment and returns the stored record.
func (r *CommentPostgres) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO comments (id, article_id, user_id, user_name, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + commentColumns
	out, err := scanComment(r.db.QueryRowContext(ctx, q,
		c.ID, c.ArticleID, nullString(c.UserID), c.UserName, c.Text, c.CreatedAt, c.UpdatedAt,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// FindByID fetches a single comment.
func (r *CommentPostgres) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	return scanComment(r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
}

// ListByArticle returns an article's comments oldest first.
func (r *CommentPostgres) ListByArticle(ctx context.Context, articleID string, pq repository.PageQuery) (*repository.PageResult[model.Comment], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE article_id = $1`, articleID).Scan(&total); err != nil {
		return nil, err
	}

	const q = `SELECT ` + commentColumns + ` FROM comments WHERE article_id = $1 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, articleID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Comment]{Items: items, Total: total}, nil
}

// Update overwrites the comment text.
func (r *CommentPostgres) Update(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		UPDATE comments SET text = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + commentColumns
	return scanComment(r.db.QueryRowContext(ctx, q, c.ID, c.Text, c.UpdatedAt))
}

// Delete removes a comment by ID.
func (r *CommentPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
