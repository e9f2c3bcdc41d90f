package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// ArticlePostgres is a PostgreSQL implementation of repository.ArticleRepository.
// Likes live in article_likes whose primary key keeps one row per liker.
type ArticlePostgres struct {
	db *sql.DB
}

// NewArticlePostgres creates a new ArticlePostgres repository.
func NewArticlePostgres(db *sql.DB) *ArticlePostgres {
	return &ArticlePostgres{db: db}
}

var _ repository.ArticleRepository = (*ArticlePostgres)(nil)

const articleSelect = `
	SELECT a.id, a.title, a.content, a.summary, a.category, a.tags, a.author_id, COALESCE(u.name, ''),
		COALESCE((SELECT array_agg(l.user_id::text ORDER BY l.created_at) FROM article_likes l WHERE l.article_id = a.id), '{}'),
		a.created_at, a.updated_at,
		m.id, m.url, m.public_id, m.resource_type
	FROM articles a
	LEFT JOIN users u ON u.id = a.author_id
	LEFT JOIN media m ON m.id = a.cover_media_id
`

const articleFilter = `
	WHERE ($1 = '' OR a.category = $1)
	AND ($2 = '' OR $2 = ANY(a.tags))
	AND ($3 = '' OR a.title ILIKE '%' || $3 || '%')
`

func scanArticle(row rowScanner) (*model.Article, error) {
	var (
		a        model.Article
		tags     pq.StringArray
		likes    pq.StringArray
		authorID sql.NullString
		cover    assetCols
	)
	dest := []any{
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Summary,
		&a.Category,
		&tags,
		&authorID,
		&a.AuthorName,
		&likes,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
	if err := row.Scan(append(dest, cover.dest()...)...); err != nil {
		return nil, err
	}
	a.Tags = []string(tags)
	if a.Tags == nil {
		a.Tags = []string{}
	}
	a.Likes = []string(likes)
	if a.Likes == nil {
		a.Likes = []string{}
	}
	a.LikesCount = len(a.Likes)
	a.AuthorID = authorID.String
	a.CoverImage = cover.asset()
	return &a, nil
}

// Create inserts an article and returns the stored, hydrated record.
func (r *ArticlePostgres) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	const q = `
		INSERT INTO articles (id, title, content, summary, category, tags, cover_media_id, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := r.db.ExecContext(ctx, q,
		a.ID,
		a.Title,
		a.Content,
		a.Summary,
		a.Category,
		pq.Array(a.Tags),
		assetID(a.CoverImage),
		nullString(a.AuthorID),
		a.CreatedAt,
		a.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return r.FindByID(ctx, a.ID)
}

// FindByID fetches a single article with its cover and likers.
func (r *ArticlePostgres) FindByID(ctx context.Context, id string) (*model.Article, error) {
	return scanArticle(r.db.QueryRowContext(ctx, articleSelect+` WHERE a.id = $1`, id))
}

// List returns articles newest first.
func (r *ArticlePostgres) List(ctx context.Context, f repository.ArticleFilter, page repository.PageQuery) (*repository.PageResult[model.Article], error) {
	var total int
	qCount := `SELECT COUNT(*) FROM articles a ` + articleFilter
	if err := r.db.QueryRowContext(ctx, qCount, f.Category, f.Tag, f.Search).Scan(&total); err != nil {
		return nil, err
	}

	qList := articleSelect + articleFilter + ` ORDER BY a.created_at DESC, a.id DESC LIMIT $4 OFFSET $5`
	rows, err := r.db.QueryContext(ctx, qList, f.Category, f.Tag, f.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Article]{Items: items, Total: total}, nil
}

// Update overwrites the article's mutable fields.
func (r *ArticlePostgres) Update(ctx context.Context, a *model.Article) (*model.Article, error) {
	const q = `
		UPDATE articles
		SET title = $2, content = $3, summary = $4, category = $5, tags = $6, cover_media_id = $7, updated_at = $8
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		a.ID,
		a.Title,
		a.Content,
		a.Summary,
		a.Category,
		pq.Array(a.Tags),
		assetID(a.CoverImage),
		a.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, a.ID)
}

// Delete removes an article; likes and comments cascade.
func (r *ArticlePostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// AddLike inserts the like unless it already exists.
func (r *ArticlePostgres) AddLike(ctx context.Context, articleID, userID string) error {
	const q = `
		INSERT INTO article_likes (article_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (article_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, articleID, userID)
	return err
}

// RemoveLike deletes the like if present.
func (r *ArticlePostgres) RemoveLike(ctx context.Context, articleID, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM article_likes WHERE article_id = $1 AND user_id = $2`, articleID, userID)
	return err
}
