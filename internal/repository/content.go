package repository

import (
	"context"

	"pressroom/internal/model"
)

// ArticleFilter narrows article listings. Empty fields do not filter.
type ArticleFilter struct {
	Category string
	Tag      string
	Search   string
}

// ArticleRepository persists articles and their likes.
type ArticleRepository interface {
	Create(ctx context.Context, a *model.Article) (*model.Article, error)
	FindByID(ctx context.Context, id string) (*model.Article, error)
	List(ctx context.Context, f ArticleFilter, pq PageQuery) (*PageResult[model.Article], error)
	Update(ctx context.Context, a *model.Article) (*model.Article, error)
	Delete(ctx context.Context, id string) error

	// AddLike records userID as a liker. Repeated calls are no-ops.
	AddLike(ctx context.Context, articleID, userID string) error
	// RemoveLike drops userID from the likers. Missing likes are no-ops.
	RemoveLike(ctx context.Context, articleID, userID string) error
}

// BannerFilter narrows banner listings. A nil Active does not filter.
type BannerFilter struct {
	Active *bool
}

// BannerRepository persists gallery banners.
type BannerRepository interface {
	Create(ctx context.Context, b *model.Banner) (*model.Banner, error)
	FindByID(ctx context.Context, id string) (*model.Banner, error)
	List(ctx context.Context, f BannerFilter, pq PageQuery) (*PageResult[model.Banner], error)
	Update(ctx context.Context, b *model.Banner) (*model.Banner, error)
	Delete(ctx context.Context, id string) error
}

// BiographyRepository persists biography entries.
type BiographyRepository interface {
	Create(ctx context.Context, b *model.Biography) (*model.Biography, error)
	FindByID(ctx context.Context, id string) (*model.Biography, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Biography], error)
	Update(ctx context.Context, b *model.Biography) (*model.Biography, error)
	Delete(ctx context.Context, id string) error
}

// PublicationRepository persists publications.
type PublicationRepository interface {
	Create(ctx context.Context, p *model.Publication) (*model.Publication, error)
	FindByID(ctx context.Context, id string) (*model.Publication, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Publication], error)
	Update(ctx context.Context, p *model.Publication) (*model.Publication, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository persists article comments.
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	ListByArticle(ctx context.Context, articleID string, pq PageQuery) (*PageResult[model.Comment], error)
	Update(ctx context.Context, c *model.Comment) (*model.Comment, error)
	Delete(ctx context.Context, id string) error
}
