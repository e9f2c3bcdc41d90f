package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pressroom/internal/auth"
	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// ArticleInput creates or partially updates an article. Nil fields are
// left unchanged on update; a nil Tags slice keeps the current tags.
type ArticleInput struct {
	Title    *string    `json:"title"`
	Content  *string    `json:"content"`
	Summary  *string    `json:"summary"`
	Category *string    `json:"category"`
	Tags     []string   `json:"tags"`
	Image    *FileInput `json:"-"`
}

func (in ArticleInput) validate(create bool) error {
	required := validation.NilOrNotEmpty
	if create {
		required = validation.Required
	}
	return asValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Title, required, validation.RuneLength(1, 200)),
		validation.Field(&in.Content, required),
		validation.Field(&in.Summary, validation.RuneLength(0, 500)),
		validation.Field(&in.Category, validation.RuneLength(0, 100)),
		validation.Field(&in.Tags, validation.Length(0, 20)),
	))
}

func (in *ArticleInput) trim() {
	in.Title = trimmed(in.Title)
	in.Summary = trimmed(in.Summary)
	in.Category = trimmed(in.Category)
}

// ArticleService manages articles, their cover images and likes.
type ArticleService interface {
	List(ctx context.Context, f repository.ArticleFilter, p Page) (*ListResult[model.Article], error)
	Get(ctx context.Context, id string) (*model.Article, error)
	Create(ctx context.Context, caller auth.Identity, in ArticleInput) (*model.Article, error)
	// Update and Delete are limited to the author or an admin.
	Update(ctx context.Context, caller auth.Identity, id string, in ArticleInput) (*model.Article, error)
	Delete(ctx context.Context, caller auth.Identity, id string) error
	// Like adds the caller to the likers; liking twice is a no-op.
	Like(ctx context.Context, caller auth.Identity, id string) (*model.Article, error)
	Unlike(ctx context.Context, caller auth.Identity, id string) (*model.Article, error)
}

type articleService struct {
	repo  repository.ArticleRepository
	media MediaService
}

// NewArticleService constructs an ArticleService.
func NewArticleService(repo repository.ArticleRepository, media MediaService) ArticleService {
	return &articleService{repo: repo, media: media}
}

func (s *articleService) List(ctx context.Context, f repository.ArticleFilter, p Page) (*ListResult[model.Article], error) {
	p = p.normalize()
	res, err := s.repo.List(ctx, f, p.query())
	if err != nil {
		return nil, err
	}
	return newListResult(res, p), nil
}

func (s *articleService) Get(ctx context.Context, id string) (*model.Article, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *articleService) Create(ctx context.Context, caller auth.Identity, in ArticleInput) (*model.Article, error) {
	in.trim()
	if err := in.validate(true); err != nil {
		return nil, err
	}

	cover, commit, err := replaceAsset(ctx, s.media.UploadImage, s.media, in.Image, caller.ID, nil, "article_cover")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &model.Article{
		ID:         uuid.NewString(),
		Title:      *in.Title,
		Content:    *in.Content,
		Tags:       in.Tags,
		CoverImage: cover,
		AuthorID:   caller.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	assign(&a.Summary, in.Summary)
	assign(&a.Category, in.Category)
	if a.Tags == nil {
		a.Tags = []string{}
	}

	out, err := s.repo.Create(ctx, a)
	commit(err == nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *articleService) editable(ctx context.Context, caller auth.Identity, id string) (*model.Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !owns(caller, a.AuthorID) {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *articleService) Update(ctx context.Context, caller auth.Identity, id string, in ArticleInput) (*model.Article, error) {
	a, err := s.editable(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	in.trim()
	if err := in.validate(false); err != nil {
		return nil, err
	}

	cover, commit, err := replaceAsset(ctx, s.media.UploadImage, s.media, in.Image, caller.ID, a.CoverImage, "article_cover")
	if err != nil {
		return nil, err
	}

	assign(&a.Title, in.Title)
	assign(&a.Content, in.Content)
	assign(&a.Summary, in.Summary)
	assign(&a.Category, in.Category)
	if in.Tags != nil {
		a.Tags = in.Tags
	}
	a.CoverImage = cover
	a.UpdatedAt = time.Now().UTC()

	out, err := s.repo.Update(ctx, a)
	commit(err == nil)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (s *articleService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	a, err := s.editable(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	releaseAsset(ctx, s.media, a.CoverImage, "article_delete")
	return nil
}

func (s *articleService) Like(ctx context.Context, caller auth.Identity, id string) (*model.Article, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.AddLike(ctx, id, caller.ID); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *articleService) Unlike(ctx context.Context, caller auth.Identity, id string) (*model.Article, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveLike(ctx, id, caller.ID); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
