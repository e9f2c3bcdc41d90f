package service

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pressroom/internal/auth"
	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// CommentInput is the body of a new or edited comment.
type CommentInput struct {
	Text string `json:"text"`
}

func (in CommentInput) validate() error {
	return asValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Text, validation.Required.Error("text is required"), validation.RuneLength(1, 2000)),
	))
}

// CommentService manages article comments.
type CommentService interface {
	ListByArticle(ctx context.Context, articleID string, p Page) (*ListResult[model.Comment], error)
	Get(ctx context.Context, id string) (*model.Comment, error)
	// Create fails with ErrNotFound when the article does not exist.
	Create(ctx context.Context, caller auth.Identity, articleID string, in CommentInput) (*model.Comment, error)
	// Update and Delete are limited to the comment owner or an admin.
	Update(ctx context.Context, caller auth.Identity, id string, in CommentInput) (*model.Comment, error)
	Delete(ctx context.Context, caller auth.Identity, id string) error
}

type commentService struct {
	repo     repository.CommentRepository
	articles repository.ArticleRepository
}

// NewCommentService constructs a CommentService.
func NewCommentService(repo repository.CommentRepository, articles repository.ArticleRepository) CommentService {
	return &commentService{repo: repo, articles: articles}
}

func (s *commentService) ListByArticle(ctx context.Context, articleID string, p Page) (*ListResult[model.Comment], error) {
	if err := checkID(articleID); err != nil {
		return nil, err
	}
	p = p.normalize()
	res, err := s.repo.ListByArticle(ctx, articleID, p.query())
	if err != nil {
		return nil, err
	}
	return newListResult(res, p), nil
}

func (s *commentService) Get(ctx context.Context, id string) (*model.Comment, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *commentService) Create(ctx context.Context, caller auth.Identity, articleID string, in CommentInput) (*model.Comment, error) {
	if err := checkID(articleID); err != nil {
		return nil, err
	}
	in.Text = strings.TrimSpace(in.Text)
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.articles.FindByID(ctx, articleID); err != nil {
		return nil, notFound(err)
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &model.Comment{
		ID:        uuid.NewString(),
		ArticleID: articleID,
		UserID:    caller.ID,
		UserName:  caller.Name,
		Text:      in.Text,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *commentService) editable(ctx context.Context, caller auth.Identity, id string) (*model.Comment, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !owns(caller, c.UserID) {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *commentService) Update(ctx context.Context, caller auth.Identity, id string, in CommentInput) (*model.Comment, error) {
	c, err := s.editable(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	in.Text = strings.TrimSpace(in.Text)
	if err := in.validate(); err != nil {
		return nil, err
	}

	c.Text = in.Text
	c.UpdatedAt = time.Now().UTC()
	out, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (s *commentService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	if _, err := s.editable(ctx, caller, id); err != nil {
		return err
	}
	return notFound(s.repo.Delete(ctx, id))
}
