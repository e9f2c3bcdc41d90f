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

// PublicationInput creates or partially updates a publication. A nil
// Authors slice keeps the current authors.
type PublicationInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Authors     []string   `json:"authors"`
	PublishedAt *time.Time `json:"publishedAt"`
	PDF         *FileInput `json:"-"`
}

func (in PublicationInput) validate(create bool) error {
	required := validation.NilOrNotEmpty
	if create {
		required = validation.Required
	}
	return asValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Title, required, validation.RuneLength(1, 300)),
		validation.Field(&in.Description, validation.RuneLength(0, 5000)),
		validation.Field(&in.Authors, validation.Length(0, 50)),
	))
}

// PublicationService manages publications and their PDF files.
type PublicationService interface {
	List(ctx context.Context, p Page) (*ListResult[model.Publication], error)
	Get(ctx context.Context, id string) (*model.Publication, error)
	Create(ctx context.Context, caller auth.Identity, in PublicationInput) (*model.Publication, error)
	Update(ctx context.Context, caller auth.Identity, id string, in PublicationInput) (*model.Publication, error)
	Delete(ctx context.Context, id string) error
}

type publicationService struct {
	repo  repository.PublicationRepository
	media MediaService
}

// NewPublicationService constructs a PublicationService.
func NewPublicationService(repo repository.PublicationRepository, media MediaService) PublicationService {
	return &publicationService{repo: repo, media: media}
}

func (s *publicationService) List(ctx context.Context, p Page) (*ListResult[model.Publication], error) {
	p = p.normalize()
	res, err := s.repo.List(ctx, p.query())
	if err != nil {
		return nil, err
	}
	return newListResult(res, p), nil
}

func (s *publicationService) Get(ctx context.Context, id string) (*model.Publication, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *publicationService) Create(ctx context.Context, caller auth.Identity, in PublicationInput) (*model.Publication, error) {
	in.Title = trimmed(in.Title)
	if err := in.validate(true); err != nil {
		return nil, err
	}
	if in.PDF == nil {
		return nil, ErrNoFile
	}

	pdf, commit, err := replaceAsset(ctx, s.media.UploadPDF, s.media, in.PDF, caller.ID, nil, "publication_pdf")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.Publication{
		ID:          uuid.NewString(),
		Title:       *in.Title,
		Authors:     in.Authors,
		PublishedAt: in.PublishedAt,
		PDF:         pdf,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	assign(&p.Description, in.Description)
	if p.Authors == nil {
		p.Authors = []string{}
	}

	out, err := s.repo.Create(ctx, p)
	commit(err == nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *publicationService) Update(ctx context.Context, caller auth.Identity, id string, in PublicationInput) (*model.Publication, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Title = trimmed(in.Title)
	if err := in.validate(false); err != nil {
		return nil, err
	}

	pdf, commit, err := replaceAsset(ctx, s.media.UploadPDF, s.media, in.PDF, caller.ID, p.PDF, "publication_pdf")
	if err != nil {
		return nil, err
	}

	assign(&p.Title, in.Title)
	assign(&p.Description, in.Description)
	if in.Authors != nil {
		p.Authors = in.Authors
	}
	if in.PublishedAt != nil {
		p.PublishedAt = in.PublishedAt
	}
	p.PDF = pdf
	p.UpdatedAt = time.Now().UTC()

	out, err := s.repo.Update(ctx, p)
	commit(err == nil)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (s *publicationService) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	releaseAsset(ctx, s.media, p.PDF, "publication_delete")
	return nil
}
