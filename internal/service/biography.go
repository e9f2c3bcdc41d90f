package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pressroom/internal/auth"
	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// BiographyInput creates or partially updates a biography entry. A nil
// Sections slice keeps the current sections.
type BiographyInput struct {
	Title    *string         `json:"title"`
	Content  *string         `json:"content"`
	Sections []model.Section `json:"sections"`
	Image    *FileInput      `json:"-"`
}

func validSections(v any) error {
	sections, _ := v.([]model.Section)
	for i, s := range sections {
		if strings.TrimSpace(s.Heading) == "" {
			return fmt.Errorf("section %d: heading is required", i+1)
		}
	}
	return nil
}

func (in BiographyInput) validate(create bool) error {
	required := validation.NilOrNotEmpty
	if create {
		required = validation.Required
	}
	return asValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Title, required, validation.RuneLength(1, 200)),
		validation.Field(&in.Sections, validation.By(validSections)),
	))
}

// BiographyService manages biography entries.
type BiographyService interface {
	List(ctx context.Context, p Page) (*ListResult[model.Biography], error)
	Get(ctx context.Context, id string) (*model.Biography, error)
	Create(ctx context.Context, caller auth.Identity, in BiographyInput) (*model.Biography, error)
	Update(ctx context.Context, caller auth.Identity, id string, in BiographyInput) (*model.Biography, error)
	Delete(ctx context.Context, id string) error
}

type biographyService struct {
	repo  repository.BiographyRepository
	media MediaService
}

// NewBiographyService constructs a BiographyService.
func NewBiographyService(repo repository.BiographyRepository, media MediaService) BiographyService {
	return &biographyService{repo: repo, media: media}
}

func (s *biographyService) List(ctx context.Context, p Page) (*ListResult[model.Biography], error) {
	p = p.normalize()
	res, err := s.repo.List(ctx, p.query())
	if err != nil {
		return nil, err
	}
	return newListResult(res, p), nil
}

func (s *biographyService) Get(ctx context.Context, id string) (*model.Biography, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (s *biographyService) Create(ctx context.Context, caller auth.Identity, in BiographyInput) (*model.Biography, error) {
	in.Title = trimmed(in.Title)
	if err := in.validate(true); err != nil {
		return nil, err
	}

	image, commit, err := replaceAsset(ctx, s.media.UploadImage, s.media, in.Image, caller.ID, nil, "biography_image")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &model.Biography{
		ID:        uuid.NewString(),
		Title:     *in.Title,
		Sections:  in.Sections,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	assign(&b.Content, in.Content)
	if b.Sections == nil {
		b.Sections = []model.Section{}
	}

	out, err := s.repo.Create(ctx, b)
	commit(err == nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *biographyService) Update(ctx context.Context, caller auth.Identity, id string, in BiographyInput) (*model.Biography, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Title = trimmed(in.Title)
	if err := in.validate(false); err != nil {
		return nil, err
	}

	image, commit, err := replaceAsset(ctx, s.media.UploadImage, s.media, in.Image, caller.ID, b.Image, "biography_image")
	if err != nil {
		return nil, err
	}

	assign(&b.Title, in.Title)
	assign(&b.Content, in.Content)
	if in.Sections != nil {
		b.Sections = in.Sections
	}
	b.Image = image
	b.UpdatedAt = time.Now().UTC()

	out, err := s.repo.Update(ctx, b)
	commit(err == nil)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (s *biographyService) Delete(ctx context.Context, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	releaseAsset(ctx, s.media, b.Image, "biography_delete")
	return nil
}
