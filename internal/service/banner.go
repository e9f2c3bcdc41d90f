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

// BannerInput creates or partially updates a gallery banner.
type BannerInput struct {
	Title    *string    `json:"title"`
	Subtitle *string    `json:"subtitle"`
	Link     *string    `json:"link"`
	Position *int       `json:"position"`
	Active   *bool      `json:"active"`
	Image    *FileInput `json:"-"`
}

func (in BannerInput) validate() error {
	return asValidation(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.RuneLength(0, 200)),
		validation.Field(&in.Subtitle, validation.RuneLength(0, 300)),
		validation.Field(&in.Link, validation.RuneLength(0, 2048)),
		validation.Field(&in.Position, validation.Min(0)),
	))
}

// BannerService manages gallery banners. Mutations are admin-only and gated
// at the route level.
type BannerService interface {
	List(ctx context.Context, f repository.BannerFilter, p Page) (*ListResult[model.Banner], error)
	Get(ctx context.Context, id string) (*model.Banner, error)
	Create(ctx context.Context, caller auth.Identity, in BannerInput) (*model.Banner, error)
	Update(ctx context.Context, caller auth.Identity, id string, in BannerInput) (*model.Banner, error)
	Delete(ctx context.Context, id string) error
}

type bannerService struct {
	repo  repository.BannerRepository
	media MediaService
}

// NewBannerService constructs a BannerService.
func NewBannerService(repo repository.BannerRepository, media MediaService) BannerService {
	return &bannerService{repo: repo, media: media}
}

func (s *bannerService) List(ctx context.Context, f repository.BannerFilter, p Page) (*ListResult[model.Banner], error) {
	p = p.normalize()
	res, err := s.repo.List(ctx, f, p.query())
	if err != nil {
		return nil, err
	}
	return newListResult(res, p), nil
}

func (s *bannerService) Get(ctx context.Context, id string) (*model.Banner, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (s *bannerService) Create(ctx context.Context, caller auth.Identity, in BannerInput) (*model.Banner, error) {
	in.Title = trimmed(in.Title)
	in.Subtitle = trimmed(in.Subtitle)
	in.Link = trimmed(in.Link)
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Image == nil {
		return nil, ErrNoFile
	}

	image, commit, err := replaceAsset(ctx, s.media.UploadImage, s.media, in.Image, caller.ID, nil, "banner_image")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &model.Banner{
		ID:        uuid.NewString(),
		Active:    true,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	assign(&b.Title, in.Title)
	assign(&b.Subtitle, in.Subtitle)
	assign(&b.Link, in.Link)
	if in.Position != nil {
		b.Position = *in.Position
	}
	if in.Active != nil {
		b.Active = *in.Active
	}

	out, err := s.repo.Create(ctx, b)
	commit(err == nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bannerService) Update(ctx context.Context, caller auth.Identity, id string, in BannerInput) (*model.Banner, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Title = trimmed(in.Title)
	in.Subtitle = trimmed(in.Subtitle)
	in.Link = trimmed(in.Link)
	if err := in.validate(); err != nil {
		return nil, err
	}

	image, commit, err := replaceAsset(ctx, s.media.UploadImage, s.media, in.Image, caller.ID, b.Image, "banner_image")
	if err != nil {
		return nil, err
	}

	assign(&b.Title, in.Title)
	assign(&b.Subtitle, in.Subtitle)
	assign(&b.Link, in.Link)
	if in.Position != nil {
		b.Position = *in.Position
	}
	if in.Active != nil {
		b.Active = *in.Active
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

func (s *bannerService) Delete(ctx context.Context, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	releaseAsset(ctx, s.media, b.Image, "banner_delete")
	return nil
}
