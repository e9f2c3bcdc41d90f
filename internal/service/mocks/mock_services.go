package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pressroom/internal/auth"
	"pressroom/internal/model"
	"pressroom/internal/repository"
	"pressroom/internal/service"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput, role model.Role) (*service.AuthResult, error) {
	args := m.Called(ctx, in, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, in service.LoginInput, requireAdmin bool) (*service.AuthResult, error) {
	args := m.Called(ctx, in, requireAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockUserService) Me(ctx context.Context, caller auth.Identity) (*model.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, caller auth.Identity, in service.UpdateProfileInput) (*model.User, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, p service.Page) (*service.ListResult[model.User], error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.User]), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) UploadImage(ctx context.Context, f *service.FileInput, uploader string) (*model.Media, error) {
	args := m.Called(ctx, f, uploader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *MockMediaService) UploadImages(ctx context.Context, files []*service.FileInput, uploader string) ([]model.Media, error) {
	args := m.Called(ctx, files, uploader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Media), args.Error(1)
}

func (m *MockMediaService) UploadPDF(ctx context.Context, f *service.FileInput, uploader string) (*model.Media, error) {
	args := m.Called(ctx, f, uploader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *MockMediaService) Get(ctx context.Context, id string) (*model.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *MockMediaService) List(ctx context.Context, rt model.ResourceType, p service.Page) (*service.ListResult[model.Media], error) {
	args := m.Called(ctx, rt, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Media]), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMediaService) Release(ctx context.Context, id string, reason string) {
	m.Called(ctx, id, reason)
}

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) List(ctx context.Context, f repository.ArticleFilter, p service.Page) (*service.ListResult[model.Article], error) {
	args := m.Called(ctx, f, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Article]), args.Error(1)
}

func (m *MockArticleService) Get(ctx context.Context, id string) (*model.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Create(ctx context.Context, caller auth.Identity, in service.ArticleInput) (*model.Article, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, caller auth.Identity, id string, in service.ArticleInput) (*model.Article, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockArticleService) Like(ctx context.Context, caller auth.Identity, id string) (*model.Article, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Unlike(ctx context.Context, caller auth.Identity, id string) (*model.Article, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

type MockBannerService struct {
	mock.Mock
}

func (m *MockBannerService) List(ctx context.Context, f repository.BannerFilter, p service.Page) (*service.ListResult[model.Banner], error) {
	args := m.Called(ctx, f, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Banner]), args.Error(1)
}

func (m *MockBannerService) Get(ctx context.Context, id string) (*model.Banner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Banner), args.Error(1)
}

func (m *MockBannerService) Create(ctx context.Context, caller auth.Identity, in service.BannerInput) (*model.Banner, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Banner), args.Error(1)
}

func (m *MockBannerService) Update(ctx context.Context, caller auth.Identity, id string, in service.BannerInput) (*model.Banner, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Banner), args.Error(1)
}

func (m *MockBannerService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBiographyService struct {
	mock.Mock
}

func (m *MockBiographyService) List(ctx context.Context, p service.Page) (*service.ListResult[model.Biography], error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Biography]), args.Error(1)
}

func (m *MockBiographyService) Get(ctx context.Context, id string) (*model.Biography, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Biography), args.Error(1)
}

func (m *MockBiographyService) Create(ctx context.Context, caller auth.Identity, in service.BiographyInput) (*model.Biography, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Biography), args.Error(1)
}

func (m *MockBiographyService) Update(ctx context.Context, caller auth.Identity, id string, in service.BiographyInput) (*model.Biography, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Biography), args.Error(1)
}

func (m *MockBiographyService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublicationService struct {
	mock.Mock
}

func (m *MockPublicationService) List(ctx context.Context, p service.Page) (*service.ListResult[model.Publication], error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Publication]), args.Error(1)
}

func (m *MockPublicationService) Get(ctx context.Context, id string) (*model.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationService) Create(ctx context.Context, caller auth.Identity, in service.PublicationInput) (*model.Publication, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationService) Update(ctx context.Context, caller auth.Identity, id string, in service.PublicationInput) (*model.Publication, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Publication), args.Error(1)
}

func (m *MockPublicationService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListByArticle(ctx context.Context, articleID string, p service.Page) (*service.ListResult[model.Comment], error) {
	args := m.Called(ctx, articleID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Comment]), args.Error(1)
}

func (m *MockCommentService) Get(ctx context.Context, id string) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, caller auth.Identity, articleID string, in service.CommentInput) (*model.Comment, error) {
	args := m.Called(ctx, caller, articleID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, caller auth.Identity, id string, in service.CommentInput) (*model.Comment, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
