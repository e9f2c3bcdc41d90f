package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pressroom/internal/model"
)

// mockMediaService stands in for the media gateway in content service tests.
type mockMediaService struct {
	mock.Mock
}

func (m *mockMediaService) UploadImage(ctx context.Context, f *FileInput, uploader string) (*model.Media, error) {
	args := m.Called(ctx, f, uploader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *mockMediaService) UploadImages(ctx context.Context, files []*FileInput, uploader string) ([]model.Media, error) {
	args := m.Called(ctx, files, uploader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Media), args.Error(1)
}

func (m *mockMediaService) UploadPDF(ctx context.Context, f *FileInput, uploader string) (*model.Media, error) {
	args := m.Called(ctx, f, uploader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *mockMediaService) Get(ctx context.Context, id string) (*model.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *mockMediaService) List(ctx context.Context, rt model.ResourceType, p Page) (*ListResult[model.Media], error) {
	args := m.Called(ctx, rt, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ListResult[model.Media]), args.Error(1)
}

func (m *mockMediaService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockMediaService) Release(ctx context.Context, id string, reason string) {
	m.Called(ctx, id, reason)
}

var _ MediaService = (*mockMediaService)(nil)
