package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) Create(ctx context.Context, v *model.Media) (*model.Media, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.Media) *model.Media); ok {
		return f(ctx, v), args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *MockMediaRepository) FindByID(ctx context.Context, id string) (*model.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *MockMediaRepository) List(ctx context.Context, f repository.MediaFilter, pq repository.PageQuery) (*repository.PageResult[model.Media], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Media]), args.Error(1)
}

func (m *MockMediaRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrphanRepository struct {
	mock.Mock
}

func (m *MockOrphanRepository) Create(ctx context.Context, o *model.Orphan) (*model.Orphan, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Orphan), args.Error(1)
}

func (m *MockOrphanRepository) ListOldest(ctx context.Context, limit int) ([]model.Orphan, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Orphan), args.Error(1)
}

func (m *MockOrphanRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrphanRepository) MarkFailed(ctx context.Context, id string, lastErr string) error {
	args := m.Called(ctx, id, lastErr)
	return args.Error(0)
}
