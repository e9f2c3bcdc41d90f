package repository

import (
	"context"

	"pressroom/internal/model"
)

// MediaFilter narrows media listings. Empty fields do not filter.
type MediaFilter struct {
	ResourceType model.ResourceType
}

// MediaRepository persists Media records.
type MediaRepository interface {
	Create(ctx context.Context, m *model.Media) (*model.Media, error)
	FindByID(ctx context.Context, id string) (*model.Media, error)
	List(ctx context.Context, f MediaFilter, pq PageQuery) (*PageResult[model.Media], error)
	// Delete removes a record; sql.ErrNoRows when it did not exist.
	Delete(ctx context.Context, id string) error
}

// OrphanRepository tracks remote objects awaiting cleanup.
type OrphanRepository interface {
	Create(ctx context.Context, o *model.Orphan) (*model.Orphan, error)
	// ListOldest returns up to limit orphans, fewest attempts first.
	ListOldest(ctx context.Context, limit int) ([]model.Orphan, error)
	Delete(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, lastErr string) error
}
