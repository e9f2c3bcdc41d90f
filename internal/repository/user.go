package repository

import (
	"context"

	"pressroom/internal/model"
)

// UserRepository persists credentials.
type UserRepository interface {
	// Create inserts a user. A taken email yields ErrDuplicate.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail matches the email case-insensitively.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Update overwrites name, email, password hash and role. A taken email yields ErrDuplicate.
	Update(ctx context.Context, u *model.User) (*model.User, error)

	// List returns users newest first.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.User], error)
}
