package user

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no user matches the lookup key.
var ErrNotFound = errors.New("user not found")

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByClerkID(ctx context.Context, clerkID string) (User, error)
	UpdateRole(ctx context.Context, id, role string) error
	List(ctx context.Context) ([]User, error)
}
