package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput marks errors caused by the caller's arguments rather than
// the store. Handlers map it to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

// Service manages user synchronization and lookups.
type Service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SyncInput carries account data reported by the identity provider. Role is
// optional; the zero value leaves an existing role untouched and defaults a
// new account to RoleUser.
type SyncInput struct {
	ClerkID  string
	Name     string
	Username string
	Email    string
	Phone    string
	Location string
	Image    string
	Role     string
}

// Sync upserts the user identified by ClerkID and reports whether a new
// record was created. An existing user is only ever modified when a role is
// supplied and differs from the stored one; name, email and the other profile
// fields are never overwritten by a re-sync. The operation is idempotent:
// repeating a call with no role change is a no-op.
func (s *Service) Sync(ctx context.Context, input SyncInput) (User, bool, error) {
	if input.ClerkID == "" {
		return User{}, false, fmt.Errorf("%w: clerk id is required", ErrInvalidInput)
	}
	if input.Role != "" && !ValidRole(input.Role) {
		return User{}, false, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	existing, err := s.repo.FindByClerkID(ctx, input.ClerkID)
	switch {
	case err == nil:
		if input.Role != "" && input.Role != existing.Role {
			if err := s.repo.UpdateRole(ctx, existing.ID, input.Role); err != nil {
				return User{}, false, err
			}
			existing.Role = input.Role
		}
		return existing, false, nil
	case !errors.Is(err, ErrNotFound):
		return User{}, false, err
	}

	role := input.Role
	if role == "" {
		role = RoleUser
	}

	user := User{
		ID:        uuid.New().String(),
		ClerkID:   input.ClerkID,
		Username:  input.Username,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Location:  input.Location,
		Role:      role,
		Image:     input.Image,
		CreatedAt: time.Now().UTC(),
	}

	// Two syncs racing past the lookup both reach this insert; the store's
	// unique index on clerk_id rejects the loser and the error propagates.
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, false, err
	}

	return user, true, nil
}

// GetByClerkID returns the user for an identity-provider identifier.
func (s *Service) GetByClerkID(ctx context.Context, clerkID string) (User, error) {
	if clerkID == "" {
		return User{}, fmt.Errorf("%w: clerk id is required", ErrInvalidInput)
	}
	return s.repo.FindByClerkID(ctx, clerkID)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
