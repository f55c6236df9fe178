package user

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users []User
}

// NewMemoryRepository builds an in-memory user store for development and testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.ClerkID == user.ClerkID {
			return errors.New("user exists")
		}
	}
	r.users = append(r.users, user)
	return nil
}

func (r *memoryRepository) FindByClerkID(_ context.Context, clerkID string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ClerkID == clerkID {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) UpdateRole(_ context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, user := range r.users {
		if user.ID == id {
			r.users[i].Role = role
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out, nil
}
