package prediction

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu          sync.RWMutex
	predictions []Prediction
}

// NewMemoryRepository builds an in-memory prediction store for development and testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, prediction Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predictions = append(r.predictions, prediction)
	return nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Prediction{}
	for _, prediction := range r.predictions {
		if prediction.UserID == userID {
			out = append(out, prediction)
		}
	}
	return out, nil
}
