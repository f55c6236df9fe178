package feedback

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	entries []Feedback
}

// NewMemoryRepository builds an in-memory feedback store for development and testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, feedback Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, feedback)
	return nil
}

func (r *memoryRepository) ListByPrediction(_ context.Context, predictionID string) ([]Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Feedback{}
	for _, feedback := range r.entries {
		if feedback.PredictionID == predictionID {
			out = append(out, feedback)
		}
	}
	return out, nil
}
