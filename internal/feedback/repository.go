package feedback

import "context"

// Repository persists feedback.
type Repository interface {
	Create(ctx context.Context, feedback Feedback) error
	ListByPrediction(ctx context.Context, predictionID string) ([]Feedback, error)
}
