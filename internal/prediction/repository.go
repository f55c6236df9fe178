package prediction

import "context"

// Repository persists predictions.
type Repository interface {
	Create(ctx context.Context, prediction Prediction) error
	ListByUser(ctx context.Context, userID string) ([]Prediction, error)
}
