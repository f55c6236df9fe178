package feedback

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

// Service records and retrieves prediction feedback.
type Service struct {
	repo Repository
}

// NewService creates a new feedback service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SubmitInput captures data required to record feedback.
type SubmitInput struct {
	PredictionID   string
	UserID         string
	AccuracyRating float64
	Comment        string
	ActualYield    string
}

// Submit records feedback and returns it. The rating is stored without
// bounds checking.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Feedback, error) {
	if _, err := uuid.Parse(input.PredictionID); err != nil {
		return Feedback{}, fmt.Errorf("%w: prediction id: %v", ErrInvalidInput, err)
	}
	if _, err := uuid.Parse(input.UserID); err != nil {
		return Feedback{}, fmt.Errorf("%w: user id: %v", ErrInvalidInput, err)
	}

	feedback := Feedback{
		ID:             uuid.New().String(),
		PredictionID:   input.PredictionID,
		UserID:         input.UserID,
		AccuracyRating: input.AccuracyRating,
		Comment:        input.Comment,
		ActualYield:    input.ActualYield,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return Feedback{}, err
	}

	return feedback, nil
}

// ListByPrediction returns all feedback for a prediction, oldest first.
func (s *Service) ListByPrediction(ctx context.Context, predictionID string) ([]Feedback, error) {
	if _, err := uuid.Parse(predictionID); err != nil {
		return nil, fmt.Errorf("%w: prediction id: %v", ErrInvalidInput, err)
	}
	return s.repo.ListByPrediction(ctx, predictionID)
}
