package prediction

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

// Service records and retrieves yield predictions.
type Service struct {
	repo Repository
}

// NewService creates a new prediction service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddInput captures data required to record a prediction.
type AddInput struct {
	UserID          string
	CropType        string
	PlantingDate    int64
	YieldPrediction string
	HarvestDate     int64
	PredictionData  string
}

// Add records a prediction and returns it. Beyond requiring a well-formed
// owner id, no field validation is performed: a harvest date before the
// planting date is accepted as-is.
func (s *Service) Add(ctx context.Context, input AddInput) (Prediction, error) {
	if _, err := uuid.Parse(input.UserID); err != nil {
		return Prediction{}, fmt.Errorf("%w: user id: %v", ErrInvalidInput, err)
	}

	prediction := Prediction{
		ID:              uuid.New().String(),
		UserID:          input.UserID,
		CropType:        input.CropType,
		PlantingDate:    input.PlantingDate,
		YieldPrediction: input.YieldPrediction,
		HarvestDate:     input.HarvestDate,
		PredictionData:  input.PredictionData,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, prediction); err != nil {
		return Prediction{}, err
	}

	return prediction, nil
}

// ListByUser returns all predictions owned by a user, oldest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Prediction, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("%w: user id: %v", ErrInvalidInput, err)
	}
	return s.repo.ListByUser(ctx, userID)
}
