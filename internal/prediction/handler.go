package prediction

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes prediction HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a prediction HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type addRequest struct {
	UserID          string `json:"user_id"`
	CropType        string `json:"crop_type"`
	PlantingDate    int64  `json:"planting_date"`
	YieldPrediction string `json:"yield_prediction"`
	HarvestDate     int64  `json:"harvest_date"`
	PredictionData  string `json:"prediction_data,omitempty"`
}

type predictionResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CropType        string    `json:"crop_type"`
	PlantingDate    int64     `json:"planting_date"`
	YieldPrediction string    `json:"yield_prediction"`
	HarvestDate     int64     `json:"harvest_date"`
	PredictionData  string    `json:"prediction_data,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toResponse(prediction Prediction) predictionResponse {
	return predictionResponse{
		ID:              prediction.ID,
		UserID:          prediction.UserID,
		CropType:        prediction.CropType,
		PlantingDate:    prediction.PlantingDate,
		YieldPrediction: prediction.YieldPrediction,
		HarvestDate:     prediction.HarvestDate,
		PredictionData:  prediction.PredictionData,
		CreatedAt:       prediction.CreatedAt,
	}
}

// Add records a new yield prediction.
func (h *Handler) Add(c *fiber.Ctx) error {
	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	prediction, err := h.service.Add(c.UserContext(), AddInput{
		UserID:          req.UserID,
		CropType:        req.CropType,
		PlantingDate:    req.PlantingDate,
		YieldPrediction: req.YieldPrediction,
		HarvestDate:     req.HarvestDate,
		PredictionData:  req.PredictionData,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toResponse(prediction))
}

// ListByUser returns every prediction owned by the given user.
func (h *Handler) ListByUser(c *fiber.Ctx) error {
	predictions, err := h.service.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]predictionResponse, 0, len(predictions))
	for _, prediction := range predictions {
		out = append(out, toResponse(prediction))
	}
	return c.Status(http.StatusOK).JSON(out)
}
