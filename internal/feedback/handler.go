package feedback

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes feedback HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a feedback HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type submitRequest struct {
	PredictionID   string  `json:"prediction_id"`
	UserID         string  `json:"user_id"`
	AccuracyRating float64 `json:"accuracy_rating"`
	Comment        string  `json:"comment,omitempty"`
	ActualYield    string  `json:"actual_yield,omitempty"`
}

type feedbackResponse struct {
	ID             string    `json:"id"`
	PredictionID   string    `json:"prediction_id"`
	UserID         string    `json:"user_id"`
	AccuracyRating float64   `json:"accuracy_rating"`
	Comment        string    `json:"comment,omitempty"`
	ActualYield    string    `json:"actual_yield,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toResponse(feedback Feedback) feedbackResponse {
	return feedbackResponse{
		ID:             feedback.ID,
		PredictionID:   feedback.PredictionID,
		UserID:         feedback.UserID,
		AccuracyRating: feedback.AccuracyRating,
		Comment:        feedback.Comment,
		ActualYield:    feedback.ActualYield,
		CreatedAt:      feedback.CreatedAt,
	}
}

// Submit records feedback for a prediction.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	feedback, err := h.service.Submit(c.UserContext(), SubmitInput{
		PredictionID:   req.PredictionID,
		UserID:         req.UserID,
		AccuracyRating: req.AccuracyRating,
		Comment:        req.Comment,
		ActualYield:    req.ActualYield,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toResponse(feedback))
}

// ListByPrediction returns every feedback entry for the given prediction.
func (h *Handler) ListByPrediction(c *fiber.Ctx) error {
	entries, err := h.service.ListByPrediction(c.UserContext(), c.Params("predictionId"))
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]feedbackResponse, 0, len(entries))
	for _, feedback := range entries {
		out = append(out, toResponse(feedback))
	}
	return c.Status(http.StatusOK).JSON(out)
}
