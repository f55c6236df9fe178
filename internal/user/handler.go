package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes user HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type syncRequest struct {
	ClerkID  string `json:"clerk_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Image    string `json:"image,omitempty"`
	Role     string `json:"role,omitempty"`
}

type userResponse struct {
	ID        string    `json:"id"`
	ClerkID   string    `json:"clerk_id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	Role      string    `json:"role"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(user User) userResponse {
	return userResponse{
		ID:        user.ID,
		ClerkID:   user.ClerkID,
		Username:  user.Username,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Location:  user.Location,
		Role:      user.Role,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
	}
}

// Sync upserts a user record from identity-provider data.
func (h *Handler) Sync(c *fiber.Ctx) error {
	var req syncRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, created, err := h.service.Sync(c.UserContext(), SyncInput{
		ClerkID:  req.ClerkID,
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Image:    req.Image,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(toResponse(user))
}

// List returns all users.
func (h *Handler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toResponse(user))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// GetByClerkID returns a single user by identity-provider identifier.
func (h *Handler) GetByClerkID(c *fiber.Ctx) error {
	user, err := h.service.GetByClerkID(c.UserContext(), c.Params("clerkId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidInput):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(toResponse(user))
}
