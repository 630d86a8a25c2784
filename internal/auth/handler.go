package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tchybbi/Smatico/internal/alerts"
	"github.com/Tchybbi/Smatico/internal/store"
)

// Handler serves signup/login/logout/me.
type Handler struct {
	Store  *store.Store
	Events *alerts.Dispatcher
	Secret string
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=customer provider"`
}

type AuthResponse struct {
	Token string           `json:"token"`
	User  store.PublicUser `json:"user"`
}

// ===== Signup =====
func (h *Handler) Signup(c echo.Context) error {
	req := new(SignupRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and a password of at least 6 characters are required"})
	}

	user, err := h.Store.SignUp(store.SignUpData{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidRole) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be customer or provider"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	signed, err := issueToken(h.Secret, user.ID, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	h.Events.Welcome(user)

	return c.JSON(http.StatusOK, AuthResponse{Token: signed, User: user.Public()})
}
