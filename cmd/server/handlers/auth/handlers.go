package auth

import (
	"context"
	"errors"

	"portfolio-pulse/cmd/server/handlers/handlerutil"
	"portfolio-pulse/cmd/server/handlers/httperr"
	"portfolio-pulse/internal/logger"
	"portfolio-pulse/internal/services/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthService defines the interface for auth service
type AuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error)
}

// Handlers contains the auth HTTP handlers
type Handlers struct {
	authService AuthService
	validator   *validator.Validate
}

// NewHandlers creates new auth handlers
func NewHandlers(authService AuthService, validator *validator.Validate) *Handlers {
	return &Handlers{
		authService: authService,
		validator:   validator,
	}
}

// Login handles admin authentication
// @Summary Authenticate an admin
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Login request"
// @Success 200 {object} auth.AuthResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 429 {object} httperr.E
// @Router /auth/login [post]
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Login"); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.L().Info("login rejected", "handler", "Login", "email", req.Email)
			return httperr.Fail(httperr.E{
				Status:  401,
				Message: err.Error(),
			})
		}
		logger.L().Error("login service failed", "handler", "Login", "email", req.Email, "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(resp)
}

// Logout acknowledges the end of a session. Tokens are stateless, so
// there is nothing to revoke server-side; clients drop the token.
// @Summary Sign out an admin
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 401 {object} httperr.E
// @Router /auth/logout [post]
func (h *Handlers) Logout(c *fiber.Ctx) error {
	userEmail, _ := c.Locals("userEmail").(string)
	logger.L().Info("admin signed out", "handler", "Logout", "email", userEmail)
	return c.JSON(map[string]string{"message": "Successfully signed out"})
}
