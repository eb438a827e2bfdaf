package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/finderapp/finder-service/internal/api/dto"
	"github.com/finderapp/finder-service/internal/auth"
	"github.com/finderapp/finder-service/internal/domain"
	"github.com/finderapp/finder-service/internal/service"
	apperrors "github.com/finderapp/finder-service/pkg/util"
)

// AuthHandler exposes the account lifecycle endpoints.
type AuthHandler struct {
	auth         *service.AuthService
	secureCookie bool
}

// NewAuthHandler constructs the handler. secureCookie should be true in
// production so the session cookie is HTTPS-only.
func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: authService, secureCookie: secureCookie}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters long", nil)
	}
	role := domain.UserRole(req.UserType)
	if !domain.ValidRole(role) {
		return apperrors.NewValidationError("userType must be family or authority", nil)
	}

	user, token, _, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Role:         role,
		Organization: req.Organization,
		Position:     req.Position,
		Details:      req.Details,
	})
	if err != nil {
		return err
	}

	response := fiber.Map{
		"message": "User registered successfully",
		"user":    dto.NewUserResponse(user),
		"token":   nil,
	}
	if token != "" {
		auth.SetSessionCookie(c, token, h.auth.TokenManager().TTL(), h.secureCookie)
		response["token"] = token
	}
	return c.Status(http.StatusCreated).JSON(response)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, _, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, h.auth.TokenManager().TTL(), h.secureCookie)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    dto.NewUserResponse(user),
		"token":   token,
	})
}

// Logout handles POST /api/auth/logout. The cookie is cleared first; the
// token-mirror update is best effort and never fails the response.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c)

	if claims, ok := auth.ClaimsFromContext(c); ok {
		h.auth.Logout(c.Context(), claims.UserID)
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.auth.CurrentUser(c.Context(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user":            dto.NewUserResponse(user),
		"isAuthenticated": true,
	})
}

// PendingAuthorities handles GET /api/auth/pending-authorities.
func (h *AuthHandler) PendingAuthorities(c *fiber.Ctx) error {
	pending, err := h.auth.PendingAuthorities(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(pending))
	for i := range pending {
		out = append(out, dto.NewUserResponse(&pending[i]))
	}
	return c.JSON(fiber.Map{"pendingAuthorities": out})
}

// VerifyAuthority handles POST /api/auth/verify-authority.
func (h *AuthHandler) VerifyAuthority(c *fiber.Ctx) error {
	var req dto.VerifyAuthorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ID == 0 {
		return apperrors.NewValidationError("authority id is required", nil)
	}

	if err := h.auth.ReviewAuthority(c.Context(), req.ID, req.Approve); err != nil {
		return err
	}

	action := "rejected"
	if req.Approve {
		action = "approved"
	}
	return c.JSON(fiber.Map{"success": true, "action": action})
}
