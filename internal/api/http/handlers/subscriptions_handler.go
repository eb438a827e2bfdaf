package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/finderapp/finder-service/internal/api/dto"
	"github.com/finderapp/finder-service/internal/auth"
	"github.com/finderapp/finder-service/internal/service"
	apperrors "github.com/finderapp/finder-service/pkg/util"
)

// SubscriptionsHandler exposes subscription management endpoints. All
// mutations go through the service's ownership check.
type SubscriptionsHandler struct {
	subs *service.SubscriptionService
}

// NewSubscriptionsHandler constructs the handler.
func NewSubscriptionsHandler(subs *service.SubscriptionService) *SubscriptionsHandler {
	return &SubscriptionsHandler{subs: subs}
}

// List handles GET /api/subscriptions.
func (h *SubscriptionsHandler) List(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	views, err := h.subs.List(c.Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"searches": dto.NewSubscriptionEntries(views)})
}

// Create handles POST /api/subscriptions.
func (h *SubscriptionsHandler) Create(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	var req dto.SubscriptionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PersonID <= 0 {
		return apperrors.NewValidationError("prisonerId is required", nil)
	}

	sub, err := h.subs.Create(c.Context(), claims.UserID, req.PersonID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":      "Subscription created",
		"id":           sub.ID,
		"prisonerId":   sub.PersonID,
		"isSubscribed": sub.Active,
	})
}

// Toggle handles PATCH /api/subscriptions/:id.
func (h *SubscriptionsHandler) Toggle(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	active, err := h.subs.Toggle(c.Context(), claims.UserID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Subscription status updated", "isActive": active})
}

// Delete handles DELETE /api/subscriptions/:id.
func (h *SubscriptionsHandler) Delete(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.subs.Delete(c.Context(), claims.UserID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Subscription removed successfully"})
}

func requireClaims(c *fiber.Ctx) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return claims, nil
}
