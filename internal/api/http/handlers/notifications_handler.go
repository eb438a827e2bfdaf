package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/finderapp/finder-service/internal/service"
)

// NotificationsHandler exposes the caller's notification feed.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs the handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

type notificationEntry struct {
	ID         int64     `json:"id"`
	PrisonerID int64     `json:"prisonerId"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	notes, err := h.notifications.ListForUser(c.Context(), claims.UserID)
	if err != nil {
		return err
	}

	out := make([]notificationEntry, 0, len(notes))
	for _, note := range notes {
		out = append(out, notificationEntry{
			ID:         note.ID,
			PrisonerID: note.PersonID,
			Message:    note.Message,
			IsRead:     note.Read,
			CreatedAt:  note.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"notifications": out})
}

// MarkRead handles PATCH /api/notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifications.MarkRead(c.Context(), claims.UserID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
