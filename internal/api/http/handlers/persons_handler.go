package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/finderapp/finder-service/internal/api/dto"
	"github.com/finderapp/finder-service/internal/auth"
	"github.com/finderapp/finder-service/internal/domain"
	"github.com/finderapp/finder-service/internal/repository"
	"github.com/finderapp/finder-service/internal/service"
	apperrors "github.com/finderapp/finder-service/pkg/util"
)

// PersonsHandler exposes missing-person registry endpoints.
type PersonsHandler struct {
	persons *service.PersonService
	auth    *service.AuthService
}

// NewPersonsHandler constructs the handler.
func NewPersonsHandler(persons *service.PersonService, authService *service.AuthService) *PersonsHandler {
	return &PersonsHandler{persons: persons, auth: authService}
}

// List handles GET /api/prisoners with optional name/status/location filters.
func (h *PersonsHandler) List(c *fiber.Ctx) error {
	filter := repository.PersonFilter{}
	if name := c.Query("name"); name != "" {
		filter.Name = &name
	}
	if status := c.Query("status"); status != "" {
		st := domain.PersonStatus(status)
		if st != domain.StatusUnderSearch && st != domain.StatusFound {
			return apperrors.NewValidationError("invalid status filter", nil)
		}
		filter.Status = &st
	}
	if location := c.Query("location"); location != "" {
		filter.Location = &location
	}

	persons, err := h.persons.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"prisoners": dto.NewPersonResponses(persons)})
}

// Search handles GET /api/search?name=.
func (h *PersonsHandler) Search(c *fiber.Ctx) error {
	persons, err := h.persons.Search(c.Context(), c.Query("name"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPersonResponses(persons))
}

// Create handles POST /api/prisoners.
func (h *PersonsHandler) Create(c *fiber.Ctx) error {
	actor, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req dto.PersonRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	person, err := h.persons.Create(c.Context(), personInput(req), actor)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "Prisoner added successfully",
		"prisoner": dto.NewPersonResponse(person),
	})
}

// Update handles PATCH /api/prisoners/manage/:id, the authority-only path
// used to record releases and other corrections.
func (h *PersonsHandler) Update(c *fiber.Ctx) error {
	actor, err := h.currentUser(c)
	if err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.PersonRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	person, err := h.persons.Update(c.Context(), id, personInput(req), actor)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "Prisoner updated successfully",
		"prisoner": dto.NewPersonResponse(person),
	})
}

// Delete handles DELETE /api/prisoners/manage/:id.
func (h *PersonsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.persons.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Prisoner removed successfully"})
}

func (h *PersonsHandler) currentUser(c *fiber.Ctx) (*domain.User, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return h.auth.CurrentUser(c.Context(), claims.UserID)
}

func personInput(req dto.PersonRequest) service.PersonInput {
	return service.PersonInput{
		Name:                    req.Name,
		Age:                     req.Age,
		Gender:                  req.Gender,
		ReasonForCapture:        req.ReasonForCapture,
		LocationOfDisappearance: req.LocationOfDisappearance,
		DateOfDisappearance:     req.DateOfDisappearance,
		AdditionalInfo:          req.AdditionalInfo,
		ContactPerson:           req.ContactPerson,
		ContactPhone:            req.ContactPhone,
		Status:                  domain.PersonStatus(req.Status),
		IsRegular:               req.IsRegular,
		IsCivilian:              req.IsCivilian,
		ReleasedDate:            req.ReleasedDate,
		ReleasedLocation:        req.ReleasedLocation,
		ReleasedNotes:           req.ReleasedNotes,
	}
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}
