package handlers

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/internal/api/presenters"
	"Meal-Planner-Backend/pkg/planner"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	PlannerHandler interface {
		Calendar(c *fiber.Ctx) error
		ExportPDF(c *fiber.Ctx) error
	}

	plannerHandler struct {
		plannerService planner.PlannerService
	}
)

func NewPlannerHandler(plannerService planner.PlannerService) PlannerHandler {
	return &plannerHandler{plannerService: plannerService}
}

func (h *plannerHandler) Calendar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	events, err := h.plannerService.CalendarEvents(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCalendar, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"events": events}, fiber.StatusOK, domain.MessageSuccessGetCalendar)
}

// ExportPDF streams the fully rendered document. On renderer failure the
// client gets a recoverable error, never a truncated file.
func (h *plannerHandler) ExportPDF(c *fiber.Ctx) error {
	pdf, err := h.plannerService.WeeklyPlanPDF(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrPDFRenderFailed) {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedExportPDF, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExportPDF, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="meal_plan.pdf"`)
	return c.Send(pdf)
}
