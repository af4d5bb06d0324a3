package handlers

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/internal/api/presenters"
	"Meal-Planner-Backend/pkg/dashboard"

	"github.com/gofiber/fiber/v2"
)

type (
	DashboardHandler interface {
		AdminDashboard(c *fiber.Ctx) error
		ChefDashboard(c *fiber.Ctx) error
		UserDashboard(c *fiber.Ctx) error
	}

	dashboardHandler struct {
		dashboardService dashboard.DashboardService
	}
)

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandler{dashboardService: dashboardService}
}

func (h *dashboardHandler) AdminDashboard(c *fiber.Ctx) error {
	res, err := h.dashboardService.AdminDashboard(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

// ChefDashboard is the one route with redirect-on-deny for non-chefs: an
// admin or plain user lands on the user dashboard instead of an error.
func (h *dashboardHandler) ChefDashboard(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role != string(domain.RoleChef) {
		return c.Redirect(domain.PathDashboardUser, fiber.StatusSeeOther)
	}

	userID := c.Locals("user_id").(string)
	res, err := h.dashboardService.ChefDashboard(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *dashboardHandler) UserDashboard(c *fiber.Ctx) error {
	res, err := h.dashboardService.UserDashboard(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
