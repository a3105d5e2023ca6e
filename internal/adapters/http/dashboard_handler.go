package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/core/internal/application/services"
)

// DashboardHandler serves the landing page summary
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary Dashboard
// @Description Open todo count, pinned and due todos, folder count, today's classes and the semester week
// @Tags dashboard
// @Produce json
// @Success 200 {object} ports.Dashboard
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	dash, err := h.dashboardService.GetDashboard(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dash)
}
