package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/examtrack/core/internal/application/services"
	"github.com/examtrack/core/internal/infrastructure/logger"
)

// TodayHandler serves today's frozen task list and the toggle entry point.
type TodayHandler struct {
	planner *services.PlannerService
	logger  *logger.Logger
}

// NewTodayHandler creates a new today handler
func NewTodayHandler(planner *services.PlannerService, logger *logger.Logger) *TodayHandler {
	return &TodayHandler{
		planner: planner,
		logger:  logger,
	}
}

// GetToday returns today's schedule with live completion flags
func (h *TodayHandler) GetToday(c echo.Context) error {
	return c.JSON(http.StatusOK, h.planner.TodaySchedule(c.Request().Context()))
}

// GetCompletedToday returns the items checked off today, in completion order
func (h *TodayHandler) GetCompletedToday(c echo.Context) error {
	return c.JSON(http.StatusOK, h.planner.CompletedToday(c.Request().Context()))
}

// ToggleItem flips an item's completion state. Unknown ids are a no-op,
// reported as found=false rather than an error.
func (h *TodayHandler) ToggleItem(c echo.Context) error {
	result := h.planner.ToggleItem(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, result)
}
