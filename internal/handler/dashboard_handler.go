package handler

import (
	"strconv"

	"secquiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultTopLimit = 10

// DashboardHandler serves the teacher dashboard endpoints. All routes behind
// it are admin-token protected.
type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Attempt count and mean percentage
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Security ApiKeyAuth
// @Router /admin/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary()
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// TopAttempts godoc
// @Summary Top attempts
// @Description Best attempts by percentage, ties broken by recency
// @Tags dashboard
// @Produce json
// @Param limit query int false "Maximum rows" default(10)
// @Success 200 {object} dto.AttemptsResponse
// @Security ApiKeyAuth
// @Router /admin/attempts/top [get]
func (h *DashboardHandler) TopAttempts(c *fiber.Ctx) error {
	limit := defaultTopLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	attempts, err := h.service.TopAttempts(limit)
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}

// AllAttempts godoc
// @Summary All attempts
// @Description Full attempt listing, most recent first
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.AttemptsResponse
// @Security ApiKeyAuth
// @Router /admin/attempts [get]
func (h *DashboardHandler) AllAttempts(c *fiber.Ctx) error {
	attempts, err := h.service.AllAttempts()
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}

// Export godoc
// @Summary Download results as CSV
// @Tags dashboard
// @Produce text/csv
// @Success 200
// @Security ApiKeyAuth
// @Router /admin/export [get]
func (h *DashboardHandler) Export(c *fiber.Ctx) error {
	data, err := h.service.ExportCSV()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="results.csv"`)
	return c.Send(data)
}

// Clear godoc
// @Summary Clear all results
// @Description Irreversibly removes the results store
// @Tags dashboard
// @Success 204
// @Security ApiKeyAuth
// @Router /admin/attempts [delete]
func (h *DashboardHandler) Clear(c *fiber.Ctx) error {
	if err := h.service.Clear(); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
