package handler

import (
	"ucstore-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	service service.StatsService
}

func NewStatsHandler(s service.StatsService) *StatsHandler {
	return &StatsHandler{service: s}
}

// GetSummary returns the dashboard totals.
func (h *StatsHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}
	return c.JSON(summary)
}

// GetRecent lists sales and purchases of the last ?days=7.
func (h *StatsHandler) GetRecent(c *fiber.Ctx) error {
	recent, err := h.service.GetRecentActivity(c.QueryInt("days", service.DefaultWindowDays))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch recent activity"})
	}
	return c.JSON(recent)
}

// GetMovement returns stock movement data for charts
// Query params: days (default 7)
func (h *StatsHandler) GetMovement(c *fiber.Ctx) error {
	data, err := h.service.GetMovement(c.QueryInt("days", service.DefaultWindowDays))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}
	return c.JSON(data)
}

func (h *StatsHandler) GetTopProducts(c *fiber.Ctx) error {
	top, err := h.service.GetTopProducts(c.QueryInt("limit", service.DefaultTopLimit))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch top products"})
	}
	return c.JSON(top)
}

func (h *StatsHandler) GetMonthly(c *fiber.Ctx) error {
	months, err := h.service.GetMonthlyRevenue()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch monthly revenue"})
	}
	return c.JSON(months)
}
