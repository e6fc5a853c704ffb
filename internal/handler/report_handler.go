package handler

import (
	"strconv"

	"go-pos-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetDailySales returns per-day sale units and revenue for charts
// Query params: days (default 7)
func (h *ReportHandler) GetDailySales(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetDailySales(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch daily sales"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetSummaryStats returns overview statistics
func (h *ReportHandler) GetSummaryStats(c *fiber.Ctx) error {
	stats, err := h.service.GetSummaryStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch summary stats"})
	}

	return c.JSON(stats)
}
