package handler

import (
	"strconv"

	"go-pos-ledger/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	auditRepo repository.AuditRepository
}

func NewAuditHandler(auditRepo repository.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// GetEntries returns the most recent audit entries
// GET /api/v1/audit?limit=100
func (h *AuditHandler) GetEntries(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	entries, err := h.auditRepo.FindRecent(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch audit entries"})
	}
	return c.JSON(entries)
}
