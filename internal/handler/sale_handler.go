package handler

import (
	"go-pos-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// CheckoutRequest represents the checkout request body
type CheckoutRequest struct {
	Lines []service.CheckoutLine `json:"lines"`
}

// Checkout converts the requested lines into committed stock decrements
// POST /api/v1/checkout
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receipt, err := h.service.Checkout(req.Lines, getActor(c))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": receipt})
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetSales()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

// GetReceipt returns all lines of one checkout with its total
// GET /api/v1/sales/receipt/:id
func (h *SaleHandler) GetReceipt(c *fiber.Ctx) error {
	receiptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid receipt ID"})
	}

	receipt, err := h.service.GetReceipt(receiptID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(receipt)
}
