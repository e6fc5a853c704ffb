package handler

import (
	"go-pos-ledger/internal/apperr"
	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LedgerHandler struct {
	service service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

// Helper to build the Actor from the JWT context (set by auth middleware)
func getActor(c *fiber.Ctx) service.Actor {
	actor := service.Actor{ID: "system", Name: "Unknown"}
	if id, ok := c.Locals("user_id").(string); ok {
		actor.ID = id
	}
	if name, ok := c.Locals("user_name").(string); ok {
		actor.Name = name
	}
	if role, ok := c.Locals("user_role").(string); ok {
		actor.Role = role
	}
	return actor
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
}

// AdjustRequest represents a stock adjustment request body
type AdjustRequest struct {
	Delta int `json:"delta"`
}

// Adjust handles a stock adjustment (restock or consumption)
// POST /api/v1/products/:id/adjust
func (h *LedgerHandler) Adjust(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.Adjust(productID, req.Delta, getActor(c))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Stock adjusted", "data": product})
}

// RegisterProduct handles catalog registration
// POST /api/v1/products
func (h *LedgerHandler) RegisterProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.RegisterProduct(&product, getActor(c)); err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product registered", "data": product})
}

// DeleteProduct removes a product that has no sale history
// DELETE /api/v1/products/:id
func (h *LedgerHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(productID, getActor(c)); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *LedgerHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *LedgerHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(productID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(product)
}

// GetProductByBarcode resolves a scanned barcode to its product
// GET /api/v1/products/barcode/:code
func (h *LedgerHandler) GetProductByBarcode(c *fiber.Ctx) error {
	product, err := h.service.GetProductByBarcode(c.Params("code"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(product)
}
