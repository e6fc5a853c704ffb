package service

import (
	"fmt"

	"go-pos-ledger/internal/apperr"
	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"

	"github.com/google/uuid"
)

// CheckoutLine is one requested sale line. UnitPrice is caller-supplied and
// may differ from the catalog price (manual discounts); it is recorded as
// given.
type CheckoutLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
}

type SaleService interface {
	Checkout(lines []CheckoutLine, actor Actor) (*model.Receipt, error)
	GetSales() ([]model.SaleLine, error)
	GetReceipt(receiptID uuid.UUID) (*model.Receipt, error)
}

type saleService struct {
	saleRepo  repository.SaleRepository
	notifier  AuditNotifier
	publisher Publisher
}

func NewSaleService(sRepo repository.SaleRepository, notifier AuditNotifier, publisher Publisher) SaleService {
	return &saleService{
		saleRepo:  sRepo,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Checkout converts the requested lines into committed stock decrements and
// history rows. The whole checkout is atomic: if any line cannot be
// satisfied, every decrement is rolled back and no history is written.
func (s *saleService) Checkout(lines []CheckoutLine, actor Actor) (*model.Receipt, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: checkout requires at least one line", apperr.ErrValidation)
	}
	for i, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: line %d is missing a product id", apperr.ErrValidation, i)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", apperr.ErrValidation, i)
		}
		if line.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: line %d unit price must not be negative", apperr.ErrValidation, i)
		}
	}

	saleLines := make([]model.SaleLine, len(lines))
	for i, line := range lines {
		saleLines[i] = model.SaleLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	receiptID := uuid.New()
	committed, err := s.saleRepo.CreateSale(receiptID, saleLines, actor.ID)
	if err != nil {
		return nil, err
	}

	receipt := &model.Receipt{
		ReceiptID: receiptID,
		Lines:     committed,
	}
	totalUnits := 0
	for _, line := range committed {
		receipt.Total += line.Total
		totalUnits += line.Quantity
	}

	s.notifier.Record(actor,
		fmt.Sprintf("Sale recorded: %d lines, %d units, total %d", len(committed), totalUnits, receipt.Total),
		"receipt:"+receiptID.String())
	publishJSON(s.publisher, map[string]interface{}{
		"type":   "stock_update",
		"action": "sale_recorded",
		"sale": map[string]interface{}{
			"receipt_id": receiptID,
			"lines":      len(committed),
			"units":      totalUnits,
			"total":      receipt.Total,
		},
		"user": map[string]interface{}{
			"id":   actor.ID,
			"name": actor.Name,
			"role": actor.Role,
		},
	})

	return receipt, nil
}

func (s *saleService) GetSales() ([]model.SaleLine, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) GetReceipt(receiptID uuid.UUID) (*model.Receipt, error) {
	lines, err := s.saleRepo.FindByReceiptID(receiptID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: receipt %s", apperr.ErrNotFound, receiptID)
	}

	receipt := &model.Receipt{ReceiptID: receiptID, Lines: lines}
	for _, line := range lines {
		receipt.Total += line.Total
	}
	return receipt, nil
}
