package service

import (
	"fmt"
	"math/rand"

	"go-pos-ledger/internal/apperr"
	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"
	"go-pos-ledger/pkg/validator"

	"github.com/google/uuid"
)

const (
	barcodeLength      = 12
	barcodeMaxAttempts = 5
)

// Publisher receives serialized events for connected clients after commit.
type Publisher interface {
	Publish(message []byte)
}

type LedgerService interface {
	Adjust(productID uuid.UUID, delta int, actor Actor) (*model.Product, error)
	RegisterProduct(req *model.Product, actor Actor) error
	DeleteProduct(id uuid.UUID, actor Actor) error
	GetProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetProductByBarcode(barcode string) (*model.Product, error)
}

type ledgerService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	notifier    AuditNotifier
	publisher   Publisher
}

func NewLedgerService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, notifier AuditNotifier, publisher Publisher) LedgerService {
	return &ledgerService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		notifier:    notifier,
		publisher:   publisher,
	}
}

// Adjust applies a signed quantity delta. Positive restocks, negative
// consumes. The adjustment is all-or-nothing: a delta that would drive the
// quantity negative is rejected and the quantity stays unchanged.
func (s *ledgerService) Adjust(productID uuid.UUID, delta int, actor Actor) (*model.Product, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: delta must be non-zero", apperr.ErrValidation)
	}

	updated, err := s.productRepo.AdjustQuantity(productID, delta, actor.ID)
	if err != nil {
		return nil, err
	}

	action := fmt.Sprintf("Stock added: %d units of '%s' (now %d)", delta, updated.Name, updated.Quantity)
	if delta < 0 {
		action = fmt.Sprintf("Stock removed: %d units of '%s' (now %d)", -delta, updated.Name, updated.Quantity)
	}
	s.notifier.Record(actor, action, "product:"+updated.ID.String())
	s.publishStockUpdate("stock_adjusted", updated, actor)

	return updated, nil
}

func (s *ledgerService) RegisterProduct(req *model.Product, actor Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", apperr.ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	if req.Barcode == "" {
		barcode, err := s.generateBarcode()
		if err != nil {
			return err
		}
		req.Barcode = barcode
	} else {
		existing, _ := s.productRepo.FindByBarcode(req.Barcode)
		if existing != nil && existing.ID != uuid.Nil {
			return fmt.Errorf("%w: barcode %s already registered", apperr.ErrConflict, req.Barcode)
		}
	}

	req.CreatedBy = actor.ID
	req.UpdatedBy = actor.ID
	req.CreatedByUserID = &actor.ID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.notifier.Record(actor, fmt.Sprintf("Product registered: '%s' (barcode %s)", req.Name, req.Barcode), "product:"+req.ID.String())
	s.publishStockUpdate("product_registered", req, actor)

	return nil
}

// DeleteProduct refuses to destroy a product that sale history still
// references, deleting it would orphan immutable receipts.
func (s *ledgerService) DeleteProduct(id uuid.UUID, actor Actor) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return err
	}

	refs, err := s.saleRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: product '%s' is referenced by %d sale lines", apperr.ErrConflict, product.Name, refs)
	}

	if err := s.productRepo.Delete(id, actor.ID); err != nil {
		return err
	}

	s.notifier.Record(actor, fmt.Sprintf("Product deleted: '%s'", product.Name), "product:"+id.String())
	s.publishStockUpdate("product_deleted", product, actor)

	return nil
}

func (s *ledgerService) GetProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *ledgerService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *ledgerService) GetProductByBarcode(barcode string) (*model.Product, error) {
	return s.productRepo.FindByBarcode(barcode)
}

// generateBarcode draws 12 random digits and checks for collisions. The
// unique index on barcode is the final guard against a concurrent register
// landing on the same code between check and insert.
func (s *ledgerService) generateBarcode() (string, error) {
	for attempt := 0; attempt < barcodeMaxAttempts; attempt++ {
		digits := make([]byte, barcodeLength)
		for i := range digits {
			digits[i] = byte('0' + rand.Intn(10))
		}
		candidate := string(digits)

		existing, _ := s.productRepo.FindByBarcode(candidate)
		if existing == nil || existing.ID == uuid.Nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: barcode generation exhausted after %d attempts", apperr.ErrConflict, barcodeMaxAttempts)
}

func (s *ledgerService) publishStockUpdate(action string, product *model.Product, actor Actor) {
	payload := map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"product": map[string]interface{}{
			"id":       product.ID,
			"barcode":  product.Barcode,
			"name":     product.Name,
			"quantity": product.Quantity,
			"price":    product.Price,
		},
		"user": map[string]interface{}{
			"id":   actor.ID,
			"name": actor.Name,
			"role": actor.Role,
		},
	}
	publishJSON(s.publisher, payload)
}
