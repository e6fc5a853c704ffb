package service

import (
	"fmt"
	"sync"
	"time"

	"go-pos-ledger/internal/apperr"
	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mock ProductRepository backed by a map, guarding quantity >= 0 the same
// way the conditional UPDATE does.
type mockProductRepo struct {
	mu            sync.Mutex
	products      map[uuid.UUID]*model.Product
	alwaysCollide bool // force every generated barcode to collide
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (m *mockProductRepo) seed(name string, barcode string, quantity int, price int64) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	p := &model.Product{Name: name, Barcode: barcode, Quantity: quantity, Price: price}
	p.ID = id
	m.products[id] = p
	return id
}

func (m *mockProductRepo) quantity(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].Quantity
}

func (m *mockProductRepo) Create(product *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for _, p := range m.products {
		if p.Barcode == product.Barcode {
			return fmt.Errorf("%w: duplicate barcode", apperr.ErrConflict)
		}
	}
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *mockProductRepo) FindAll() ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, id)
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductRepo) FindByBarcode(barcode string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.alwaysCollide {
		p := &model.Product{Barcode: barcode}
		p.ID = uuid.New()
		return p, nil
	}
	for _, p := range m.products {
		if p.Barcode == barcode {
			clone := *p
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("%w: barcode %s", apperr.ErrNotFound, barcode)
}

func (m *mockProductRepo) Delete(id uuid.UUID, deletedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("%w: product %s", apperr.ErrNotFound, id)
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) AdjustQuantity(id uuid.UUID, delta int, updatedBy string) (*model.Product, error) {
	return m.ApplyQuantityDelta(nil, id, delta, updatedBy)
}

func (m *mockProductRepo) ApplyQuantityDelta(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, id)
	}
	if p.Quantity+delta < 0 {
		return nil, fmt.Errorf("%w: product %s, delta %d", apperr.ErrInsufficientStock, id, delta)
	}
	p.Quantity += delta
	clone := *p
	return &clone, nil
}

// Mock SaleRepository. CreateSale honors the all-or-nothing contract by
// compensating already-applied decrements when a later line fails.
type mockSaleRepo struct {
	mu       sync.Mutex
	products *mockProductRepo
	lines    []model.SaleLine
}

func newMockSaleRepo(products *mockProductRepo) *mockSaleRepo {
	return &mockSaleRepo{products: products}
}

func (m *mockSaleRepo) CreateSale(receiptID uuid.UUID, lines []model.SaleLine, sellerID string) ([]model.SaleLine, error) {
	applied := 0
	for i := range lines {
		if _, err := m.products.ApplyQuantityDelta(nil, lines[i].ProductID, -lines[i].Quantity, sellerID); err != nil {
			for j := 0; j < applied; j++ {
				m.products.ApplyQuantityDelta(nil, lines[j].ProductID, lines[j].Quantity, sellerID)
			}
			return nil, err
		}
		applied++
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range lines {
		lines[i].ID = uuid.New()
		lines[i].ReceiptID = receiptID
		lines[i].Total = int64(lines[i].Quantity) * lines[i].UnitPrice
		lines[i].SellerUserID = &sellerID
		lines[i].CreatedAt = time.Now()
		m.lines = append(m.lines, lines[i])
	}
	return lines, nil
}

func (m *mockSaleRepo) FindAll() ([]model.SaleLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.SaleLine(nil), m.lines...), nil
}

func (m *mockSaleRepo) FindByReceiptID(receiptID uuid.UUID) ([]model.SaleLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SaleLine
	for _, line := range m.lines {
		if line.ReceiptID == receiptID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (m *mockSaleRepo) CountByProduct(productID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, line := range m.lines {
		if line.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (m *mockSaleRepo) GetDailySales(startDate, endDate time.Time) ([]repository.DailySalesData, error) {
	return nil, nil
}

func (m *mockSaleRepo) GetSummaryStats() (*repository.SummaryStats, error) {
	return &repository.SummaryStats{}, nil
}

// Notifier fake capturing recorded actions.
type recordingNotifier struct {
	mu      sync.Mutex
	actions []string
}

func (n *recordingNotifier) Record(actor Actor, action, entity string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.actions = append(n.actions, action)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.actions)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.actions) == 0 {
		return ""
	}
	return n.actions[len(n.actions)-1]
}

// Mock AuditRepository that always fails, for the best-effort path.
type failingAuditRepo struct{}

func (f *failingAuditRepo) Create(entry *model.AuditEntry) error {
	return fmt.Errorf("audit storage unavailable")
}

func (f *failingAuditRepo) FindRecent(limit int) ([]model.AuditEntry, error) {
	return nil, nil
}
