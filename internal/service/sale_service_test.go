package service

import (
	"errors"
	"strings"
	"testing"

	"go-pos-ledger/internal/apperr"

	"github.com/google/uuid"
)

func newTestSale() (SaleService, *mockProductRepo, *mockSaleRepo, *recordingNotifier) {
	products := newMockProductRepo()
	sales := newMockSaleRepo(products)
	notifier := &recordingNotifier{}
	svc := NewSaleService(sales, notifier, nil)
	return svc, products, sales, notifier
}

func TestCheckout_Success(t *testing.T) {
	svc, products, sales, notifier := newTestSale()
	// product P: quantity 10, catalog price 50.00
	p := products.seed("Cola", "111111111111", 10, 5000)

	// checkout 3 units at a manual price of 45.00
	receipt, err := svc.Checkout([]CheckoutLine{
		{ProductID: p, Quantity: 3, UnitPrice: 4500},
	}, Actor{ID: "seller-1", Name: "Ana"})
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}

	if receipt.Total != 13500 {
		t.Errorf("expected receipt total 13500, got %d", receipt.Total)
	}
	if got := products.quantity(p); got != 7 {
		t.Errorf("expected quantity 7 after checkout, got %d", got)
	}

	lines, _ := sales.FindAll()
	if len(lines) != 1 {
		t.Fatalf("expected 1 sale line, got %d", len(lines))
	}
	if lines[0].UnitPrice != 4500 || lines[0].Total != 13500 {
		t.Errorf("expected recorded unit price 4500 and total 13500, got %d / %d", lines[0].UnitPrice, lines[0].Total)
	}
	if lines[0].ReceiptID != receipt.ReceiptID {
		t.Errorf("sale line not grouped under receipt %s", receipt.ReceiptID)
	}
	if notifier.count() != 1 || !strings.Contains(notifier.last(), "Sale recorded") {
		t.Errorf("expected one 'Sale recorded' audit entry, got %v", notifier.actions)
	}
}

func TestCheckout_RollsBackAllLinesOnFailure(t *testing.T) {
	svc, products, sales, notifier := newTestSale()
	p := products.seed("Cola", "111111111111", 10, 5000)
	q := products.seed("Chips", "222222222222", 2, 3000)

	// line 1 would succeed, line 2 exceeds Q's stock
	_, err := svc.Checkout([]CheckoutLine{
		{ProductID: p, Quantity: 3, UnitPrice: 5000},
		{ProductID: q, Quantity: 5, UnitPrice: 3000},
	}, Actor{ID: "seller-1"})
	if !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got: %v", err)
	}

	if got := products.quantity(p); got != 10 {
		t.Errorf("expected P rolled back to 10, got %d", got)
	}
	if got := products.quantity(q); got != 2 {
		t.Errorf("expected Q unchanged at 2, got %d", got)
	}

	lines, _ := sales.FindAll()
	if len(lines) != 0 {
		t.Errorf("expected no sale lines after failed checkout, got %d", len(lines))
	}
	if notifier.count() != 0 {
		t.Errorf("failed checkout must not emit an audit entry, got %v", notifier.actions)
	}
}

func TestCheckout_UnknownProductRollsBack(t *testing.T) {
	svc, products, _, _ := newTestSale()
	p := products.seed("Cola", "111111111111", 10, 5000)

	_, err := svc.Checkout([]CheckoutLine{
		{ProductID: p, Quantity: 2, UnitPrice: 5000},
		{ProductID: uuid.New(), Quantity: 1, UnitPrice: 1000},
	}, Actor{ID: "seller-1"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if got := products.quantity(p); got != 10 {
		t.Errorf("expected P rolled back to 10, got %d", got)
	}
}

func TestCheckout_EmptyLines(t *testing.T) {
	svc, _, _, _ := newTestSale()

	_, err := svc.Checkout(nil, Actor{ID: "seller-1"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

func TestCheckout_RejectsInvalidLinesBeforeStorage(t *testing.T) {
	svc, products, sales, _ := newTestSale()
	p := products.seed("Cola", "111111111111", 10, 5000)

	cases := []struct {
		name  string
		lines []CheckoutLine
	}{
		{"zero quantity", []CheckoutLine{{ProductID: p, Quantity: 0, UnitPrice: 100}}},
		{"negative quantity", []CheckoutLine{{ProductID: p, Quantity: -1, UnitPrice: 100}}},
		{"negative unit price", []CheckoutLine{{ProductID: p, Quantity: 1, UnitPrice: -100}}},
		{"missing product id", []CheckoutLine{{Quantity: 1, UnitPrice: 100}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Checkout(tc.lines, Actor{ID: "seller-1"})
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("expected ErrValidation, got: %v", err)
			}
		})
	}

	if got := products.quantity(p); got != 10 {
		t.Errorf("validation failures must not touch stock, got %d", got)
	}
	if lines, _ := sales.FindAll(); len(lines) != 0 {
		t.Errorf("validation failures must not write history, got %d lines", len(lines))
	}
}

func TestCheckout_MultiLineTotals(t *testing.T) {
	svc, products, _, _ := newTestSale()
	p := products.seed("Cola", "111111111111", 10, 5000)
	q := products.seed("Chips", "222222222222", 8, 3000)

	receipt, err := svc.Checkout([]CheckoutLine{
		{ProductID: p, Quantity: 2, UnitPrice: 5000},
		{ProductID: q, Quantity: 3, UnitPrice: 2500},
	}, Actor{ID: "seller-1"})
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}

	if want := int64(2*5000 + 3*2500); receipt.Total != want {
		t.Errorf("expected total %d, got %d", want, receipt.Total)
	}
	if len(receipt.Lines) != 2 {
		t.Errorf("expected 2 lines on receipt, got %d", len(receipt.Lines))
	}
	if products.quantity(p) != 8 || products.quantity(q) != 5 {
		t.Errorf("expected quantities 8 and 5, got %d and %d", products.quantity(p), products.quantity(q))
	}
}

func TestGetReceipt(t *testing.T) {
	svc, products, _, _ := newTestSale()
	p := products.seed("Cola", "111111111111", 10, 5000)

	receipt, err := svc.Checkout([]CheckoutLine{{ProductID: p, Quantity: 1, UnitPrice: 5000}}, Actor{ID: "seller-1"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	fetched, err := svc.GetReceipt(receipt.ReceiptID)
	if err != nil {
		t.Fatalf("expected receipt, got: %v", err)
	}
	if fetched.Total != receipt.Total {
		t.Errorf("expected total %d, got %d", receipt.Total, fetched.Total)
	}

	if _, err := svc.GetReceipt(uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown receipt, got: %v", err)
	}
}
