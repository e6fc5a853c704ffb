package repository

import (
	"time"

	"go-pos-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// CreateSale decrements stock and writes history for every line inside
	// one transaction. Any failing line aborts the whole sale.
	CreateSale(receiptID uuid.UUID, lines []model.SaleLine, sellerID string) ([]model.SaleLine, error)
	FindAll() ([]model.SaleLine, error)
	FindByReceiptID(receiptID uuid.UUID) ([]model.SaleLine, error)
	CountByProduct(productID uuid.UUID) (int64, error)
	GetDailySales(startDate, endDate time.Time) ([]DailySalesData, error)
	GetSummaryStats() (*SummaryStats, error)
}

// DailySalesData for chart data
type DailySalesData struct {
	Date    string `json:"date"`
	Units   int    `json:"units"`
	Revenue int64  `json:"revenue"`
}

// SummaryStats for overview stats
type SummaryStats struct {
	TotalProducts  int64 `json:"total_products"`
	LowStockCount  int64 `json:"low_stock_count"`
	TotalValuation int64 `json:"total_valuation"`
}

type saleRepo struct {
	db       *gorm.DB
	products ProductRepository
}

func NewSaleRepo(db *gorm.DB, products ProductRepository) SaleRepository {
	return &saleRepo{db: db, products: products}
}

func (r *saleRepo) CreateSale(receiptID uuid.UUID, lines []model.SaleLine, sellerID string) ([]model.SaleLine, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range lines {
			if _, err := r.products.ApplyQuantityDelta(tx, lines[i].ProductID, -lines[i].Quantity, sellerID); err != nil {
				return err
			}

			lines[i].ReceiptID = receiptID
			lines[i].Total = int64(lines[i].Quantity) * lines[i].UnitPrice
			lines[i].SellerUserID = &sellerID
			lines[i].CreatedBy = sellerID
			lines[i].UpdatedBy = sellerID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *saleRepo) FindAll() ([]model.SaleLine, error) {
	var sales []model.SaleLine
	err := r.db.Preload("Product").Preload("SellerUser").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByReceiptID(receiptID uuid.UUID) ([]model.SaleLine, error) {
	var sales []model.SaleLine
	err := r.db.Preload("Product").Preload("SellerUser").Where("receipt_id = ?", receiptID).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) CountByProduct(productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.SaleLine{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *saleRepo) GetDailySales(startDate, endDate time.Time) ([]DailySalesData, error) {
	var results []DailySalesData

	rows, err := r.db.Model(&model.SaleLine{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(quantity), 0) as units,
			COALESCE(SUM(total), 0) as revenue
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySalesData
		if err := rows.Scan(&data.Date, &data.Units, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *saleRepo) GetSummaryStats() (*SummaryStats, error) {
	var stats SummaryStats

	// Total Products
	r.db.Model(&model.Product{}).Count(&stats.TotalProducts)

	// Low Stock Count (quantity < 10)
	r.db.Model(&model.Product{}).Where("quantity < ?", 10).Count(&stats.LowStockCount)

	// Total Valuation (SUM of quantity * price)
	r.db.Model(&model.Product{}).Select("COALESCE(SUM(quantity * price), 0)").Scan(&stats.TotalValuation)

	return &stats, nil
}
