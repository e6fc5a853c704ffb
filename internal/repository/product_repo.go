package repository

import (
	"errors"
	"fmt"

	"go-pos-ledger/internal/apperr"
	"go-pos-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	Delete(id uuid.UUID, deletedBy string) error
	AdjustQuantity(id uuid.UUID, delta int, updatedBy string) (*model.Product, error)
	ApplyQuantityDelta(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (*model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("CreatedByUser").Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("CreatedByUser").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: barcode %s", apperr.ErrNotFound, barcode)
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Product{}).Where("id = ?", id).Update("deleted_by", deletedBy)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: product %s", apperr.ErrNotFound, id)
		}
		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
}

// AdjustQuantity runs the conditional update standalone, outside any caller
// transaction. A single adjustment needs no wider boundary.
func (r *productRepo) AdjustQuantity(id uuid.UUID, delta int, updatedBy string) (*model.Product, error) {
	return r.ApplyQuantityDelta(r.db, id, delta, updatedBy)
}

// ApplyQuantityDelta applies a signed quantity delta as one conditional
// UPDATE evaluated by the database. The quantity >= 0 invariant lives in the
// WHERE clause, so concurrent adjustments serialize at the storage layer and
// a rejected delta leaves the row untouched. Accepts *gorm.DB so checkout
// can run several deltas inside one transaction.
func (r *productRepo) ApplyQuantityDelta(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (*model.Product, error) {
	var updated model.Product
	res := tx.Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Zero rows means the product is missing or the delta would drive
		// quantity negative. Tell them apart with an existence check.
		var count int64
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: product %s, delta %d", apperr.ErrInsufficientStock, id, delta)
	}
	return &updated, nil
}
