package store

import (
	"context"
	"errors"
	"fmt"

	"skladets/internal/models"

	"gorm.io/gorm"
)

// GormStore is the relational Repository. Stock changes are applied as a
// single-row UPDATE inside the same transaction as the journal insert, so two
// concurrent operations on one product cannot lose an update.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Repository = (*GormStore)(nil)

func (r *GormStore) CreateSupplier(ctx context.Context, s *models.Supplier) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

func (r *GormStore) CreateProductWithStock(ctx context.Context, p *models.Product, s *models.Stock) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.SupplierID != nil {
			var count int64
			if err := tx.Model(&models.Supplier{}).Where("id = ?", *p.SupplierID).Count(&count).Error; err != nil {
				return fmt.Errorf("check supplier: %w", err)
			}
			if count == 0 {
				return fmt.Errorf("supplier %d: %w", *p.SupplierID, ErrNotFound)
			}
		}

		if err := tx.Omit("Supplier").Create(p).Error; err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		s.ProductID = p.ID
		if err := tx.Omit("Product").Create(s).Error; err != nil {
			return fmt.Errorf("create stock: %w", err)
		}
		return nil
	})
}

func (r *GormStore) AppendOperation(ctx context.Context, op *models.Operation) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Product").Create(op).Error; err != nil {
			return fmt.Errorf("create operation: %w", err)
		}

		// Остатка может не быть, если товар заведён в обход CreateProductWithStock.
		defaults := models.NewStock(op.ProductID)
		if err := tx.Omit("Product").
			Where(models.Stock{ProductID: op.ProductID}).
			Attrs(models.Stock{Warehouse: defaults.Warehouse}).
			FirstOrCreate(&stock).Error; err != nil {
			return fmt.Errorf("load stock: %w", err)
		}

		if delta := op.Type.Delta(op.Quantity); delta != 0 {
			if err := tx.Model(&models.Stock{}).
				Where("product_id = ?", op.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", delta)).Error; err != nil {
				return fmt.Errorf("apply stock delta: %w", err)
			}
		}

		return tx.First(&stock, "product_id = ?", op.ProductID).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *GormStore) UpdateStockLevels(ctx context.Context, productID uint, minStock int64, warehouse string) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Stock{}).
			Where("product_id = ?", productID).
			Updates(map[string]any{
				"min_stock": minStock,
				"warehouse": warehouse,
			})
		if res.Error != nil {
			return fmt.Errorf("update stock levels: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("stock for product %d: %w", productID, ErrNotFound)
		}
		return tx.First(&stock, "product_id = ?", productID).Error
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *GormStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "product %d", id)
	}
	return &p, nil
}

func (r *GormStore) GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "supplier %d", id)
	}
	return &s, nil
}

func (r *GormStore) GetStock(ctx context.Context, productID uint) (*models.Stock, error) {
	var s models.Stock
	if err := r.db.WithContext(ctx).First(&s, "product_id = ?", productID).Error; err != nil {
		return nil, notFound(err, "stock for product %d", productID)
	}
	return &s, nil
}

func (r *GormStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := r.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (r *GormStore) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var out []models.Supplier
	if err := r.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return out, nil
}

func (r *GormStore) ListStocks(ctx context.Context) ([]models.Stock, error) {
	var out []models.Stock
	if err := r.db.WithContext(ctx).Order("product_id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	return out, nil
}

func (r *GormStore) ListOperations(ctx context.Context) ([]models.Operation, error) {
	var out []models.Operation
	if err := r.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	return out, nil
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
