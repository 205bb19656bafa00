// Package store holds the persistence side of the inventory: products,
// suppliers, their stock rows and the append-only operation journal.
//
// Two implementations share the Repository contract: MemoryStore for local
// runs and tests, GormStore for postgres/sqlite.
package store

import (
	"context"
	"errors"

	"skladets/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Repository is the storage boundary the inventory service works against.
// List methods return records in insertion (ID) order.
type Repository interface {
	CreateSupplier(ctx context.Context, s *models.Supplier) error
	// CreateProductWithStock persists a product and its stock row together;
	// the assigned product ID is written into both.
	CreateProductWithStock(ctx context.Context, p *models.Product, s *models.Stock) error
	// AppendOperation stores op and applies op.Type.Delta(op.Quantity) to the
	// product's stock in the same atomic step, creating the stock row if it
	// is missing. It returns the stock after the change.
	AppendOperation(ctx context.Context, op *models.Operation) (*models.Stock, error)
	// UpdateStockLevels sets only the threshold and warehouse label of a stock
	// row and returns the row as stored. The quantity is never written here.
	UpdateStockLevels(ctx context.Context, productID uint, minStock int64, warehouse string) (*models.Stock, error)

	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetSupplier(ctx context.Context, id uint) (*models.Supplier, error)
	GetStock(ctx context.Context, productID uint) (*models.Stock, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	ListStocks(ctx context.Context) ([]models.Stock, error)
	ListOperations(ctx context.Context) ([]models.Operation, error)
}
