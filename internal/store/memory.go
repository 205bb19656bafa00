package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"skladets/internal/models"
)

// MemoryStore keeps everything in maps. A single mutex serialises writers,
// which also covers the read-modify-write on stock quantities.
type MemoryStore struct {
	mu sync.RWMutex

	products   map[uint]models.Product
	suppliers  map[uint]models.Supplier
	stocks     map[uint]models.Stock
	operations []models.Operation

	nextProduct   uint
	nextSupplier  uint
	nextOperation uint

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:      make(map[uint]models.Product),
		suppliers:     make(map[uint]models.Supplier),
		stocks:        make(map[uint]models.Stock),
		nextProduct:   1,
		nextSupplier:  1,
		nextOperation: 1,
		now:           time.Now,
	}
}

var _ Repository = (*MemoryStore)(nil)

func (m *MemoryStore) CreateSupplier(_ context.Context, s *models.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.ID = m.nextSupplier
	m.nextSupplier++
	if s.CreatedAt.IsZero() {
		s.CreatedAt = m.now()
	}
	m.suppliers[s.ID] = *s
	return nil
}

func (m *MemoryStore) CreateProductWithStock(_ context.Context, p *models.Product, s *models.Stock) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.SupplierID != nil {
		if _, ok := m.suppliers[*p.SupplierID]; !ok {
			return fmt.Errorf("supplier %d: %w", *p.SupplierID, ErrNotFound)
		}
	}

	p.ID = m.nextProduct
	m.nextProduct++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = m.now()
	}
	s.ProductID = p.ID

	stored := *p
	stored.Supplier = nil
	m.products[p.ID] = stored
	m.stocks[p.ID] = plainStock(*s)
	return nil
}

func (m *MemoryStore) AppendOperation(_ context.Context, op *models.Operation) (*models.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	op.ID = m.nextOperation
	m.nextOperation++
	if op.CreatedAt.IsZero() {
		op.CreatedAt = m.now()
	}
	stored := *op
	stored.Product = nil
	m.operations = append(m.operations, stored)

	stock, ok := m.stocks[op.ProductID]
	if !ok {
		stock = *models.NewStock(op.ProductID)
	}
	stock.Quantity += op.Type.Delta(op.Quantity)
	m.stocks[op.ProductID] = stock

	return &stock, nil
}

func (m *MemoryStore) UpdateStockLevels(_ context.Context, productID uint, minStock int64, warehouse string) (*models.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stock, ok := m.stocks[productID]
	if !ok {
		return nil, fmt.Errorf("stock for product %d: %w", productID, ErrNotFound)
	}
	stock.MinStock = minStock
	stock.Warehouse = warehouse
	m.stocks[productID] = stock
	return &stock, nil
}

func (m *MemoryStore) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (m *MemoryStore) GetSupplier(_ context.Context, id uint) (*models.Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.suppliers[id]
	if !ok {
		return nil, fmt.Errorf("supplier %d: %w", id, ErrNotFound)
	}
	return &s, nil
}

func (m *MemoryStore) GetStock(_ context.Context, productID uint) (*models.Stock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stocks[productID]
	if !ok {
		return nil, fmt.Errorf("stock for product %d: %w", productID, ErrNotFound)
	}
	return &s, nil
}

func (m *MemoryStore) ListProducts(_ context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) ListSuppliers(_ context.Context) ([]models.Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Supplier, 0, len(m.suppliers))
	for _, s := range m.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) ListStocks(_ context.Context) ([]models.Stock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Stock, 0, len(m.stocks))
	for _, s := range m.stocks {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (m *MemoryStore) ListOperations(_ context.Context) ([]models.Operation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Operation, len(m.operations))
	copy(out, m.operations)
	return out, nil
}

func plainStock(s models.Stock) models.Stock {
	s.Product = nil
	return s
}
