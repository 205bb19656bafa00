package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skladets/internal/models"
	"skladets/internal/store"

	"go.uber.org/zap"
)

type SupplierInput struct {
	Name    string
	Contact string
}

type ProductInput struct {
	Name        string
	SKU         string
	Category    string
	Unit        string
	SupplierID  *uint // nil или 0 - без поставщика
	Description string
}

func (s *Service) CreateSupplier(ctx context.Context, in SupplierInput) (*models.Supplier, error) {
	var verr ValidationError
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.add("name", ErrRequiredField, "Укажите название")
	}
	if !verr.empty() {
		return nil, &verr
	}

	sup := &models.Supplier{Name: name, Contact: strings.TrimSpace(in.Contact)}
	if err := s.repo.CreateSupplier(ctx, sup); err != nil {
		return nil, fmt.Errorf("поставщик не сохранён: %w", err)
	}

	s.log.Info("поставщик добавлен", zap.Uint("supplier_id", sup.ID), zap.String("name", sup.Name))
	return sup, nil
}

// CreateProduct creates the product together with its opening stock
// (quantity 0, no threshold, default warehouse).
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, *models.Stock, error) {
	p := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		SKU:         strings.TrimSpace(in.SKU),
		Category:    strings.TrimSpace(in.Category),
		Unit:        strings.TrimSpace(in.Unit),
		Description: strings.TrimSpace(in.Description),
	}

	var verr ValidationError
	if p.Name == "" {
		verr.add("name", ErrRequiredField, "Укажите наименование")
	}
	if p.SKU == "" {
		verr.add("sku", ErrRequiredField, "Укажите артикул")
	}
	if p.Unit == "" {
		verr.add("unit", ErrRequiredField, "Укажите единицу измерения")
	}
	if in.SupplierID != nil && *in.SupplierID != 0 {
		if _, err := s.repo.GetSupplier(ctx, *in.SupplierID); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return nil, nil, err
			}
			verr.add("supplier", ErrSupplierNotFound, "Поставщик не найден")
		} else {
			id := *in.SupplierID
			p.SupplierID = &id
		}
	}
	if !verr.empty() {
		return nil, nil, &verr
	}

	stock := models.NewStock(0)
	if err := s.repo.CreateProductWithStock(ctx, p, stock); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// поставщика удалили между проверкой и записью
			verr.add("supplier", ErrSupplierNotFound, "Поставщик не найден")
			return nil, nil, &verr
		}
		return nil, nil, fmt.Errorf("товар не сохранён: %w", err)
	}

	s.log.Info("товар добавлен",
		zap.Uint("product_id", p.ID),
		zap.String("sku", p.SKU),
	)
	return p, stock, nil
}

// UpdateStockLevels changes the low-stock threshold and warehouse label of a
// product. The quantity is left alone: only operations move it, and the
// store writes the two fields without touching it.
func (s *Service) UpdateStockLevels(ctx context.Context, productID uint, minStock int64, warehouse string) (*models.Stock, error) {
	if _, err := s.repo.GetStock(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var verr ValidationError
	if minStock < 0 {
		verr.add("min_stock", ErrInvalidMinStock, "Минимальный остаток не может быть отрицательным")
	}
	warehouse = strings.TrimSpace(warehouse)
	if warehouse == "" {
		verr.add("warehouse", ErrRequiredField, "Укажите склад")
	}
	if !verr.empty() {
		return nil, &verr
	}

	stock, err := s.repo.UpdateStockLevels(ctx, productID, minStock, warehouse)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("остаток не обновлён: %w", err)
	}
	return stock, nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

// ListProducts returns the bare catalog in creation order, for select boxes.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListProducts(ctx)
}

// GetProductView returns one product decorated with its stock and supplier.
func (s *Service) GetProductView(ctx context.Context, id uint) (*ProductView, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	view := &ProductView{Product: *p}
	if stock, err := s.repo.GetStock(ctx, id); err == nil {
		view.Stock = *stock
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if p.SupplierID != nil {
		if sup, err := s.repo.GetSupplier(ctx, *p.SupplierID); err == nil {
			view.Supplier = sup
		}
	}
	return view, nil
}
