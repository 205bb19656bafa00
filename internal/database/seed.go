package database

import (
	"context"
	"fmt"
	"time"

	"skladets/internal/inventory"
	"skladets/internal/models"
)

// Seed fills an empty store with the demo catalog: two suppliers, three
// products with opening receipts and low-stock thresholds. It does nothing
// when suppliers already exist.
func Seed(ctx context.Context, svc *inventory.Service) error {
	suppliers, err := svc.ListSuppliers(ctx)
	if err != nil {
		return err
	}
	if len(suppliers) > 0 {
		return nil
	}

	s1, err := svc.CreateSupplier(ctx, inventory.SupplierInput{Name: `ООО "Поставщик-1"`, Contact: "Тел: +7 900 000 00 01"})
	if err != nil {
		return err
	}
	s2, err := svc.CreateSupplier(ctx, inventory.SupplierInput{Name: "ИП Иванов", Contact: "email: ivanov@example.com"})
	if err != nil {
		return err
	}

	items := []struct {
		product  inventory.ProductInput
		received int64
		minStock int64
		date     time.Time
	}{
		{inventory.ProductInput{Name: "Гайка М8", SKU: "G8-001", Category: "Метизы", Unit: "шт", SupplierID: &s1.ID, Description: "сталь"}, 100, 20, seedDay(2025, 1, 10)},
		{inventory.ProductInput{Name: "Болт М10", SKU: "B10-002", Category: "Метизы", Unit: "шт", SupplierID: &s1.ID}, 5, 10, seedDay(2025, 1, 11)},
		{inventory.ProductInput{Name: "Клей ПВА", SKU: "KL-PVA", Category: "Клеи", Unit: "шт", SupplierID: &s2.ID}, 50, 5, seedDay(2025, 2, 5)},
	}

	for _, it := range items {
		p, _, err := svc.CreateProduct(ctx, it.product)
		if err != nil {
			return fmt.Errorf("seed %s: %w", it.product.SKU, err)
		}
		if _, err := svc.UpdateStockLevels(ctx, p.ID, it.minStock, models.DefaultWarehouse); err != nil {
			return fmt.Errorf("seed %s: %w", it.product.SKU, err)
		}
		note := ""
		if it.product.SKU == "G8-001" {
			note = "Начальный приход"
		}
		if _, _, err := svc.RecordOperation(ctx, inventory.OperationInput{
			ProductID:   p.ID,
			Type:        models.OperationIn,
			Quantity:    it.received,
			Date:        it.date,
			Responsible: "Склад-1",
			Note:        note,
		}); err != nil {
			return fmt.Errorf("seed %s: %w", it.product.SKU, err)
		}
	}
	return nil
}

func seedDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
