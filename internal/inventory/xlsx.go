package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const lowStockSheet = "Минимальные остатки"

// ErrBadWorkbook marks an upload that is not a readable .xlsx workbook.
var ErrBadWorkbook = errors.New("файл Excel не читается")

type ImportResult struct {
	Created  int
	Skipped  []string // строки, которые не удалось импортировать
	Warnings []string // строки, импортированные с оговорками
}

// ImportProducts reads products from the first sheet of an .xlsx workbook.
// Columns: name, sku, category, unit, supplier name, description. A header
// row is detected by its first cell and skipped. Suppliers are matched by
// name, case-insensitively; an unknown supplier leaves the product without one.
func (s *Service) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: в файле нет листов", ErrBadWorkbook)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: лист %q: %v", ErrBadWorkbook, sheets[0], err)
	}

	suppliers, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	supplierByName := make(map[string]uint, len(suppliers))
	for _, sup := range suppliers {
		key := strings.ToLower(strings.TrimSpace(sup.Name))
		if _, dup := supplierByName[key]; !dup {
			supplierByName[key] = sup.ID
		}
	}

	res := &ImportResult{}
	start := 0
	if len(rows) > 0 && isHeaderRow(rows[0]) {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		line := i + 1
		cols := padRow(rows[i], 6)
		if strings.Join(cols, "") == "" {
			continue
		}

		in := ProductInput{
			Name:        cols[0],
			SKU:         cols[1],
			Category:    cols[2],
			Unit:        cols[3],
			Description: cols[5],
		}
		if supplierName := cols[4]; supplierName != "" {
			if id, ok := supplierByName[strings.ToLower(supplierName)]; ok {
				in.SupplierID = &id
			} else {
				res.Warnings = append(res.Warnings, fmt.Sprintf("строка %d: поставщик %q не найден, товар добавлен без поставщика", line, supplierName))
			}
		}

		if _, _, err := s.CreateProduct(ctx, in); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				res.Skipped = append(res.Skipped, fmt.Sprintf("строка %d: %s", line, verr.Error()))
				continue
			}
			return res, err
		}
		res.Created++
	}

	s.log.Info("импорт товаров завершён",
		zap.Int("created", res.Created),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

// ExportLowStock writes the low-stock report as an .xlsx workbook.
func (s *Service) ExportLowStock(ctx context.Context, w io.Writer) error {
	items, err := s.LowStock(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", lowStockSheet); err != nil {
		return err
	}
	header := []any{"ID", "Наименование", "Артикул", "Остаток", "Минимум", "Склад", "Поставщик"}
	if err := f.SetSheetRow(lowStockSheet, "A1", &header); err != nil {
		return err
	}

	for i, it := range items {
		supplier := ""
		if it.Supplier != nil {
			supplier = it.Supplier.Name
		}
		row := []any{it.Product.ID, it.Product.Name, it.Product.SKU, it.Stock.Quantity, it.Stock.MinStock, it.Stock.Warehouse, supplier}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(lowStockSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToUpper(strings.TrimSpace(row[0]))
	return strings.Contains(first, "НАИМЕНОВАНИЕ") || first == "NAME" || first == "PRODUCT"
}

func padRow(row []string, n int) []string {
	out := make([]string, n)
	for i := 0; i < n && i < len(row); i++ {
		out[i] = strings.TrimSpace(row[i])
	}
	return out
}
