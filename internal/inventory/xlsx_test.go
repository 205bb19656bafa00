package inventory

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"skladets/internal/models"
	"skladets/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportProducts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sup, err := svc.CreateSupplier(ctx, SupplierInput{Name: "ИП Иванов"})
	require.NoError(t, err)

	buf := workbook(t,
		[]any{"Наименование", "Артикул", "Категория", "Ед.", "Поставщик", "Описание"},
		[]any{"Гайка М8", "G8-001", "Метизы", "шт", "ип иванов", "сталь"},
		[]any{"Болт М10", "B10-002", "Метизы", "шт", "Нет такого"},
		[]any{},
		[]any{"Без артикула", "", "Метизы", "шт"},
	)

	res, err := svc.ImportProducts(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0], "sku")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Нет такого")

	page, err := svc.SearchProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Гайка М8", page.Items[0].Product.Name)
	assert.Equal(t, "сталь", page.Items[0].Product.Description)
	require.NotNil(t, page.Items[0].Supplier)
	assert.Equal(t, sup.ID, page.Items[0].Supplier.ID)
	assert.Nil(t, page.Items[1].Supplier)
	assert.Equal(t, models.DefaultWarehouse, page.Items[1].Stock.Warehouse)
}

func TestImportProductsRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ImportProducts(context.Background(), bytes.NewBufferString("not a workbook"))
	assert.ErrorIs(t, err, ErrBadWorkbook)
}

type brokenSuppliers struct {
	*store.MemoryStore
}

func (brokenSuppliers) ListSuppliers(context.Context) ([]models.Supplier, error) {
	return nil, errors.New("connection reset")
}

func TestImportProductsStorageFailureIsNotBadWorkbook(t *testing.T) {
	svc := NewService(brokenSuppliers{store.NewMemoryStore()}, nil)
	buf := workbook(t, []any{"Гайка М8", "G8-001", "Метизы", "шт"})

	_, err := svc.ImportProducts(context.Background(), buf)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadWorkbook)
}

func TestExportLowStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sup, err := svc.CreateSupplier(ctx, SupplierInput{Name: "Поставщик-1"})
	require.NoError(t, err)
	low := mustProduct(t, svc, ProductInput{Name: "Болт М10", SKU: "B10-002", SupplierID: &sup.ID})
	ok := mustProduct(t, svc, ProductInput{Name: "Гайка М8", SKU: "G8-001"})
	mustOperation(t, svc, low.ID, models.OperationIn, 5, day(2025, 1, 11))
	mustOperation(t, svc, ok.ID, models.OperationIn, 100, day(2025, 1, 10))
	_, err = svc.UpdateStockLevels(ctx, low.ID, 10, models.DefaultWarehouse)
	require.NoError(t, err)
	_, err = svc.UpdateStockLevels(ctx, ok.ID, 20, models.DefaultWarehouse)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportLowStock(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(lowStockSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Наименование", rows[0][1])
	assert.Equal(t, []string{"1", "Болт М10", "B10-002", "5", "10", models.DefaultWarehouse, "Поставщик-1"}, rows[1])
}
