package inventory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"skladets/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []ProductView) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Product.Name)
	}
	return out
}

func TestSearchProducts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	s1, err := svc.CreateSupplier(ctx, SupplierInput{Name: "Поставщик-1"})
	require.NoError(t, err)
	s2, err := svc.CreateSupplier(ctx, SupplierInput{Name: "ИП Иванов"})
	require.NoError(t, err)

	mustProduct(t, svc, ProductInput{Name: "Гайка М8", SKU: "G8-001", Category: "Метизы", SupplierID: &s1.ID})
	mustProduct(t, svc, ProductInput{Name: "Болт М10", SKU: "B10-002", Category: "Метизы", SupplierID: &s1.ID})
	mustProduct(t, svc, ProductInput{Name: "Клей ПВА", SKU: "KL-PVA", Category: "Клеи", SupplierID: &s2.ID})
	mustProduct(t, svc, ProductInput{Name: "Без категории", SKU: "X-1"})

	cases := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"all", ProductFilter{}, []string{"Гайка М8", "Болт М10", "Клей ПВА", "Без категории"}},
		{"category substring", ProductFilter{Category: "Мет"}, []string{"Гайка М8", "Болт М10"}},
		{"category case-insensitive", ProductFilter{Category: "клеи"}, []string{"Клей ПВА"}},
		{"name", ProductFilter{Query: "гайка"}, []string{"Гайка М8"}},
		{"sku", ProductFilter{Query: "kl-"}, []string{"Клей ПВА"}},
		{"supplier", ProductFilter{Supplier: fmt.Sprint(s2.ID)}, []string{"Клей ПВА"}},
		{"supplier not a number", ProductFilter{Supplier: "abc"}, []string{}},
		{"combined", ProductFilter{Query: "м", Category: "мет", Supplier: fmt.Sprint(s1.ID)}, []string{"Гайка М8", "Болт М10"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := svc.SearchProducts(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(page.Items))
			assert.Equal(t, len(tc.want), page.Total)
		})
	}
}

func TestSearchProductsDecoratesAndPaginates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sup, err := svc.CreateSupplier(ctx, SupplierInput{Name: "Поставщик"})
	require.NoError(t, err)
	first := mustProduct(t, svc, ProductInput{Name: "p00", SupplierID: &sup.ID})
	mustOperation(t, svc, first.ID, models.OperationIn, 9, day(2025, 1, 1))
	_, err = svc.UpdateStockLevels(ctx, first.ID, 4, models.DefaultWarehouse)
	require.NoError(t, err)
	for i := 1; i < 45; i++ {
		mustProduct(t, svc, ProductInput{Name: fmt.Sprintf("p%02d", i)})
	}

	page, err := svc.SearchProducts(ctx, ProductFilter{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page, "page below 1 is clamped")
	assert.Equal(t, 45, page.Total)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Items, PageSize)
	assert.Equal(t, int64(9), page.Items[0].Stock.Quantity)
	assert.Equal(t, int64(4), page.Items[0].Stock.MinStock)
	require.NotNil(t, page.Items[0].Supplier)
	assert.Equal(t, "Поставщик", page.Items[0].Supplier.Name)
	assert.False(t, page.HasPrev())
	assert.True(t, page.HasNext())

	page, err = svc.SearchProducts(ctx, ProductFilter{Page: 3})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, "p40", page.Items[0].Product.Name)
	assert.False(t, page.HasNext())

	page, err = svc.SearchProducts(ctx, ProductFilter{Page: 7})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 45, page.Total)
}

func TestListOperationsDateRange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	p := mustProduct(t, svc, ProductInput{Name: "Тест Товар"})

	mustOperation(t, svc, p.ID, models.OperationIn, 1, day(2024, 1, 9))
	mustOperation(t, svc, p.ID, models.OperationIn, 10, day(2024, 1, 10))
	mustOperation(t, svc, p.ID, models.OperationOut, 5, day(2024, 1, 10))
	mustOperation(t, svc, p.ID, models.OperationMove, 7, day(2024, 1, 10).Add(18*time.Hour))
	mustOperation(t, svc, p.ID, models.OperationIn, 3, day(2024, 1, 11))

	quantities := func(views []OperationView) []int64 {
		out := make([]int64, 0, len(views))
		for _, v := range views {
			out = append(out, v.Operation.Quantity)
		}
		return out
	}

	all, err := svc.ListOperations(ctx, OperationFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7, 10, 5, 1}, quantities(all), "newest first, journal order on ties")
	require.NotNil(t, all[0].Product)
	assert.Equal(t, "Тест Товар", all[0].Product.Name)

	from, _ := ParseDay("2024-01-10")
	to, _ := ParseDay("2024-01-10")
	got, err := svc.ListOperations(ctx, OperationFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 10, 5}, quantities(got), "both types on the day, including later hours")

	got, err = svc.ListOperations(ctx, OperationFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7, 10, 5}, quantities(got))

	got, err = svc.ListOperations(ctx, OperationFilter{To: &to})
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 10, 5, 1}, quantities(got))
}

func TestParseDay(t *testing.T) {
	d, ok := ParseDay(" 2024-01-10 ")
	require.True(t, ok)
	assert.Equal(t, day(2024, 1, 10), d)

	for _, bad := range []string{"", "10.01.2024", "2024-13-01", "yesterday"} {
		_, ok := ParseDay(bad)
		assert.False(t, ok, bad)
	}
}

func TestDeliveriesByDate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	p := mustProduct(t, svc, ProductInput{Name: "Гайка"})

	mustOperation(t, svc, p.ID, models.OperationIn, 10, day(2024, 1, 10).Add(9*time.Hour))
	mustOperation(t, svc, p.ID, models.OperationOut, 5, day(2024, 1, 10))
	mustOperation(t, svc, p.ID, models.OperationIn, 4, day(2024, 1, 11))

	got, err := svc.DeliveriesByDate(ctx, day(2024, 1, 10))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].Operation.Quantity)
	require.NotNil(t, got[0].Product)
	assert.Equal(t, "Гайка", got[0].Product.Name)

	got, err = svc.DeliveriesByDate(ctx, day(2023, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLowStockAndSummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	noThreshold := mustProduct(t, svc, ProductInput{Name: "Без порога"})
	atThreshold := mustProduct(t, svc, ProductInput{Name: "На пороге"})
	below := mustProduct(t, svc, ProductInput{Name: "Ниже порога"})
	above := mustProduct(t, svc, ProductInput{Name: "Выше порога"})
	_ = noThreshold

	for _, tc := range []struct {
		id       uint
		qty, min int64
	}{
		{atThreshold.ID, 5, 5},
		{below.ID, 3, 5},
		{above.ID, 50, 5},
	} {
		mustOperation(t, svc, tc.id, models.OperationIn, tc.qty, day(2025, 1, 1))
		_, err := svc.UpdateStockLevels(ctx, tc.id, tc.min, models.DefaultWarehouse)
		require.NoError(t, err)
	}

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"На пороге", "Ниже порога"}, names(low))
	assert.Equal(t, int64(3), low[1].Stock.Quantity)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Summary{Products: 4, Suppliers: 0, LowStock: 2}, sum)

	snap, err := svc.Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Products, 4)
	assert.Len(t, snap.Stocks, 4)
	assert.Len(t, snap.Operations, 3)
}
