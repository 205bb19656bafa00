package inventory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"skladets/internal/models"
)

const dayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD calendar date at local midnight. Filters use
// it forgivingly: a false result means the bound is ignored.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(dayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

type ProductView struct {
	Product  models.Product
	Stock    models.Stock
	Supplier *models.Supplier
}

type ProductFilter struct {
	Query    string // подстрока наименования или артикула
	Category string // подстрока категории
	Supplier string // точный ID поставщика
	Page     int
}

type ProductPage struct {
	Items   []ProductView
	Total   int
	Page    int
	PerPage int
	Pages   int
}

func (p ProductPage) HasPrev() bool { return p.Page > 1 }
func (p ProductPage) HasNext() bool { return p.Page < p.Pages }
func (p ProductPage) PrevPage() int { return p.Page - 1 }
func (p ProductPage) NextPage() int { return p.Page + 1 }

type OperationView struct {
	Operation models.Operation
	Product   *models.Product
}

type OperationFilter struct {
	From *time.Time
	To   *time.Time // включительно, до конца этого дня
}

type Summary struct {
	Products  int
	Suppliers int
	LowStock  int
}

// Snapshot is the raw content of every collection, for the debug dump.
type Snapshot struct {
	Products   []models.Product
	Suppliers  []models.Supplier
	Stocks     []models.Stock
	Operations []models.Operation
}

// SearchProducts filters the catalog and returns one page of decorated
// results. Matching is case-insensitive; a supplier filter that is not a
// number matches nothing. Pages below 1 are treated as 1.
func (s *Service) SearchProducts(ctx context.Context, f ProductFilter) (*ProductPage, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	stocks, suppliers, err := s.lookups(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	category := strings.ToLower(strings.TrimSpace(f.Category))
	supplierRaw := strings.TrimSpace(f.Supplier)
	var supplierID uint64
	supplierOK := true
	if supplierRaw != "" {
		supplierID, err = strconv.ParseUint(supplierRaw, 10, 64)
		supplierOK = err == nil
	}

	matched := make([]ProductView, 0, len(products))
	for _, p := range products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(p.Category), category) {
			continue
		}
		if supplierRaw != "" {
			if !supplierOK || p.SupplierID == nil || uint64(*p.SupplierID) != supplierID {
				continue
			}
		}
		matched = append(matched, decorate(p, stocks, suppliers))
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	res := &ProductPage{
		Total:   len(matched),
		Page:    page,
		PerPage: PageSize,
		Pages:   (len(matched) + PageSize - 1) / PageSize,
	}
	start := (page - 1) * PageSize
	if start < len(matched) {
		end := min(start+PageSize, len(matched))
		res.Items = matched[start:end]
	}
	return res, nil
}

// ListOperations returns the journal within the optional inclusive day range,
// newest first. Operations on the same date keep their journal order.
func (s *Service) ListOperations(ctx context.Context, f OperationFilter) ([]OperationView, error) {
	ops, err := s.repo.ListOperations(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productIndex(ctx)
	if err != nil {
		return nil, err
	}

	var until time.Time
	if f.To != nil {
		until = f.To.AddDate(0, 0, 1)
	}

	out := make([]OperationView, 0, len(ops))
	for _, op := range ops {
		if f.From != nil && op.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && !op.Date.Before(until) {
			continue
		}
		out = append(out, OperationView{Operation: op, Product: products[op.ProductID]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Operation.Date.After(out[j].Operation.Date)
	})
	return out, nil
}

// DeliveriesByDate returns the receipts dated on the given calendar day.
func (s *Service) DeliveriesByDate(ctx context.Context, day time.Time) ([]OperationView, error) {
	ops, err := s.repo.ListOperations(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]OperationView, 0)
	for _, op := range ops {
		if op.Type != models.OperationIn || !sameDay(op.Date, day) {
			continue
		}
		out = append(out, OperationView{Operation: op, Product: products[op.ProductID]})
	}
	return out, nil
}

// LowStock returns products with a positive threshold whose quantity is at
// or below it.
func (s *Service) LowStock(ctx context.Context) ([]ProductView, error) {
	stocks, err := s.repo.ListStocks(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productIndex(ctx)
	if err != nil {
		return nil, err
	}
	_, suppliers, err := s.lookups(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ProductView, 0)
	for _, st := range stocks {
		if !st.IsLow() {
			continue
		}
		p, ok := products[st.ProductID]
		if !ok {
			continue
		}
		view := ProductView{Product: *p, Stock: st}
		if p.SupplierID != nil {
			view.Supplier = suppliers[*p.SupplierID]
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	stocks, err := s.repo.ListStocks(ctx)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Products: len(products), Suppliers: len(suppliers)}
	for _, st := range stocks {
		if st.IsLow() {
			sum.LowStock++
		}
	}
	return sum, nil
}

func (s *Service) Dump(ctx context.Context) (*Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Products, err = s.repo.ListProducts(ctx); err != nil {
		return nil, err
	}
	if snap.Suppliers, err = s.repo.ListSuppliers(ctx); err != nil {
		return nil, err
	}
	if snap.Stocks, err = s.repo.ListStocks(ctx); err != nil {
		return nil, err
	}
	if snap.Operations, err = s.repo.ListOperations(ctx); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Service) lookups(ctx context.Context) (map[uint]models.Stock, map[uint]*models.Supplier, error) {
	stockList, err := s.repo.ListStocks(ctx)
	if err != nil {
		return nil, nil, err
	}
	supplierList, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, nil, err
	}

	stocks := make(map[uint]models.Stock, len(stockList))
	for _, st := range stockList {
		stocks[st.ProductID] = st
	}
	suppliers := make(map[uint]*models.Supplier, len(supplierList))
	for i := range supplierList {
		suppliers[supplierList[i].ID] = &supplierList[i]
	}
	return stocks, suppliers, nil
}

func (s *Service) productIndex(ctx context.Context) (map[uint]*models.Product, error) {
	list, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[uint]*models.Product, len(list))
	for i := range list {
		idx[list[i].ID] = &list[i]
	}
	return idx, nil
}

func decorate(p models.Product, stocks map[uint]models.Stock, suppliers map[uint]*models.Supplier) ProductView {
	view := ProductView{Product: p}
	if st, ok := stocks[p.ID]; ok {
		view.Stock = st
	} else {
		view.Stock = models.Stock{ProductID: p.ID}
	}
	if p.SupplierID != nil {
		view.Supplier = suppliers[*p.SupplierID]
	}
	return view
}

func sameDay(t, day time.Time) bool {
	t = t.In(day.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
