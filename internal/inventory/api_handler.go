package inventory

import (
	"time"

	"skladets/internal/models"

	"github.com/gofiber/fiber/v2"
)

const apiTimeLayout = "2006-01-02 15:04:05"

type SupplierResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	CreatedAt string `json:"created_at"`
}

type ProductResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	Description  string  `json:"description"`
	SupplierID   *uint   `json:"supplier_id"`
	SupplierName *string `json:"supplier_name"`
	Quantity     int64   `json:"quantity"`
	MinStock     int64   `json:"min_stock"`
	Warehouse    string  `json:"warehouse"`
	LowStock     bool    `json:"low_stock"`
}

type ProductListResponse struct {
	Items   []ProductResponse `json:"items"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
	Pages   int               `json:"pages"`
}

type OperationResponse struct {
	ID            uint   `json:"id"`
	ProductID     uint   `json:"product_id"`
	ProductName   string `json:"product_name"`
	Type          string `json:"type"`
	TypeLabel     string `json:"type_label"`
	Quantity      int64  `json:"quantity"`
	Date          string `json:"date"`
	FromWarehouse string `json:"from_warehouse"`
	ToWarehouse   string `json:"to_warehouse"`
	Responsible   string `json:"responsible"`
	Note          string `json:"note"`
}

type CreateSupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
	SupplierID  *uint  `json:"supplier_id"`
	Description string `json:"description"`
}

type CreateOperationRequest struct {
	ProductID     uint   `json:"product_id"`
	Type          string `json:"type"`
	Quantity      int64  `json:"quantity"`
	Date          string `json:"date"` // YYYY-MM-DD, пусто - сейчас
	FromWarehouse string `json:"from_warehouse"`
	ToWarehouse   string `json:"to_warehouse"`
	Responsible   string `json:"responsible"`
	Note          string `json:"note"`
}

// GET /api/summary
func APISummaryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sum, err := svc.Summary(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Сводка недоступна")
		}
		return c.JSON(fiber.Map{
			"products":  sum.Products,
			"suppliers": sum.Suppliers,
			"low_stock": sum.LowStock,
		})
	}
}

// GET /api/products?q=&category=&supplier=&page=
func APIListProductsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := svc.SearchProducts(c.UserContext(), ProductFilter{
			Query:    c.Query("q"),
			Category: c.Query("category"),
			Supplier: c.Query("supplier"),
			Page:     pageParam(c.Query("page", "1")),
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Товары не загружены")
		}

		res := ProductListResponse{
			Items:   make([]ProductResponse, 0, len(page.Items)),
			Total:   page.Total,
			Page:    page.Page,
			PerPage: page.PerPage,
			Pages:   page.Pages,
		}
		for _, v := range page.Items {
			res.Items = append(res.Items, toProductResponse(v))
		}
		return c.JSON(res)
	}
}

// POST /api/products
func APICreateProductHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Неверные данные")
		}

		ctx := c.UserContext()
		p, _, err := svc.CreateProduct(ctx, ProductInput{
			Name:        body.Name,
			SKU:         body.SKU,
			Category:    body.Category,
			Unit:        body.Unit,
			SupplierID:  body.SupplierID,
			Description: body.Description,
		})
		if err != nil {
			return apiError(c, err, "Товар не создан")
		}

		view, err := svc.GetProductView(ctx, p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Товар не загружен")
		}
		return c.Status(fiber.StatusCreated).JSON(toProductResponse(*view))
	}
}

// GET /api/suppliers
func APIListSuppliersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		suppliers, err := svc.ListSuppliers(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Поставщики не загружены")
		}

		res := make([]SupplierResponse, 0, len(suppliers))
		for _, s := range suppliers {
			res = append(res, toSupplierResponse(s))
		}
		return c.JSON(res)
	}
}

// POST /api/suppliers
func APICreateSupplierHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Неверные данные")
		}

		sup, err := svc.CreateSupplier(c.UserContext(), SupplierInput{Name: body.Name, Contact: body.Contact})
		if err != nil {
			return apiError(c, err, "Поставщик не создан")
		}
		return c.Status(fiber.StatusCreated).JSON(toSupplierResponse(*sup))
	}
}

// GET /api/operations?from=&to=
func APIListOperationsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ops, err := svc.ListOperations(c.UserContext(), OperationFilter{
			From: dayBound(c.Query("from")),
			To:   dayBound(c.Query("to")),
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Операции не загружены")
		}
		return c.JSON(toOperationResponses(ops))
	}
}

// POST /api/operations
func APICreateOperationHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOperationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Неверные данные")
		}

		var date time.Time
		if body.Date != "" {
			d, ok := ParseDay(body.Date)
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error":  "Неверные данные",
					"fields": map[string]string{"date": "Дата в формате YYYY-MM-DD"},
				})
			}
			date = d
		}

		op, stock, err := svc.RecordOperation(c.UserContext(), OperationInput{
			ProductID:     body.ProductID,
			Type:          models.OperationType(body.Type),
			Quantity:      body.Quantity,
			Date:          date,
			FromWarehouse: body.FromWarehouse,
			ToWarehouse:   body.ToWarehouse,
			Responsible:   body.Responsible,
			Note:          body.Note,
		})
		if err != nil {
			return apiError(c, err, "Операция не записана")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"operation": toOperationResponse(OperationView{Operation: *op}),
			"quantity":  stock.Quantity,
		})
	}
}

// GET /api/deliveries?date=
func APIDeliveriesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, ok := ParseDay(c.Query("date"))
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Неверный формат даты, используйте YYYY-MM-DD")
		}
		ops, err := svc.DeliveriesByDate(c.UserContext(), day)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Поставки не загружены")
		}
		return c.JSON(toOperationResponses(ops))
	}
}

// GET /api/stock/low
func APILowStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.LowStock(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Остатки не загружены")
		}
		res := make([]ProductResponse, 0, len(items))
		for _, v := range items {
			res = append(res, toProductResponse(v))
		}
		return c.JSON(res)
	}
}

// apiError maps validation failures to 400 with per-field messages and
// anything else to a 500 carrying fallback.
func apiError(c *fiber.Ctx, err error, fallback string) error {
	if fields, ok := fieldErrors(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  err.Error(),
			"fields": fields,
		})
	}
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

func toSupplierResponse(s models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		CreatedAt: s.CreatedAt.Format(apiTimeLayout),
	}
}

func toProductResponse(v ProductView) ProductResponse {
	res := ProductResponse{
		ID:          v.Product.ID,
		Name:        v.Product.Name,
		SKU:         v.Product.SKU,
		Category:    v.Product.Category,
		Unit:        v.Product.Unit,
		Description: v.Product.Description,
		SupplierID:  v.Product.SupplierID,
		Quantity:    v.Stock.Quantity,
		MinStock:    v.Stock.MinStock,
		Warehouse:   v.Stock.Warehouse,
		LowStock:    v.Stock.IsLow(),
	}
	if v.Supplier != nil {
		name := v.Supplier.Name
		res.SupplierName = &name
	}
	return res
}

func toOperationResponse(v OperationView) OperationResponse {
	op := v.Operation
	res := OperationResponse{
		ID:            op.ID,
		ProductID:     op.ProductID,
		Type:          string(op.Type),
		TypeLabel:     op.Type.Label(),
		Quantity:      op.Quantity,
		Date:          op.Date.Format(apiTimeLayout),
		FromWarehouse: op.FromWarehouse,
		ToWarehouse:   op.ToWarehouse,
		Responsible:   op.Responsible,
		Note:          op.Note,
	}
	if v.Product != nil {
		res.ProductName = v.Product.Name
	}
	return res
}

func toOperationResponses(ops []OperationView) []OperationResponse {
	res := make([]OperationResponse, 0, len(ops))
	for _, v := range ops {
		res = append(res, toOperationResponse(v))
	}
	return res
}
