package inventory

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

var productFields = []string{"name", "sku", "category", "unit", "supplier", "description"}

// GET /
func HomeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sum, err := svc.Summary(c.UserContext())
		if err != nil {
			return err
		}
		return render(c, "index", "home", fiber.Map{
			"Title":   "Складец",
			"Summary": sum,
		})
	}
}

// GET /products?q=&category=&supplier=&page=
func ProductListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		filter := ProductFilter{
			Query:    c.Query("q"),
			Category: c.Query("category"),
			Supplier: c.Query("supplier"),
			Page:     pageParam(c.Query("page", "1")),
		}

		page, err := svc.SearchProducts(ctx, filter)
		if err != nil {
			return err
		}
		suppliers, err := svc.ListSuppliers(ctx)
		if err != nil {
			return err
		}

		return render(c, "products", "products", fiber.Map{
			"Title":     "Товары",
			"Page":      page,
			"Filter":    filter,
			"Suppliers": suppliers,
		})
	}
}

// GET /product/add
func ProductFormHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderProductForm(c, svc, map[string]string{}, nil, false)
	}
}

// POST /product/add
func CreateProductHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := formValues(c, productFields...)

		supplierID, ok := optionalID(form["supplier"])
		if !ok {
			return renderProductForm(c, svc, form, map[string]string{"supplier": "Выберите поставщика из списка"}, true)
		}

		_, _, err := svc.CreateProduct(c.UserContext(), ProductInput{
			Name:        form["name"],
			SKU:         form["sku"],
			Category:    form["category"],
			Unit:        form["unit"],
			SupplierID:  supplierID,
			Description: form["description"],
		})
		if err != nil {
			if fields, ok := fieldErrors(err); ok {
				return renderProductForm(c, svc, form, fields, true)
			}
			return err
		}

		return c.Redirect("/products?ok=product", fiber.StatusSeeOther)
	}
}

func renderProductForm(c *fiber.Ctx, svc *Service, form, errs map[string]string, invalid bool) error {
	suppliers, err := svc.ListSuppliers(c.UserContext())
	if err != nil {
		return err
	}
	data := fiber.Map{
		"Title":     "Новый товар",
		"Form":      form,
		"Errors":    errs,
		"Suppliers": suppliers,
	}
	if invalid {
		return renderInvalid(c, "product_form", "products", data)
	}
	return render(c, "product_form", "products", data)
}

// GET /stock/:id/edit
func StockFormHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := productFromParam(c, svc)
		if err != nil {
			return err
		}
		form := map[string]string{
			"min_stock": strconv.FormatInt(view.Stock.MinStock, 10),
			"warehouse": view.Stock.Warehouse,
		}
		return render(c, "stock_form", "products", fiber.Map{
			"Title":   "Остаток: " + view.Product.Name,
			"Product": view,
			"Form":    form,
		})
	}
}

// POST /stock/:id/edit
func UpdateStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := productFromParam(c, svc)
		if err != nil {
			return err
		}
		form := formValues(c, "min_stock", "warehouse")

		invalid := func(errs map[string]string) error {
			return renderInvalid(c, "stock_form", "products", fiber.Map{
				"Title":   "Остаток: " + view.Product.Name,
				"Product": view,
				"Form":    form,
				"Errors":  errs,
			})
		}

		minStock, convErr := strconv.ParseInt(form["min_stock"], 10, 64)
		if convErr != nil {
			return invalid(map[string]string{"min_stock": "Введите целое число"})
		}
		if _, err := svc.UpdateStockLevels(c.UserContext(), view.Product.ID, minStock, form["warehouse"]); err != nil {
			if fields, ok := fieldErrors(err); ok {
				return invalid(fields)
			}
			return err
		}
		return c.Redirect("/products?ok=stock", fiber.StatusSeeOther)
	}
}

func productFromParam(c *fiber.Ctx, svc *Service) (*ProductView, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Товар не найден")
	}
	view, err := svc.GetProductView(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Товар не найден")
		}
		return nil, err
	}
	return view, nil
}
