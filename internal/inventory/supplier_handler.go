package inventory

import (
	"github.com/gofiber/fiber/v2"
)

// GET /suppliers
func SupplierListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		suppliers, err := svc.ListSuppliers(c.UserContext())
		if err != nil {
			return err
		}
		return render(c, "suppliers", "suppliers", fiber.Map{
			"Title":     "Поставщики",
			"Suppliers": suppliers,
		})
	}
}

// GET /supplier/add
func SupplierFormHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, "supplier_form", "suppliers", fiber.Map{
			"Title": "Новый поставщик",
			"Form":  map[string]string{},
		})
	}
}

// POST /supplier/add
func CreateSupplierHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := formValues(c, "name", "contact")

		_, err := svc.CreateSupplier(c.UserContext(), SupplierInput{
			Name:    form["name"],
			Contact: form["contact"],
		})
		if err != nil {
			if fields, ok := fieldErrors(err); ok {
				return renderInvalid(c, "supplier_form", "suppliers", fiber.Map{
					"Title":  "Новый поставщик",
					"Form":   form,
					"Errors": fields,
				})
			}
			return err
		}

		return c.Redirect("/suppliers?ok=supplier", fiber.StatusSeeOther)
	}
}
