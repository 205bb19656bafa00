package inventory

import (
	"strconv"
	"time"

	"skladets/internal/models"

	"github.com/gofiber/fiber/v2"
)

var operationFields = []string{"product_id", "type", "quantity", "date", "from_warehouse", "to_warehouse", "responsible", "note"}

// GET /operations?from=&to=
// Неразборчивые даты в фильтре просто игнорируются.
func OperationListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := OperationFilter{
			From: dayBound(c.Query("from")),
			To:   dayBound(c.Query("to")),
		}

		ops, err := svc.ListOperations(c.UserContext(), filter)
		if err != nil {
			return err
		}

		return render(c, "operations", "operations", fiber.Map{
			"Title":      "Операции",
			"Operations": ops,
			"From":       c.Query("from"),
			"To":         c.Query("to"),
		})
	}
}

// GET /operations/add
func OperationFormHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := map[string]string{
			"type":     string(models.OperationIn),
			"quantity": "1",
			"date":     time.Now().Format(dayLayout),
		}
		if pid := c.Query("product_id"); pid != "" {
			form["product_id"] = pid
		}
		return renderOperationForm(c, svc, form, nil, false)
	}
}

// POST /operations/add
func CreateOperationHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := formValues(c, operationFields...)
		errs := map[string]string{}

		productID, err := strconv.ParseUint(form["product_id"], 10, 64)
		if err != nil {
			errs["product_id"] = "Выберите товар"
		}
		quantity, err := strconv.ParseInt(form["quantity"], 10, 64)
		if err != nil || quantity < 1 {
			errs["quantity"] = "Количество должно быть целым числом не меньше 1"
		}
		var date time.Time
		if form["date"] != "" {
			d, ok := ParseDay(form["date"])
			if !ok {
				errs["date"] = "Дата в формате ГГГГ-ММ-ДД"
			}
			date = d
		}
		if len(errs) > 0 {
			return renderOperationForm(c, svc, form, errs, true)
		}

		_, _, err = svc.RecordOperation(c.UserContext(), OperationInput{
			ProductID:     uint(productID),
			Type:          models.OperationType(form["type"]),
			Quantity:      quantity,
			Date:          date,
			FromWarehouse: form["from_warehouse"],
			ToWarehouse:   form["to_warehouse"],
			Responsible:   form["responsible"],
			Note:          form["note"],
		})
		if err != nil {
			if fields, ok := fieldErrors(err); ok {
				return renderOperationForm(c, svc, form, fields, true)
			}
			return err
		}

		return c.Redirect("/operations?ok=operation", fiber.StatusSeeOther)
	}
}

func renderOperationForm(c *fiber.Ctx, svc *Service, form, errs map[string]string, invalid bool) error {
	products, err := svc.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	data := fiber.Map{
		"Title":    "Новая операция",
		"Form":     form,
		"Errors":   errs,
		"Products": products,
		"Types":    operationTypeOptions(),
	}
	if invalid {
		return renderInvalid(c, "operation_form", "operations", data)
	}
	return render(c, "operation_form", "operations", data)
}

func operationTypeOptions() []fiber.Map {
	out := make([]fiber.Map, 0, len(models.OperationTypes))
	for _, t := range models.OperationTypes {
		out = append(out, fiber.Map{"Value": string(t), "Label": t.Label()})
	}
	return out
}
