package inventory

import (
	"bytes"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofiber/fiber/v2"
)

// GET /deliveries?date=
func DeliveriesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Query("date")
		data := fiber.Map{
			"Title":      "Поставки по дате",
			"Date":       raw,
			"Deliveries": []OperationView{},
		}

		if raw != "" {
			d, ok := ParseDay(raw)
			if !ok {
				data["Error"] = "Неверный формат даты, используйте YYYY-MM-DD"
				return render(c, "deliveries", "deliveries", data)
			}
			deliveries, err := svc.DeliveriesByDate(c.UserContext(), d)
			if err != nil {
				return err
			}
			data["Deliveries"] = deliveries
		}

		return render(c, "deliveries", "deliveries", data)
	}
}

// GET /stock/low
func LowStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.LowStock(c.UserContext())
		if err != nil {
			return err
		}
		return render(c, "stock_low", "stock", fiber.Map{
			"Title":    "Минимальные остатки",
			"Products": items,
		})
	}
}

// GET /stock/low/export
func ExportLowStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := svc.ExportLowStock(c.UserContext(), &buf); err != nil {
			return err
		}

		filename := fmt.Sprintf("low-stock-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}

// GET /view_db
// Только для отладки: маршрут регистрируется лишь при APP_DEBUG=true.
func ViewDBHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.Dump(c.UserContext())
		if err != nil {
			return err
		}
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		return render(c, "view_db", "", fiber.Map{
			"Title": "Содержимое базы",
			"Dump":  cfg.Sdump(snap),
		})
	}
}
