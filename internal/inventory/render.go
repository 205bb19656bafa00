package inventory

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const baseLayout = "layouts/base"

// Сообщения после успешного POST, ключ приходит в ?ok=.
var flashMessages = map[string]string{
	"product":   "Товар добавлен",
	"supplier":  "Поставщик добавлен",
	"operation": "Операция добавлена",
	"stock":     "Остаток обновлён",
}

func render(c *fiber.Ctx, page, active string, data fiber.Map) error {
	data["Active"] = active
	if msg, ok := flashMessages[c.Query("ok")]; ok {
		data["Flash"] = msg
	}
	return c.Render("pages/"+page, data, baseLayout)
}

func renderInvalid(c *fiber.Ctx, page, active string, data fiber.Map) error {
	c.Status(fiber.StatusUnprocessableEntity)
	return render(c, page, active, data)
}

// fieldErrors extracts the per-field messages of a ValidationError; ok is
// false for any other error, which the caller should return as is.
func fieldErrors(err error) (map[string]string, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}

func formValues(c *fiber.Ctx, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = strings.TrimSpace(c.FormValue(k))
	}
	return out
}

// optionalID parses a select value where "" and "0" mean "none".
func optionalID(raw string) (*uint, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	id := uint(n)
	return &id, true
}

func pageParam(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func dayBound(raw string) *time.Time {
	d, ok := ParseDay(raw)
	if !ok {
		return nil
	}
	return &d
}
