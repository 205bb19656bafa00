package inventory

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GET /product/import
func ImportFormHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, "import", "products", fiber.Map{
			"Title": "Импорт товаров из Excel",
		})
	}
}

// POST /product/import (multipart, поле file)
func ImportProductsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		invalid := func(msg string) error {
			return renderInvalid(c, "import", "products", fiber.Map{
				"Title": "Импорт товаров из Excel",
				"Error": msg,
			})
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return invalid("Выберите файл для загрузки")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return invalid("Поддерживаются только файлы .xlsx")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return err
		}
		defer file.Close()

		res, err := svc.ImportProducts(c.UserContext(), file)
		if err != nil {
			if errors.Is(err, ErrBadWorkbook) {
				return invalid(err.Error())
			}
			return err
		}

		return render(c, "import", "products", fiber.Map{
			"Title":  "Импорт товаров из Excel",
			"Result": res,
		})
	}
}
