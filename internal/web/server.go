// Package web wires the inventory handlers into a fiber application with
// embedded HTML templates.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"skladets/internal/config"
	"skladets/internal/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed templates
var templatesFS embed.FS

type Server struct {
	app *fiber.App
	log *zap.Logger
}

func NewServer(cfg *config.Config, svc *inventory.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "skladets",
		Views:        newEngine(),
		BodyLimit:    10 * 1024 * 1024, // xlsx upload
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.Debug,
	}))
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(requestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	setupRoutes(app, cfg, svc)

	return &Server{app: app, log: log}
}

// App exposes the fiber application, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start(port string) error {
	s.log.Info("сервер запущен", zap.String("addr", "http://localhost:"+port))
	return s.app.Listen(":" + port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func setupRoutes(app *fiber.App, cfg *config.Config, svc *inventory.Service) {
	app.Get("/", inventory.HomeHandler(svc))

	// Товары
	app.Get("/products", inventory.ProductListHandler(svc))
	app.Get("/product/add", inventory.ProductFormHandler(svc))
	app.Post("/product/add", inventory.CreateProductHandler(svc))
	app.Get("/product/import", inventory.ImportFormHandler())
	app.Post("/product/import", inventory.ImportProductsHandler(svc))

	// Поставщики
	app.Get("/suppliers", inventory.SupplierListHandler(svc))
	app.Get("/supplier/add", inventory.SupplierFormHandler())
	app.Post("/supplier/add", inventory.CreateSupplierHandler(svc))

	// Журнал операций
	app.Get("/operations", inventory.OperationListHandler(svc))
	app.Get("/operations/add", inventory.OperationFormHandler(svc))
	app.Post("/operations/add", inventory.CreateOperationHandler(svc))

	// Отчёты и остатки; /stock/low* раньше /stock/:id
	app.Get("/deliveries", inventory.DeliveriesHandler(svc))
	app.Get("/stock/low", inventory.LowStockHandler(svc))
	app.Get("/stock/low/export", inventory.ExportLowStockHandler(svc))
	app.Get("/stock/:id/edit", inventory.StockFormHandler(svc))
	app.Post("/stock/:id/edit", inventory.UpdateStockHandler(svc))

	if cfg.Debug {
		app.Get("/view_db", inventory.ViewDBHandler(svc))
	}

	api := app.Group("/api")
	api.Get("/summary", inventory.APISummaryHandler(svc))
	api.Get("/products", inventory.APIListProductsHandler(svc))
	api.Post("/products", inventory.APICreateProductHandler(svc))
	api.Get("/suppliers", inventory.APIListSuppliersHandler(svc))
	api.Post("/suppliers", inventory.APICreateSupplierHandler(svc))
	api.Get("/operations", inventory.APIListOperationsHandler(svc))
	api.Post("/operations", inventory.APICreateOperationHandler(svc))
	api.Get("/deliveries", inventory.APIDeliveriesHandler(svc))
	api.Get("/stock/low", inventory.APILowStockHandler(svc))
}

func newEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err) // каталог встроен при сборке
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")

	engine.AddFunc("formatDate", func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	})
	engine.AddFunc("formatDay", func(t time.Time) string {
		return t.Format("2006-01-02")
	})
	engine.AddFunc("val", func(m map[string]string, key string) string {
		return m[key]
	})
	engine.AddFunc("idstr", func(id uint) string {
		return strconv.FormatUint(uint64(id), 10)
	})
	return engine
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Внутренняя ошибка сервера"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("ошибка обработки запроса",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if strings.HasPrefix(c.Path(), "/api") {
			return c.Status(code).JSON(fiber.Map{"error": msg})
		}

		c.Status(code)
		if rerr := c.Render("pages/error", fiber.Map{
			"Title":  "Ошибка",
			"Active": "",
			"Code":   code,
			"Error":  msg,
		}, "layouts/base"); rerr != nil {
			log.Error("шаблон ошибки не отрисован", zap.Error(rerr))
			return c.Status(code).SendString(msg)
		}
		return nil
	}
}

func normalizeOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}
