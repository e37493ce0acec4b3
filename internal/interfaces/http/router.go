package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/estoque/docs"
	"github.com/jhoicas/estoque/internal/application/analytics"
	"github.com/jhoicas/estoque/internal/application/inventory"
	"github.com/jhoicas/estoque/pkg/logger"
	"github.com/swaggo/swag"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Items     *inventory.ItemUseCase
	Ledger    *inventory.RegisterMovementUseCase
	Valuation *inventory.ValuationUseCase
	Reports   *analytics.ReportUseCase
	PDF       *analytics.PDFUseCase // opcional
}

// ServerConfig parámetros de la app Fiber.
type ServerConfig struct {
	AppName     string
	SwaggerFile string // si existe se sirve la UI en /docs
	Log         *logger.Logger
}

// NewServer construye la app Fiber con recover, log de requests, /health, swagger opcional y las rutas de la API.
func NewServer(cfg ServerConfig, deps RouterDeps) *fiber.App {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
	app.Use(RequestLogger(log.Named("http")))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    cfg.AppName + " API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.AppName})
	})

	// Especificación OpenAPI registrada por el paquete docs.
	app.Get("/api/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Items
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.Items, deps.Ledger)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/search", itemHandler.Search)
	items.Get("/:id", itemHandler.GetByID)
	items.Patch("/:id", itemHandler.UpdatePrice)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/movements", itemHandler.Movements)

	// Ledger
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.Ledger)
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.List)

	// Reportes (solo lectura)
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, deps.Valuation, deps.PDF)
	reports.Get("/stock-value", reportHandler.StockValue)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/turnover", reportHandler.Turnover)
	reports.Get("/value-series", reportHandler.ValueSeries)
	reports.Get("/value-by-category", reportHandler.ValueByCategory)
	reports.Get("/summary", reportHandler.Summary)
	if deps.PDF != nil {
		reports.Get("/pdf", reportHandler.PDF)
	}
}
