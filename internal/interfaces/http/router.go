package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jlaglobal/pangea-api/internal/application/analytics"
	"github.com/jlaglobal/pangea-api/internal/application/documents"
	"github.com/jlaglobal/pangea-api/internal/application/notifications"
	apppricing "github.com/jlaglobal/pangea-api/internal/application/pricing"
	"github.com/jlaglobal/pangea-api/internal/infrastructure/metrics"
	"github.com/jlaglobal/pangea-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName      string
	PricingUC    *apppricing.PricingUseCase
	DocumentUC   *documents.DocumentUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	OrderEventUC *notifications.OrderEventUseCase
	Log          *logger.Logger
	Metrics      *metrics.Metrics
	// Gatherer origen de GET /metrics; nil no publica la ruta.
	Gatherer prometheus.Gatherer
}

// NewApp crea la aplicación fiber con recover, log de peticiones, /health,
// /metrics y las rutas de la API.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(RequestLogger(deps.Log, deps.Metrics))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app fiber.Router, deps RouterDeps) {
	api := app.Group("/api")

	// Calculadora (sin estado)
	pricingHandler := NewPricingHandler(deps.PricingUC)
	pricingGroup := api.Group("/pricing")
	pricingGroup.Post("/preview", pricingHandler.Preview)
	pricingGroup.Post("/totals", pricingHandler.Totals)
	pricingGroup.Post("/sum", pricingHandler.Sum)
	pricingGroup.Post("/inventory-metrics", pricingHandler.InventoryMetrics)

	// Documentos normalizados
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	api.Post("/normalize/orders", documentHandler.Normalize)
	api.Get("/documents/:kind", documentHandler.List)
	api.Get("/documents/:kind/:id", documentHandler.Get)

	// Ciclo de vida de pedidos
	orderEventHandler := NewOrderEventHandler(deps.OrderEventUC)
	api.Post("/pedidos/:id/eventos", orderEventHandler.Apply)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
	api.Get("/inventory/metrics", dashboardHandler.InventoryMetrics)
}
