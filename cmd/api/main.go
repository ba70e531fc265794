package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	_ "github.com/jlaglobal/pangea-api/docs"
	appanalytics "github.com/jlaglobal/pangea-api/internal/application/analytics"
	"github.com/jlaglobal/pangea-api/internal/application/documents"
	"github.com/jlaglobal/pangea-api/internal/application/notifications"
	apppricing "github.com/jlaglobal/pangea-api/internal/application/pricing"
	"github.com/jlaglobal/pangea-api/internal/domain/repository"
	"github.com/jlaglobal/pangea-api/internal/infrastructure/cache"
	"github.com/jlaglobal/pangea-api/internal/infrastructure/mail"
	"github.com/jlaglobal/pangea-api/internal/infrastructure/memory"
	"github.com/jlaglobal/pangea-api/internal/infrastructure/metrics"
	"github.com/jlaglobal/pangea-api/internal/infrastructure/postgres"
	httpRouter "github.com/jlaglobal/pangea-api/internal/interfaces/http"
	"github.com/jlaglobal/pangea-api/pkg/config"
	"github.com/jlaglobal/pangea-api/pkg/logger"
)

type stores struct {
	docs     repository.DocumentRepository
	products repository.ProductRepository
	clients  repository.ClientRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st := openStores(ctx, cfg, log)
	defer st.close()

	// Redis es opcional: sin REDIS_URL/REDIS_ADDR el tablero no se cachea.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, caché deshabilitada")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	dashboardCache := cache.NewRedisCache(redisClient, cfg.Cache.DashboardTTL)

	var mailer notifications.Mailer = mail.NewNopMailer(log)
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPMailer(cfg.Mail)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	pricingUC := apppricing.NewPricingUseCase(m)
	documentUC := documents.NewDocumentUseCase(st.docs, m)
	dashboardUC := appanalytics.NewDashboardUseCase(st.docs, st.products, dashboardCache, log)
	orderEventUC := notifications.NewOrderEventUseCase(
		st.docs, st.clients, mailer, mail.NewRenderer(), dashboardUC, m, log,
	)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:      cfg.App.Name,
		PricingUC:    pricingUC,
		DocumentUC:   documentUC,
		DashboardUC:  dashboardUC,
		OrderEventUC: orderEventUC,
		Log:          log,
		Metrics:      m,
		Gatherer:     registry,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pangea API",
	}))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores abre PostgreSQL (aplicando migraciones) o, con STORAGE=memory,
// repositorios vacíos en memoria.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) stores {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return stores{
			docs:     memory.NewDocumentStore(),
			products: &memory.ProductStore{},
			clients:  &memory.ClientStore{},
			close:    func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("migraciones")
	}
	return stores{
		docs:     postgres.NewDocumentRepository(pool),
		products: postgres.NewProductRepository(pool),
		clients:  postgres.NewClientRepository(pool),
		close:    pool.Close,
	}
}
