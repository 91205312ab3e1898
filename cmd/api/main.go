package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	apptransfer "github.com/jhoicas/traslados-api/internal/application/transfer"
	"github.com/jhoicas/traslados-api/internal/application/usecase"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/internal/infrastructure/cache"
	infranats "github.com/jhoicas/traslados-api/internal/infrastructure/nats"
	infrapdf "github.com/jhoicas/traslados-api/internal/infrastructure/pdf"
	"github.com/jhoicas/traslados-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/traslados-api/internal/interfaces/http"
	"github.com/jhoicas/traslados-api/pkg/config"
	"github.com/jhoicas/traslados-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	outletRepo := postgres.NewOutletRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Catálogo de insumos: con Redis configurado se lee detrás de un cache
	// cache-aside; sin Redis se va directo a PostgreSQL.
	var ingredientRepo repository.IngredientRepository = postgres.NewIngredientRepository(pool)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		ingredientRepo = cache.NewIngredientCache(ingredientRepo, redisClient, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de catálogo habilitado")
	}

	// Log de actividad: con NATS configurado los eventos del flujo se publican
	// en traslados.event.*; sin NATS el flujo opera igual.
	var audit apptransfer.AuditPublisher
	if cfg.NATS.URL != "" {
		natsConn, err := infranats.Connect(cfg.NATS.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a NATS")
		}
		defer natsConn.Close()
		audit = infranats.NewAuditPublisher(natsConn)
		log.Info().Str("url", cfg.NATS.URL).Msg("log de actividad habilitado")
	}

	outletUC := usecase.NewOutletUseCase(outletRepo)
	ingredientUC := usecase.NewIngredientUseCase(ingredientRepo)
	stockUC := usecase.NewStockUseCase(stockRepo, outletRepo)

	requestUC := apptransfer.NewRequestUseCase(txRunner, transferRepo, outletRepo, ingredientRepo, audit, log)
	fulfillmentUC := apptransfer.NewFulfillmentUseCase(txRunner, transferRepo, outletRepo, audit, log)
	receivingUC := apptransfer.NewReceivingUseCase(txRunner, transferRepo, audit, log)
	listingUC := apptransfer.NewListingUseCase(transferRepo)
	despatchUC := apptransfer.NewDespatchNoteUseCase(transferRepo, outletRepo, infrapdf.NewMarotoDespatchNoteGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Traslados API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OutletUC:      outletUC,
		IngredientUC:  ingredientUC,
		StockUC:       stockUC,
		RequestUC:     requestUC,
		FulfillmentUC: fulfillmentUC,
		ReceivingUC:   receivingUC,
		ListingUC:     listingUC,
		DespatchUC:    despatchUC,
		JWTSecret:     cfg.JWT.Secret,
	})

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
