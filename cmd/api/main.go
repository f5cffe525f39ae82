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

	"github.com/jcastano/despensa-api/internal/application/assistant"
	"github.com/jcastano/despensa-api/internal/application/auth"
	apppantry "github.com/jcastano/despensa-api/internal/application/pantry"
	"github.com/jcastano/despensa-api/internal/application/ports"
	infraai "github.com/jcastano/despensa-api/internal/infrastructure/ai"
	infrapdf "github.com/jcastano/despensa-api/internal/infrastructure/pdf"
	"github.com/jcastano/despensa-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastano/despensa-api/internal/interfaces/http"
	"github.com/jcastano/despensa-api/pkg/config"
	"github.com/jcastano/despensa-api/pkg/logger"
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

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	itemRepo := postgres.NewItemRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	householdRepo := postgres.NewHouseholdRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Migración de esquema heredado (una sola vez; protegida por bandera).
	migrationUC := apppantry.NewMigrationUseCase(itemRepo, settingsRepo, log)
	if err := migrationUC.Run(ctx); err != nil {
		// No fatal: el servicio arranca y la migración se reintenta al
		// siguiente arranque mientras la bandera siga sin marcar.
		log.Error().Err(err).Msg("migración de lotes con ubicación incompleta")
	}

	scheduler := apppantry.NewSaveScheduler(
		time.Duration(cfg.Pantry.SaveDebounceMS)*time.Millisecond,
		itemRepo, log,
	)
	inventoryUC := apppantry.NewInventoryUseCase(txRunner, itemRepo, eventRepo, scheduler, cfg.Pantry.ExpiryWindowDays)
	expiryScanUC := apppantry.NewExpiryScanUseCase(itemRepo, eventRepo, cfg.Pantry.ExpiryWindowDays)

	pdfGenerator := infrapdf.NewMarotoShoppingListGenerator()
	suggestUC := apppantry.NewSuggestionUseCase(itemRepo, householdRepo, pdfGenerator)

	var llm ports.LLMService
	switch cfg.AI.Provider {
	case "gemini":
		llm = infraai.NewGeminiService(cfg.AI.APIKey, cfg.AI.Model)
	default:
		llm = infraai.NewAnthropicService(cfg.AI.APIKey, cfg.AI.Model)
	}
	executor := assistant.NewExecutor(inventoryUC, suggestUC)
	assistantUC := assistant.NewChatUseCase(llm, executor, log)

	authUC := auth.NewAuthUseCase(householdRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 40, // el asistente puede tardar hasta 30 s
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Despensa API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: inventoryUC,
		SuggestUC:   suggestUC,
		ExpiryScan:  expiryScanUC,
		AssistantUC: assistantUC,
		JWTSecret:   cfg.JWT.Secret,
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

	// Vaciar guardados diferidos pendientes antes de salir.
	scheduler.FlushAll()

	log.Info().Msg("aplicación detenida")
}
