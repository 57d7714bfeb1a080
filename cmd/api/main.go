// @title                       Recupera Monofásico API
// @version                     1.0
// @description                 Importación de NF-e, clasificación PIS/COFINS monofásico y apuración del crédito en el Simples Nacional.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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

	_ "github.com/jhoicas/recupera-monofasico/docs"
	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/application/ingestion"
	"github.com/jhoicas/recupera-monofasico/internal/application/report"
	"github.com/jhoicas/recupera-monofasico/internal/application/review"
	calc "github.com/jhoicas/recupera-monofasico/internal/domain/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/domain/classification"
	"github.com/jhoicas/recupera-monofasico/internal/domain/nfe"
	infraexcel "github.com/jhoicas/recupera-monofasico/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/recupera-monofasico/internal/infrastructure/pdf"
	"github.com/jhoicas/recupera-monofasico/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/recupera-monofasico/internal/interfaces/http"
	"github.com/jhoicas/recupera-monofasico/pkg/config"
	"github.com/jhoicas/recupera-monofasico/pkg/logger"
)

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
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET no definido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	uploadRepo := postgres.NewUploadRepository(pool)
	inputRepo := postgres.NewCalculationInputRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ingestionSvc := ingestion.NewService(
		uploadRepo, txRunner,
		nfe.NewParser(), classification.NewClassifier(),
		cfg.Ingest.Workers, log,
	)
	reviewSvc := review.NewService(invoiceRepo, log)
	apuracaoSvc := apuracao.NewService(
		invoiceRepo, inputRepo,
		calc.NewAggregator(cfg.Ingest.SalesCFOPs...), calc.NewCalculator(),
		log,
	)

	// Reportes: planilla (excelize) y resumen PDF (maroto)
	reportUC := report.NewUseCase(
		apuracaoSvc,
		infraexcel.NewWorkbookRenderer(),
		infrapdf.NewMarotoReportRenderer(),
		cfg.App.CompanyName,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Ingest.MaxUploadBytes(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Minute * 2,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Recupera Monofásico API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ingestion: ingestionSvc,
		Review:    reviewSvc,
		Apuracao:  apuracaoSvc,
		Reports:   reportUC,
		JWTSecret: cfg.JWT.Secret,
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
