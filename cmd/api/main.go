// @title                       Shifts API
// @version                     1.0
// @description                 Shift scheduling: admins assign shifts, employees see their own schedule.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Shifts-api/docs"
	"github.com/jhoicas/Shifts-api/internal/application/auth"
	"github.com/jhoicas/Shifts-api/internal/application/shift"
	"github.com/jhoicas/Shifts-api/internal/domain/repository"
	"github.com/jhoicas/Shifts-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Shifts-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Shifts-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Shifts-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Shifts-api/internal/interfaces/http"
	"github.com/jhoicas/Shifts-api/pkg/config"
	"github.com/jhoicas/Shifts-api/pkg/logger"
)

func main() {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("starting")

	ctx := context.Background()

	var (
		userRepo  repository.UserRepository
		shiftRepo repository.ShiftRepository
		txRunner  shift.TxRunner
	)
	switch cfg.App.StoreDriver {
	case config.StoreMemory:
		store := memory.NewStore()
		userRepo, shiftRepo, txRunner = store.Users(), store.Shifts(), store.TxRunner()
		log.Warn().Msg("in-memory store: data is lost on restart")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("apply schema")
		}
		userRepo = postgres.NewUserRepository(pool)
		shiftRepo = postgres.NewShiftRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	authOpts := []auth.Option{}
	if cfg.Redis.Enabled() {
		rc, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			// The directory cache is optional; run without it.
			log.Warn().Err(err).Msg("redis unavailable, employee cache disabled")
		} else {
			defer rc.Close()
			authOpts = append(authOpts, auth.WithEmployeeCache(infraredis.NewEmployeeCache(rc, cfg.Redis.CacheTTL)))
		}
	}

	issuer := auth.NewSessionIssuer(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	authUC := auth.NewAuthUseCase(userRepo, issuer, log.Component("auth"), authOpts...)

	// PDF: printable roster
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	shiftUC := shift.NewUseCase(txRunner, shiftRepo, userRepo, pdfGenerator, log.Component("shift"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.FrontendURL,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
	}))
	app.Use(log.RequestLogger())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Shifts API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ShiftUC:   shiftUC,
		Gate:      auth.NewGate(cfg.JWT.Secret),
		StartedAt: startedAt,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}
