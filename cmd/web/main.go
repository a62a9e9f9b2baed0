// @title        Cutman Web API
// @version      1.0
// @description  API JSON del widget de chat de The Cutman Co. Las páginas y fragmentos htmx del panel no forman parte de esta API.
// @BasePath     /
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

	_ "github.com/jhoicas/cutman-web/docs"
	"github.com/jhoicas/cutman-web/internal/application/auth"
	"github.com/jhoicas/cutman-web/internal/application/chat"
	"github.com/jhoicas/cutman-web/internal/application/table"
	"github.com/jhoicas/cutman-web/internal/application/usecase"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
	"github.com/jhoicas/cutman-web/internal/infrastructure/backend"
	"github.com/jhoicas/cutman-web/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/cutman-web/internal/infrastructure/pdf"
	"github.com/jhoicas/cutman-web/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/cutman-web/internal/infrastructure/redis"
	"github.com/jhoicas/cutman-web/internal/infrastructure/webhook"
	httpRouter "github.com/jhoicas/cutman-web/internal/interfaces/http"
	"github.com/jhoicas/cutman-web/pkg/config"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// fenceIdle tiempo tras el cual se olvida el número de secuencia de una pestaña.
const fenceIdle = 30 * time.Minute

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
		Str("backend", cfg.Backend.BaseURL).
		Str("session_store", cfg.Session.Store).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Almacén de sesiones: cookie firmado por defecto, o server-side según SESSION_STORE.
	var sessionRepo repository.SessionRepository
	switch cfg.Session.Store {
	case config.SessionStoreMemory:
		sessionRepo = memory.NewSessionRepository()
	case config.SessionStorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.UpMigrations(pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		repo := postgres.NewSessionRepository(pool)
		go purgeSessions(ctx, repo, cfg.Session.TTL, log)
		sessionRepo = repo
	case config.SessionStoreRedis:
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		sessionRepo = infraredis.NewSessionRepository(client)
	}
	sessions := httpRouter.NewSessionManager(cfg.Session, sessionRepo, log)

	client := backend.NewClient(cfg.Backend, log)
	authUC := auth.NewAuthUseCase(backend.NewAuthRepository(client))
	userUC := usecase.NewUserUseCase(backend.NewUserRepository(client), backend.NewRoleRepository(client), log)
	serviceUC := usecase.NewServiceUseCase(
		backend.NewServiceRepository(client),
		infrapdf.NewMarotoPriceListGenerator(),
		usecase.BusinessInfo{
			Name:    httpRouter.BusinessName,
			Address: httpRouter.BusinessAddress,
			Phone:   httpRouter.BusinessPhone,
		},
	)

	chatSvc := chat.NewService(webhook.NewChatWebhook(cfg.Chat, log), log)
	go chatSvc.Run(ctx, cfg.Chat.IdleTTL)

	fence := table.NewFence()
	go sweepFence(ctx, fence, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Chat.Timeout + time.Second*5,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI de la API del chat: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cutman Web API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Views:         httpRouter.MustViews(),
		Sessions:      sessions,
		AuthUC:        authUC,
		UserUC:        userUC,
		ServiceUC:     serviceUC,
		Chat:          chatSvc,
		Versions:      table.NewVersions(),
		Fence:         fence,
		SiteURL:       cfg.App.SiteURL,
		SecureCookies: cfg.Session.CookieSecure,
		Log:           log,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// purgeSessions borra periódicamente las sesiones vencidas de PostgreSQL.
func purgeSessions(ctx context.Context, repo *postgres.SessionRepo, ttl time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(max(ttl, time.Minute))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purgar sesiones")
				continue
			}
			if n > 0 {
				log.Debug().Int64("sesiones", n).Msg("sesiones vencidas borradas")
			}
		}
	}
}

func sweepFence(ctx context.Context, fence *table.Fence, log *logger.Logger) {
	ticker := time.NewTicker(fenceIdle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := fence.Sweep(fenceIdle); n > 0 {
				log.Debug().Int("claves", n).Msg("cerco de tablas depurado")
			}
		}
	}
}
