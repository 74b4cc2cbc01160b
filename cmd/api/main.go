package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/srgjo27/ticket_inventory/internal/adapter/cache"
	"github.com/srgjo27/ticket_inventory/internal/adapter/handler"
	"github.com/srgjo27/ticket_inventory/internal/adapter/messaging/rabbitmq"
	"github.com/srgjo27/ticket_inventory/internal/adapter/repository/postgres"
	"github.com/srgjo27/ticket_inventory/internal/config"
	"github.com/srgjo27/ticket_inventory/internal/core/ports"
	"github.com/srgjo27/ticket_inventory/internal/core/services"
	"github.com/srgjo27/ticket_inventory/internal/platform/database"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Service exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, database.Config{
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	gdb, err := database.NewGormDB(db)
	if err != nil {
		return err
	}

	if err := postgres.Migrate(gdb); err != nil {
		return err
	}

	slog.Info("Connecting to Redis", "addr", cfg.RedisAddr())

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}
	slog.Info("Redis connected successfully")

	// left as a nil interface when disabled so the service skips publishing
	var publisher ports.EventPublisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			return err
		}
		defer p.Close()
		publisher = p
	} else {
		slog.Info("RABBITMQ_URL not set, ticket events will not be published")
	}

	store := postgres.NewStore(db)

	inventoryService := services.NewInventoryService(
		store,
		postgres.NewTicketRepository(db),
		postgres.NewQueryRepository(gdb),
		cache.NewAvailabilityCache(redisClient, cfg.AvailabilityCacheTTL),
		publisher,
		services.Config{MaxTicketsPerPurchase: cfg.MaxTicketsPerPurchase},
	)

	reconciler := services.NewReconciler(postgres.NewAuditRepository(db), cfg.ReconcileInterval)

	e := newServer(inventoryService, handler.NewAuthenticator(cfg.JWTSecret))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reconciler.Run(ctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("Server starting", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Server exiting")
	return nil
}

func newServer(svc handler.InventoryManager, auth *handler.Authenticator) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Server.ReadTimeout = 5 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 120 * time.Second

	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency.String()}
			if v.Error != nil {
				slog.Warn("Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			slog.Info("Request", attrs...)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "ticket-inventory"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.NewTicketHandler(svc).RegisterRoutes(e, auth.Middleware())

	return e
}
