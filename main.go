package main

import (
	"context"
	"log"

	"github.com/KyryloKozlovskyi/transaction-website/config"
	"github.com/KyryloKozlovskyi/transaction-website/internal/auth"
	"github.com/KyryloKozlovskyi/transaction-website/internal/handler"
	"github.com/KyryloKozlovskyi/transaction-website/internal/mailer"
	"github.com/KyryloKozlovskyi/transaction-website/internal/middleware"
	"github.com/KyryloKozlovskyi/transaction-website/internal/ratelimit"
	"github.com/KyryloKozlovskyi/transaction-website/internal/repository"
	"github.com/KyryloKozlovskyi/transaction-website/internal/service"
	"github.com/KyryloKozlovskyi/transaction-website/internal/storage"
	"github.com/KyryloKozlovskyi/transaction-website/internal/validation"
	"github.com/KyryloKozlovskyi/transaction-website/pkg/database"
	"github.com/KyryloKozlovskyi/transaction-website/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	store, err := storage.NewMinioStore(context.Background(), storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("failed to connect to object storage: %v", err)
	}

	// Domain-event publishing is optional; without a broker URL the
	// nil publisher silently no-ops.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RABBITMQ_URL not set, domain events disabled")
	}

	sender := mailer.NewResendSender(cfg.ResendAPIKey, cfg.ResendFrom)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	validate := validation.New()
	limits := ratelimit.NewMemoryStore()

	eventRepo := repository.NewEventRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	eventSvc := service.NewEventService(eventRepo, submissionRepo, store, publisher)
	submissionSvc := service.NewSubmissionService(submissionRepo, eventRepo, store, sender, publisher)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorHandler(!cfg.IsProduction())
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	e.Use(echoMw.BodyLimit("6M"))

	// Health stays outside /api so no rate-limit policy applies to it.
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "transaction-website-api"})
	})

	api := e.Group("/api", middleware.RateLimit(limits, ratelimit.General))

	adminChain := []echo.MiddlewareFunc{
		middleware.RateLimit(limits, ratelimit.Admin),
		middleware.RequireAdmin(verifier),
	}
	createChain := []echo.MiddlewareFunc{
		middleware.RateLimit(limits, ratelimit.SubmissionCreate),
	}

	handler.NewEventHandler(eventSvc, validate).
		RegisterRoutes(api.Group("/events"), adminChain...)
	handler.NewSubmissionHandler(submissionSvc, validate).
		RegisterRoutes(api.Group("/submissions"), createChain, adminChain)
	handler.NewAuthHandler().
		RegisterRoutes(
			api.Group("/auth", middleware.RateLimit(limits, ratelimit.Auth)),
			middleware.RequireAdmin(verifier),
		)

	log.Printf("API starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
