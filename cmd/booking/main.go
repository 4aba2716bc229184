package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"petsit-marketplace/config"
	"petsit-marketplace/internal/client"
	"petsit-marketplace/internal/consumer"
	"petsit-marketplace/internal/handler"
	"petsit-marketplace/internal/middleware"
	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/repository"
	"petsit-marketplace/internal/service"
	"petsit-marketplace/pkg/database"
	"petsit-marketplace/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN(), &models.Booking{}, &models.Request{})
	database.EnsureBookingIndexes(db)

	// RabbitMQ consumer: reconcile payment_status from Payment Service events
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	consumer.NewPaymentConsumer(bookingRepo).Start(msgs)

	// Collaborator clients
	catalog := client.NewCachedCatalog(
		client.NewCatalogClient(client.NewCaller(cfg.CatalogURLs, cfg.CallTimeout)),
		newRedisClient(cfg),
	)
	pets := client.NewPetClient(client.NewCaller(cfg.PetURLs, cfg.CallTimeout))
	revenue := client.NewRevenueClient(client.NewCaller(cfg.PaymentURLs, cfg.CallTimeout), client.DefaultRetry)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, requestRepo, catalog, pets, service.PricingPolicy{
		FallbackEnabled: cfg.PriceFallbackEnabled,
		FallbackRate:    cfg.DefaultPricePerHour,
	})
	claimSvc := service.NewClaimService(bookingRepo, requestRepo, catalog)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
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

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-service"})
	})

	api := e.Group("/api/v1", middleware.JWTAuth(cfg.JWTSecret))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api)
	handler.NewJobHandler(claimSvc, bookingSvc).RegisterRoutes(api)
	handler.NewAdminHandler(bookingSvc, bookingRepo, revenue).RegisterRoutes(api)

	log.Printf("Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

// newRedisClient returns nil when Redis is not configured or unreachable;
// the catalog client then runs uncached.
func newRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable, catalog cache disabled: %v", err)
		return nil
	}
	return rdb
}
