package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"petsit-marketplace/config"
	"petsit-marketplace/internal/handler"
	"petsit-marketplace/internal/metrics"
	"petsit-marketplace/internal/middleware"
	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/repository"
	"petsit-marketplace/internal/service"
	"petsit-marketplace/pkg/database"
	"petsit-marketplace/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN(), &models.Transaction{})

	// RabbitMQ publisher: payment events for the Booking Service to reconcile
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	txRepo := repository.NewTransactionRepository(db)
	paymentSvc := service.NewPaymentService(txRepo, publisher)

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
	e.Use(metrics.HTTPMetrics())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "payment-service"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", middleware.JWTAuth(cfg.JWTSecret))
	handler.NewPaymentHandler(paymentSvc).RegisterRoutes(api)

	log.Printf("Payment Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
