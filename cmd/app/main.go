package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	"marketplace/internal/adapters/out/events"
	"marketplace/internal/adapters/out/gateway"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := postgres.Open(postgres.ConnectionParams{
		Host:     configs.DBHost,
		Port:     configs.DBPort,
		User:     configs.DBUser,
		Password: configs.DBPassword,
		DBName:   configs.DBName,
		SSLMode:  configs.DBSslMode,
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := events.NewHub(logger)
	publishers := []ports.EventPublisher{hub}
	if configs.RabbitMQURL != "" {
		rabbit, err := events.DialRabbitPublisher(configs.RabbitMQURL, logger)
		if err != nil {
			log.Fatalf("Error connecting to RabbitMQ: %v", err)
		}
		defer rabbit.Close()
		publishers = append(publishers, rabbit)
	}

	app, err := cmd.NewCompositionRoot(configs, db, events.NewFanout(publishers...), hub, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	router, limiter, err := app.CreateRouter(ctx)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error { return limiter.Run(gctx) })
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("http server listening", "addr", addr)
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		logger.Error("server stopped", "error", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded, using the process environment: %v", err)
	}

	config := cmd.Config{
		HTTPPort:       envOr("HTTP_PORT", "8080"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSslMode:      envOr("DB_SSLMODE", "disable"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		GatewaySecret:  os.Getenv("GATEWAY_SECRET"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		CommissionRate: services.DefaultCommissionRate,
		PaymentTTL:     gateway.DefaultPaymentTTL,
	}
	if config.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is required")
	}

	if v := os.Getenv("COMMISSION_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			log.Fatalf("Invalid COMMISSION_RATE %q: %v", v, err)
		}
		config.CommissionRate = rate
	}
	if v := os.Getenv("PAYMENT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			log.Fatalf("Invalid PAYMENT_TTL %q", v)
		}
		config.PaymentTTL = ttl
	}
	return config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
