package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&courierrepo.CourierDTO{}, &orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("failed to migrate database schema: %v", err)
	}

	bus := rabbitmq.NewBus(rabbitmq.Config{
		URL:            configs.AmqpURL,
		MaxRetries:     configs.EventMaxRetries,
		RetryBaseDelay: parseDuration(configs.EventRetryBaseDelay),
		Prefetch:       configs.EventPrefetch,
	}, logger)
	if err := bus.Connect(context.Background()); err != nil {
		log.Fatalf("failed to connect to message broker: %v", err)
	}
	defer bus.Close()

	subscribeEventAudit(bus, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, bus, logger)

	jobManager := app.CreateJobManager(configs.AssignmentCronSpec)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort, logger)
}

// subscribeEventAudit consumes every event the service publishes and writes
// an audit line. Exercises the consumer side of the bus topology, retries
// included, so dead-lettered events surface in one place.
func subscribeEventAudit(bus *rabbitmq.Bus, logger *slog.Logger) {
	auditLog := logger.With("component", "event_audit")
	for _, eventType := range ports.AllEventTypes() {
		err := bus.Subscribe(eventType, func(ctx context.Context, envelope rabbitmq.Envelope) error {
			auditLog.InfoContext(ctx, "event observed",
				"event_type", envelope.Type,
				"timestamp", envelope.Timestamp,
				"payload", string(envelope.Payload))
			return nil
		})
		if err != nil {
			log.Fatalf("failed to subscribe to %s: %v", eventType, err)
		}
	}
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)
	e.GET("/ws", app.CreateWSServer().Handle)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("web server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		AmqpURL:             os.Getenv("AMQP_URL"),
		EventMaxRetries:     parseInt(os.Getenv("EVENT_MAX_RETRIES")),
		EventRetryBaseDelay: os.Getenv("EVENT_RETRY_BASE_DELAY"),
		EventPrefetch:       parseInt(os.Getenv("EVENT_PREFETCH")),

		AssignmentCronSpec: os.Getenv("ASSIGNMENT_CRON_SPEC"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseInt returns zero for empty or malformed values; zero means "use the
// adapter default".
func parseInt(raw string) int {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

func parseDuration(raw string) time.Duration {
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return value
}
