package main

import (
	"banking-engine/internal/api"
	"banking-engine/internal/banking"
	"banking-engine/internal/batch"
	"banking-engine/internal/config"
	"banking-engine/internal/domain/interest"
	"banking-engine/internal/event"
	"banking-engine/internal/infrastructure/logging"
	"banking-engine/internal/notification"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

func main() {
	cfg, logger := initializeApp()

	hub := initializeHub(cfg, logger)
	amqpConn := attachRabbitMQSink(cfg, hub, logger)
	defer closeRabbitMQ(amqpConn, logger)

	svc := banking.NewService(hub, logger)
	runWalkthrough(context.Background(), svc, os.Stdout, logger)

	accrualJob := initializeAccrualJob(cfg, svc, logger)
	cronScheduler := startBatchJobs(cfg, logger, accrualJob)
	router := api.SetupRouter(svc, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeHub(cfg *config.Config, logger *slog.Logger) *notification.Hub {
	logger.Info("Initializing notification hub...", "devices", cfg.Notification.Devices)
	hub := notification.NewHub(logger)
	for _, kind := range cfg.Notification.Devices {
		device, err := notification.NewDevice(kind, os.Stdout)
		if err != nil {
			logger.Warn("Skipping unknown notification device", "device", kind, "error", err)
			continue
		}
		hub.Register(device)
	}
	return hub
}

// attachRabbitMQSink registers a broker sink on the hub when enabled. A broker
// that cannot be reached is logged and skipped.
func attachRabbitMQSink(cfg *config.Config, hub *notification.Hub, logger *slog.Logger) *amqp.Connection {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ notification sink disabled")
		return nil
	}
	url := event.DialURL(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.Username, cfg.RabbitMQ.Password)
	conn, err := amqp.Dial(url)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, continuing without broker sink", "host", cfg.RabbitMQ.Host, "error", err)
		return nil
	}
	sink, err := event.NewRabbitMQSink(conn, cfg.RabbitMQ.ExchangeName, cfg.RabbitMQ.RoutingKey, logger)
	if err != nil {
		logger.Error("Failed to initialize RabbitMQ sink", "error", err)
		conn.Close()
		return nil
	}
	hub.Register(sink)
	return conn
}

func closeRabbitMQ(conn *amqp.Connection, logger *slog.Logger) {
	if conn == nil {
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := conn.Close(); err != nil {
		logger.Warn("Failed to close RabbitMQ connection", "error", err)
	}
}

func initializeAccrualJob(cfg *config.Config, svc banking.Service, logger *slog.Logger) *batch.InterestAccrualJob {
	strategy, err := interest.ParseStrategy(cfg.Interest.Strategy)
	if err != nil {
		logger.Warn("Invalid interest strategy configured, falling back to savings", "strategy", cfg.Interest.Strategy, "error", err)
		strategy = interest.Savings
	}
	return batch.NewInterestAccrualJob(svc, strategy, logger)
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}
	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, accrualJob *batch.InterestAccrualJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Interest.Schedule
	if scheduleSpec == "" {
		scheduleSpec = "0 0 1 * *"
		logger.Warn("Interest accrual schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := time.Duration(cfg.Interest.TimeoutSeconds) * time.Second
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "InterestAccrual")
		jobLogger.Info("Cron triggered: Running interest accrual job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := accrualJob.Run(ctx); runErr != nil {
			jobLogger.Error("Interest accrual job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Interest accrual job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule interest accrual job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled interest accrual job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
