package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tomlord1122/todo-tracker/internal/config"
	"github.com/Tomlord1122/todo-tracker/internal/database"
	"github.com/Tomlord1122/todo-tracker/internal/logger"
	"github.com/Tomlord1122/todo-tracker/internal/reminder"
	"github.com/Tomlord1122/todo-tracker/internal/repository"
	"github.com/Tomlord1122/todo-tracker/internal/server"
	"github.com/Tomlord1122/todo-tracker/internal/service"

	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *http.Server, overdue *reminder.OverdueReminder, dbService database.Service, timeout time.Duration, log *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctxTimeout, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	// The reminder queries the database, so it stops before the pool closes.
	overdue.Stop(ctxTimeout)

	if dbService != nil {
		log.Info("closing database connection pool")
		if err := dbService.Close(); err != nil {
			log.Error("close database connection pool", zap.Error(err))
		}
	}

	log.Info("server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding}).
		With(zap.String("env", cfg.App.Env))
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal("resolve time zone", zap.Error(err))
	}

	if cfg.DB.RunMigrations {
		if err := database.Migrate(cfg.DB, log); err != nil {
			log.Fatal("run database migrations", zap.Error(err))
		}
	}

	dbService, err := database.New(cfg.DB, cfg.Log.SQLLevel, log)
	if err != nil {
		log.Fatal("connect to database", zap.Error(err))
	}

	todoRepo := repository.NewGormTodoRepository(dbService.GetDB())
	todoService := service.NewTodoService(todoRepo, log.Named("todo"))

	var overdue *reminder.OverdueReminder
	if cfg.Reminder.Enabled {
		overdue, err = reminder.NewOverdueReminder(todoService, cfg.Reminder.Schedule, loc, log)
		if err != nil {
			log.Fatal("configure overdue reminder", zap.Error(err))
		}
		overdue.Start()
	}

	apiServer := server.NewServer(cfg.HTTP, loc, todoService, dbService, log)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	go gracefulShutdown(apiServer, overdue, dbService, cfg.HTTP.ShutdownTimeout, log, done)

	log.Info("starting server", zap.String("addr", apiServer.Addr))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("graceful shutdown complete")
}
