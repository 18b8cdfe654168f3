package server

import (
	"net/http"
	"time"

	"github.com/Tomlord1122/todo-tracker/internal/config"
	"github.com/Tomlord1122/todo-tracker/internal/database"
	"github.com/Tomlord1122/todo-tracker/internal/service"

	"go.uber.org/zap"
)

type Server struct {
	cfg         config.HTTPConfig
	location    *time.Location
	todoService service.TodoService
	db          database.Service
	logger      *zap.Logger
}

// New wires the handlers without binding a listener. Tests drive
// RegisterRoutes directly.
func New(cfg config.HTTPConfig, loc *time.Location, todoService service.TodoService, dbService database.Service, logger *zap.Logger) *Server {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:         cfg,
		location:    loc,
		todoService: todoService,
		db:          dbService,
		logger:      logger,
	}
}

// NewServer returns an http.Server for the todo API.
func NewServer(cfg config.HTTPConfig, loc *time.Location, todoService service.TodoService, dbService database.Service, logger *zap.Logger) *http.Server {
	appServer := New(cfg, loc, todoService, dbService, logger)

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     zap.NewStdLog(appServer.logger.Named("http")),
	}
}
