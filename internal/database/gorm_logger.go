package database

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// zapWriter adapts a zap logger to gorm's logger.Writer.
type zapWriter struct {
	sugar *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.sugar.Infof(strings.TrimSpace(format), args...)
}

// NewGormLogger routes GORM's SQL log through zap at the given level
// (silent, error, warn or info; anything else means warn).
func NewGormLogger(log *zap.Logger, level string) logger.Interface {
	return logger.New(
		zapWriter{sugar: log.Named("gorm").Sugar()},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  parseGormLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func parseGormLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
