// Package reminder periodically logs the todos that are past due.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/Tomlord1122/todo-tracker/internal/domain"
	"github.com/Tomlord1122/todo-tracker/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// maxListedTitles caps how many titles a single reminder line carries.
const maxListedTitles = 20

// OverdueLister is the slice of service.TodoService the reminder needs.
type OverdueLister interface {
	GetOverdueTodos(ctx context.Context, today domain.Date) ([]service.TodoResponse, error)
}

type OverdueReminder struct {
	todos    OverdueLister
	location *time.Location
	logger   *zap.Logger
	cron     *cron.Cron
	timeout  time.Duration
}

// NewOverdueReminder schedules RunOnce with a standard five-field cron spec
// or a descriptor such as "@every 1h".
func NewOverdueReminder(todos OverdueLister, schedule string, loc *time.Location, logger *zap.Logger) (*OverdueReminder, error) {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &OverdueReminder{
		todos:    todos,
		location: loc,
		logger:   logger.Named("reminder"),
		cron:     cron.New(cron.WithLocation(loc)),
		timeout:  30 * time.Second,
	}

	if _, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if _, err := r.RunOnce(ctx); err != nil {
			r.logger.Error("overdue check failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("overdue reminder schedule %q: %w", schedule, err)
	}

	return r, nil
}

// Start launches the cron scheduler.
func (r *OverdueReminder) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("overdue reminder started")
}

// Stop waits for a running check to finish or for ctx to expire.
func (r *OverdueReminder) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("overdue reminder stopped")
}

// RunOnce logs the todos overdue as of today in the reminder's location and
// returns how many there were.
func (r *OverdueReminder) RunOnce(ctx context.Context) (int, error) {
	today := domain.Today(r.location)
	overdue, err := r.todos.GetOverdueTodos(ctx, today)
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		r.logger.Debug("no overdue todos", zap.Stringer("today", today))
		return 0, nil
	}

	titles := make([]string, 0, min(len(overdue), maxListedTitles))
	for _, t := range overdue[:min(len(overdue), maxListedTitles)] {
		titles = append(titles, t.Title)
	}
	r.logger.Info("overdue todos",
		zap.Stringer("today", today),
		zap.Int("count", len(overdue)),
		zap.Strings("titles", titles),
	)
	return len(overdue), nil
}
