package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Tomlord1122/todo-tracker/internal/domain"
	"github.com/Tomlord1122/todo-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubLister struct {
	todos []service.TodoResponse
	err   error
	asked []domain.Date
}

func (s *stubLister) GetOverdueTodos(_ context.Context, today domain.Date) ([]service.TodoResponse, error) {
	s.asked = append(s.asked, today)
	return s.todos, s.err
}

func TestRunOnceLogsOverdueTodos(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lister := &stubLister{todos: []service.TodoResponse{{ID: 1, Title: "Pay rent"}, {ID: 2, Title: "File taxes"}}}
	r, err := NewOverdueReminder(lister, "@every 1h", time.UTC, zap.New(core))
	require.NoError(t, err)

	n, err := r.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, lister.asked, 1)
	assert.Equal(t, domain.Today(time.UTC), lister.asked[0])

	entries := logs.FilterMessage("overdue todos").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 2, fields["count"])
	assert.Equal(t, []interface{}{"Pay rent", "File taxes"}, fields["titles"])
	assert.Equal(t, "reminder", entries[0].LoggerName)
}

func TestRunOnceWithNothingOverdue(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r, err := NewOverdueReminder(&stubLister{}, "@daily", time.UTC, zap.New(core))
	require.NoError(t, err)

	n, err := r.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, logs.Len())
}

func TestRunOncePropagatesErrors(t *testing.T) {
	storeErr := errors.New("store down")
	r, err := NewOverdueReminder(&stubLister{err: storeErr}, "@every 1m", time.UTC, nil)
	require.NoError(t, err)

	_, err = r.RunOnce(context.Background())

	assert.ErrorIs(t, err, storeErr)
}

func TestInvalidScheduleIsRejected(t *testing.T) {
	_, err := NewOverdueReminder(&stubLister{}, "every now and then", time.UTC, nil)
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	r, err := NewOverdueReminder(&stubLister{}, "@every 1h", time.UTC, nil)
	require.NoError(t, err)

	r.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.Stop(ctx)
	assert.NoError(t, ctx.Err())

	var nilReminder *OverdueReminder
	nilReminder.Start()
	nilReminder.Stop(context.Background())
}
