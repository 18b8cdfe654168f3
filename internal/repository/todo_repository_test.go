package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Tomlord1122/todo-tracker/internal/database"
	"github.com/Tomlord1122/todo-tracker/internal/database/databasetest"
	"github.com/Tomlord1122/todo-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var pg databasetest.Container

func TestMain(m *testing.M) {
	code := m.Run()
	pg.Terminate()
	os.Exit(code)
}

// newTestRepository returns a repository over a freshly truncated table.
func newTestRepository(t *testing.T) TodoRepository {
	t.Helper()
	cfg := pg.Config(t)
	log := zaptest.NewLogger(t)

	require.NoError(t, database.Migrate(cfg, log))
	srv, err := database.New(cfg, "warn", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	db := srv.GetDB()
	require.NoError(t, db.Exec("TRUNCATE todos RESTART IDENTITY").Error)
	return NewGormTodoRepository(db)
}

func ptr[T any](v T) *T { return &v }

var day = domain.NewDate(2025, time.June, 1)

func seed(t *testing.T, repo TodoRepository) {
	t.Helper()
	now := time.Date(2025, time.May, 20, 8, 0, 0, 0, time.UTC)
	add := func(title string, p domain.Priority, completed bool, due *domain.Date) {
		todo := domain.NewTodo(title, now)
		todo.Priority = p
		todo.Completed = completed
		todo.DueDate = due
		require.NoError(t, repo.Create(context.Background(), &todo))
	}

	add("Pay rent", domain.PriorityUrgent, false, ptr(day.AddDays(-2)))
	add("Call mom", domain.PriorityLow, true, ptr(day.AddDays(-1)))
	add("Write report", domain.PriorityHigh, false, ptr(day))
	add("write tests", domain.PriorityMedium, false, nil)
	add("Plan 100% trip", domain.PriorityMedium, false, ptr(day.AddDays(1)))
	add("Renew passport", domain.PriorityHigh, true, ptr(day.AddDays(3)))
}

func titlesOf(todos []domain.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Title)
	}
	return out
}

func TestCreateAndFindByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	created := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)

	todo := domain.NewTodo("Round trip", created)
	todo.Priority = domain.PriorityHigh
	todo.DueDate = ptr(domain.NewDate(2025, time.February, 28))
	require.NoError(t, repo.Create(ctx, &todo))
	require.NotZero(t, todo.ID)

	got, err := repo.FindByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Round trip", got.Title)
	assert.False(t, got.Completed)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, domain.NewDate(2025, time.February, 28), *got.DueDate)
	assert.True(t, created.Equal(got.CreatedAt), "created_at %v", got.CreatedAt)

	_, err = repo.FindByID(ctx, todo.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateWritesZeroValues(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	todo := domain.NewTodo("Before", time.Now().UTC())
	todo.Completed = true
	todo.Priority = domain.PriorityUrgent
	todo.DueDate = ptr(day)
	require.NoError(t, repo.Create(ctx, &todo))

	todo.Title = "After"
	todo.Completed = false
	todo.Priority = domain.PriorityLow
	todo.DueDate = nil
	require.NoError(t, repo.Update(ctx, &todo))

	got, err := repo.FindByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.False(t, got.Completed)
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Nil(t, got.DueDate)

	missing := domain.NewTodo("ghost", time.Now())
	missing.ID = 9999
	assert.ErrorIs(t, repo.Update(ctx, &missing), gorm.ErrRecordNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	todo := domain.NewTodo("Short lived", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, &todo))

	require.NoError(t, repo.Delete(ctx, todo.ID))
	require.NoError(t, repo.Delete(ctx, todo.ID))

	_, err := repo.FindByID(ctx, todo.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStoreRejectsInvalidPriority(t *testing.T) {
	repo := newTestRepository(t)

	todo := domain.NewTodo("Bad", time.Now().UTC())
	todo.Priority = "SOMEDAY"
	err := repo.Create(context.Background(), &todo)
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)

	valid := domain.NewTodo("Good", time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), &valid))
	valid.Priority = "SOMEDAY"
	assert.ErrorIs(t, repo.Update(context.Background(), &valid), ErrConstraintViolation)
}

// The SQL translation must agree with the in-memory predicate.
func TestFindMatchesDomainFilter(t *testing.T) {
	repo := newTestRepository(t)
	seed(t, repo)
	ctx := context.Background()

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)

	filters := map[string]domain.TodoFilter{
		"empty":             {},
		"completed":         {Completed: ptr(true)},
		"open":              {Completed: ptr(false)},
		"title":             {TitleContains: ptr("Write")},
		"title lower":       {TitleContains: ptr("write")},
		"title percent":     {TitleContains: ptr("100%")},
		"title underscore":  {TitleContains: ptr("_")},
		"title empty":       {TitleContains: ptr("")},
		"priority":          {Priority: ptr(domain.PriorityHigh)},
		"priority+open":     {Priority: ptr(domain.PriorityHigh), Completed: ptr(false)},
		"due on":            {DueOn: ptr(day)},
		"due before":        {DueBefore: ptr(day)},
		"due after":         {DueAfter: ptr(day)},
		"due range":         {DueFrom: ptr(day.AddDays(-1)), DueTo: ptr(day.AddDays(3))},
		"overdue":           domain.OverdueFilter(day),
		"far past after":    {DueAfter: ptr(domain.NewDate(1970, time.January, 1))},
		"range no matches":  {DueFrom: ptr(day.AddDays(30)), DueTo: ptr(day.AddDays(40))},
		"medium due on day": {Priority: ptr(domain.PriorityMedium), DueOn: ptr(day)},
	}

	for name, f := range filters {
		t.Run(name, func(t *testing.T) {
			got, err := repo.Find(ctx, f)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, titlesOf(f.Apply(all)), titlesOf(got))
		})
	}
}

func TestFindSpotChecks(t *testing.T) {
	repo := newTestRepository(t)
	seed(t, repo)
	ctx := context.Background()

	got, err := repo.Find(ctx, domain.TodoFilter{TitleContains: ptr("Write")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Write report"}, titlesOf(got))

	got, err = repo.Find(ctx, domain.OverdueFilter(day))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pay rent", "Write report"}, titlesOf(got))

	got, err = repo.Find(ctx, domain.TodoFilter{DueFrom: ptr(day.AddDays(-1)), DueTo: ptr(day.AddDays(1))})
	require.NoError(t, err)
	assert.Equal(t, []string{"Call mom", "Write report", "Plan 100% trip"}, titlesOf(got))
}
