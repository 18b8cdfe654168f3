package repositorytest

import (
	"context"
	"testing"
	"time"

	"github.com/Tomlord1122/todo-tracker/internal/domain"
	"github.com/Tomlord1122/todo-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRejectsInvalidPriority(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	bad := domain.NewTodo("Bad", time.Now().UTC())
	bad.Priority = "SOMEDAY"
	err := repo.Create(ctx, &bad)
	assert.ErrorIs(t, err, repository.ErrConstraintViolation)
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	assert.Zero(t, repo.Len())

	good := domain.NewTodo("Good", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, &good))
	good.Priority = "SOMEDAY"
	assert.ErrorIs(t, repo.Update(ctx, &good), domain.ErrInvalidPriority)

	stored, err := repo.FindByID(ctx, good.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, stored.Priority)
}

func TestMemoryRejectsBlankTitle(t *testing.T) {
	repo := NewMemoryTodoRepository()

	todo := domain.NewTodo("   ", time.Now().UTC())
	assert.ErrorIs(t, repo.Create(context.Background(), &todo), repository.ErrConstraintViolation)
}
