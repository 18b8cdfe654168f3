// Package repositorytest provides an in-memory repository.TodoRepository for
// service and handler tests.
package repositorytest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Tomlord1122/todo-tracker/internal/domain"
	"github.com/Tomlord1122/todo-tracker/internal/repository"

	"gorm.io/gorm"
)

var _ repository.TodoRepository = (*MemoryTodoRepository)(nil)

type MemoryTodoRepository struct {
	mu     sync.RWMutex
	nextID uint
	todos  map[uint]domain.Todo

	// Err, when set, is returned by every call to simulate an unreachable store.
	Err error
}

func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{
		nextID: 1,
		todos:  make(map[uint]domain.Todo),
	}
}

func cloneTodo(t domain.Todo) domain.Todo {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	return out
}

func (r *MemoryTodoRepository) Create(_ context.Context, todo *domain.Todo) error {
	if r.Err != nil {
		return r.Err
	}
	if err := checkConstraints(*todo); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	todo.ID = r.nextID
	r.nextID++
	r.todos[todo.ID] = cloneTodo(*todo)
	return nil
}

func (r *MemoryTodoRepository) FindByID(_ context.Context, id uint) (*domain.Todo, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := cloneTodo(t)
	return &out, nil
}

func (r *MemoryTodoRepository) GetAll(ctx context.Context) ([]domain.Todo, error) {
	return r.Find(ctx, domain.TodoFilter{})
}

func (r *MemoryTodoRepository) Find(_ context.Context, filter domain.TodoFilter) ([]domain.Todo, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		if filter.Matches(t) {
			out = append(out, cloneTodo(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryTodoRepository) Update(_ context.Context, todo *domain.Todo) error {
	if r.Err != nil {
		return r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.todos[todo.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if err := checkConstraints(*todo); err != nil {
		return err
	}
	cur.Title = todo.Title
	cur.Completed = todo.Completed
	cur.Priority = todo.Priority
	cur.DueDate = todo.DueDate
	r.todos[todo.ID] = cloneTodo(cur)
	return nil
}

func (r *MemoryTodoRepository) Delete(_ context.Context, id uint) error {
	if r.Err != nil {
		return r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.todos, id)
	return nil
}

// checkConstraints mirrors the CHECK constraints of the todos table.
func checkConstraints(t domain.Todo) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: todos_title_check", repository.ErrConstraintViolation)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %w: %q", repository.ErrConstraintViolation, domain.ErrInvalidPriority, string(t.Priority))
	}
	return nil
}

// Len reports how many todos are stored.
func (r *MemoryTodoRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.todos)
}
