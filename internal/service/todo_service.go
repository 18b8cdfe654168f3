package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tomlord1122/todo-tracker/internal/domain"
	"github.com/Tomlord1122/todo-tracker/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrInvalidTodo marks input that cannot become a valid record.
	ErrInvalidTodo = errors.New("invalid todo")
	// ErrStoreUnavailable wraps any failure reported by the backing store.
	ErrStoreUnavailable = errors.New("todo store unavailable")
)

// Input/Output Structs (Data Transfer Objects - DTOs)

// CreateTodoRequest holds the data needed to create a new todo.
// Priority defaults to MEDIUM when omitted.
type CreateTodoRequest struct {
	Title     string           `json:"title"`
	Completed bool             `json:"completed"`
	Priority  *domain.Priority `json:"priority"`
	DueDate   *domain.Date     `json:"dueDate"`
}

// UpdateTodoRequest replaces every mutable field of a todo. Omitted fields
// take their defaults: completed=false, priority=MEDIUM, no due date.
// Clients commonly echo back the full record, so id and createdAt are
// accepted and ignored.
type UpdateTodoRequest struct {
	ID        *uint            `json:"id,omitempty"`
	Title     string           `json:"title"`
	Completed bool             `json:"completed"`
	CreatedAt *string          `json:"createdAt,omitempty"`
	Priority  *domain.Priority `json:"priority"`
	DueDate   *domain.Date     `json:"dueDate"`
}

// TodoResponse is the standard representation of a Todo returned by the service.
type TodoResponse struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Completed bool            `json:"completed"`
	CreatedAt string          `json:"createdAt"`
	Priority  domain.Priority `json:"priority"`
	DueDate   *domain.Date    `json:"dueDate"`
}

// --- Service Interface ---

// TodoService defines the operations for managing and querying todos.
// Lookups that find nothing return a nil record and a nil error; list
// operations return an empty, non-nil slice.
type TodoService interface {
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error)
	GetTodoByID(ctx context.Context, id uint) (*TodoResponse, error)
	GetAllTodos(ctx context.Context) ([]TodoResponse, error)
	UpdateTodo(ctx context.Context, id uint, req UpdateTodoRequest) (*TodoResponse, error)
	DeleteTodo(ctx context.Context, id uint) error

	GetTodosByCompleted(ctx context.Context, completed bool) ([]TodoResponse, error)
	GetTodosByTitle(ctx context.Context, substring string) ([]TodoResponse, error)
	GetTodosByPriority(ctx context.Context, priority domain.Priority) ([]TodoResponse, error)
	GetTodosByPriorityAndCompleted(ctx context.Context, priority domain.Priority, completed bool) ([]TodoResponse, error)
	GetTodosByDueDate(ctx context.Context, dueDate domain.Date) ([]TodoResponse, error)
	GetTodosDueBefore(ctx context.Context, date domain.Date) ([]TodoResponse, error)
	GetTodosDueAfter(ctx context.Context, date domain.Date) ([]TodoResponse, error)
	// GetTodosByDateRange is inclusive on both ends and sorted by priority then due date.
	GetTodosByDateRange(ctx context.Context, start, end domain.Date) ([]TodoResponse, error)
	// GetOverdueTodos lists open todos due on or before today, sorted by priority then due date.
	GetOverdueTodos(ctx context.Context, today domain.Date) ([]TodoResponse, error)
	GetTodosByPriorityAndDueDate(ctx context.Context, priority domain.Priority, dueDate domain.Date) ([]TodoResponse, error)
	// GetTodosSortedByPriorityAndDueDate returns every todo, sorted.
	GetTodosSortedByPriorityAndDueDate(ctx context.Context) ([]TodoResponse, error)
	// FilterTodos applies an arbitrary AND combination of criteria.
	FilterTodos(ctx context.Context, filter domain.TodoFilter) ([]TodoResponse, error)
}

// --- Service Implementation ---

// todoService implements the TodoService interface.
// It depends on a TodoRepository to interact with the data layer.
type todoService struct {
	repo   repository.TodoRepository
	logger *zap.Logger
	now    func() time.Time
}

// Option customizes a todoService.
type Option func(*todoService)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *todoService) { s.now = now }
}

// NewTodoService creates a new instance of todoService.
func NewTodoService(repo repository.TodoRepository, logger *zap.Logger, opts ...Option) TodoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &todoService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *todoService) CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	priority, err := resolvePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	newTodo := domain.NewTodo(req.Title, s.now().UTC())
	newTodo.Completed = req.Completed
	newTodo.Priority = priority
	newTodo.DueDate = req.DueDate

	if err := s.repo.Create(ctx, &newTodo); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTodo, err)
		}
		s.logger.Error("create todo failed", zap.Error(err))
		return nil, storeError("create todo", err)
	}

	resp := toResponse(newTodo)
	return &resp, nil
}

func (s *todoService) GetTodoByID(ctx context.Context, id uint) (*TodoResponse, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("fetch todo failed", zap.Uint("id", id), zap.Error(err))
		return nil, storeError("fetch todo", err)
	}

	resp := toResponse(*todo)
	return &resp, nil
}

func (s *todoService) GetAllTodos(ctx context.Context) ([]TodoResponse, error) {
	return s.find(ctx, "list todos", domain.TodoFilter{})
}

func (s *todoService) UpdateTodo(ctx context.Context, id uint, req UpdateTodoRequest) (*TodoResponse, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	priority, err := resolvePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("fetch todo for update failed", zap.Uint("id", id), zap.Error(err))
		return nil, storeError("fetch todo for update", err)
	}

	existing.Title = req.Title
	existing.Completed = req.Completed
	existing.Priority = priority
	existing.DueDate = req.DueDate

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Deleted between the read and the write.
			return nil, nil
		}
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTodo, err)
		}
		s.logger.Error("update todo failed", zap.Uint("id", id), zap.Error(err))
		return nil, storeError("update todo", err)
	}

	resp := toResponse(*existing)
	return &resp, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete todo failed", zap.Uint("id", id), zap.Error(err))
		return storeError("delete todo", err)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidTodo)
	}
	return nil
}

func resolvePriority(p *domain.Priority) (domain.Priority, error) {
	if p == nil {
		return domain.PriorityMedium, nil
	}
	if !p.Valid() {
		return "", fmt.Errorf("%w: %w", ErrInvalidTodo, domain.ErrInvalidPriority)
	}
	return *p, nil
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

func toResponse(t domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		Priority:  t.Priority,
		DueDate:   t.DueDate,
	}
}

func toResponses(todos []domain.Todo) []TodoResponse {
	responses := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		responses = append(responses, toResponse(t))
	}
	return responses
}
