package service

import (
	"context"
	"fmt"

	"github.com/Tomlord1122/todo-tracker/internal/domain"

	"go.uber.org/zap"
)

func (s *todoService) GetTodosByCompleted(ctx context.Context, completed bool) ([]TodoResponse, error) {
	return s.find(ctx, "filter by completed", domain.TodoFilter{Completed: &completed})
}

func (s *todoService) GetTodosByTitle(ctx context.Context, substring string) ([]TodoResponse, error) {
	return s.find(ctx, "filter by title", domain.TodoFilter{TitleContains: &substring})
}

func (s *todoService) GetTodosByPriority(ctx context.Context, priority domain.Priority) ([]TodoResponse, error) {
	return s.find(ctx, "filter by priority", domain.TodoFilter{Priority: &priority})
}

func (s *todoService) GetTodosByPriorityAndCompleted(ctx context.Context, priority domain.Priority, completed bool) ([]TodoResponse, error) {
	return s.find(ctx, "filter by priority and completed", domain.TodoFilter{Priority: &priority, Completed: &completed})
}

func (s *todoService) GetTodosByDueDate(ctx context.Context, dueDate domain.Date) ([]TodoResponse, error) {
	return s.find(ctx, "filter by due date", domain.TodoFilter{DueOn: &dueDate})
}

func (s *todoService) GetTodosDueBefore(ctx context.Context, date domain.Date) ([]TodoResponse, error) {
	return s.find(ctx, "filter due before", domain.TodoFilter{DueBefore: &date})
}

func (s *todoService) GetTodosDueAfter(ctx context.Context, date domain.Date) ([]TodoResponse, error) {
	return s.find(ctx, "filter due after", domain.TodoFilter{DueAfter: &date})
}

func (s *todoService) GetTodosByDateRange(ctx context.Context, start, end domain.Date) ([]TodoResponse, error) {
	return s.findSorted(ctx, "filter by date range", domain.TodoFilter{DueFrom: &start, DueTo: &end})
}

func (s *todoService) GetOverdueTodos(ctx context.Context, today domain.Date) ([]TodoResponse, error) {
	return s.findSorted(ctx, "list overdue", domain.OverdueFilter(today))
}

// GetTodosByPriorityAndDueDate selects by priority in the store, then keeps
// the todos due exactly on dueDate.
func (s *todoService) GetTodosByPriorityAndDueDate(ctx context.Context, priority domain.Priority, dueDate domain.Date) ([]TodoResponse, error) {
	todos, err := s.repo.Find(ctx, domain.TodoFilter{Priority: &priority})
	if err != nil {
		s.logger.Error("filter by priority and due date failed", zap.Error(err))
		return nil, storeError("filter by priority and due date", err)
	}
	onDate := domain.TodoFilter{DueOn: &dueDate}
	return toResponses(onDate.Apply(todos)), nil
}

func (s *todoService) GetTodosSortedByPriorityAndDueDate(ctx context.Context) ([]TodoResponse, error) {
	return s.findSorted(ctx, "list sorted", domain.TodoFilter{})
}

func (s *todoService) FilterTodos(ctx context.Context, filter domain.TodoFilter) ([]TodoResponse, error) {
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTodo, domain.ErrInvalidPriority)
	}
	return s.find(ctx, "filter todos", filter)
}

func (s *todoService) find(ctx context.Context, op string, filter domain.TodoFilter) ([]TodoResponse, error) {
	todos, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.logger.Error(op+" failed", zap.Error(err))
		return nil, storeError(op, err)
	}
	return toResponses(todos), nil
}

func (s *todoService) findSorted(ctx context.Context, op string, filter domain.TodoFilter) ([]TodoResponse, error) {
	todos, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.logger.Error(op+" failed", zap.Error(err))
		return nil, storeError(op, err)
	}
	domain.SortByPriorityAndDueDate(todos)
	return toResponses(todos), nil
}
