package repository

import (
	"context"

	"github.com/Tomlord1122/todo-tracker/internal/domain"

	"gorm.io/gorm"
)

// TodoRepository defines the interface for todo data operations.
// Lists come back in id order; callers that need another order sort them.
type TodoRepository interface {
	// Create returns ErrConstraintViolation when the row breaks a table constraint.
	Create(ctx context.Context, todo *domain.Todo) error
	// FindByID returns gorm.ErrRecordNotFound when no row has the id.
	FindByID(ctx context.Context, id uint) (*domain.Todo, error)
	GetAll(ctx context.Context) ([]domain.Todo, error)
	// Find returns the todos matching every criterion set in the filter.
	Find(ctx context.Context, filter domain.TodoFilter) ([]domain.Todo, error)
	// Update replaces the mutable columns. It returns gorm.ErrRecordNotFound
	// when the row no longer exists.
	Update(ctx context.Context, todo *domain.Todo) error
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id uint) error
}

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	// GORM populates todo.ID from the RETURNING clause.
	return translateError(r.db.WithContext(ctx).Create(todo).Error)
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *gormTodoRepository) GetAll(ctx context.Context) ([]domain.Todo, error) {
	return r.Find(ctx, domain.TodoFilter{})
}

func (r *gormTodoRepository) Find(ctx context.Context, filter domain.TodoFilter) ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0)
	result := r.db.WithContext(ctx).
		Scopes(FilterScope(filter)).
		Order("id ASC").
		Find(&todos)
	if result.Error != nil {
		return nil, result.Error
	}
	return todos, nil
}

func (r *gormTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	// Select forces zero values (completed=false, due_date=NULL) to be written.
	result := r.db.WithContext(ctx).
		Model(todo).
		Select("Title", "Completed", "Priority", "DueDate").
		Updates(todo)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormTodoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Todo{}, id).Error
}
