package domain

import "time"

// Todo is the single persisted entity. ID and CreatedAt are owned by the
// store and never change after creation.
type Todo struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	Completed bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	Priority  Priority  `gorm:"type:varchar(16);not null"`
	DueDate   *Date     `gorm:"type:date"`
}

// NewTodo builds a Todo with the construction-time defaults applied.
func NewTodo(title string, now time.Time) Todo {
	return Todo{
		Title:     title,
		Completed: false,
		CreatedAt: now,
		Priority:  PriorityMedium,
	}
}

// HasDueDate reports whether the todo carries a due date.
func (t Todo) HasDueDate() bool {
	return t.DueDate != nil
}
