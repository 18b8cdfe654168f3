package repository

import (
	"github.com/Tomlord1122/todo-tracker/internal/domain"

	"gorm.io/gorm"
)

// FilterScope translates a TodoFilter into WHERE clauses. It must agree with
// domain.TodoFilter.Matches: comparisons against a NULL due_date are never
// true in SQL, which gives the "no due date never matches" rule for free.
func FilterScope(f domain.TodoFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Completed != nil {
			db = db.Where("completed = ?", *f.Completed)
		}
		if f.TitleContains != nil {
			// strpos is case-sensitive and needs no LIKE escaping.
			db = db.Where("strpos(title, ?) > 0", *f.TitleContains)
		}
		if f.Priority != nil {
			db = db.Where("priority = ?", *f.Priority)
		}
		if f.DueOn != nil {
			db = db.Where("due_date = ?", *f.DueOn)
		}
		if f.DueBefore != nil {
			db = db.Where("due_date < ?", *f.DueBefore)
		}
		if f.DueAfter != nil {
			db = db.Where("due_date > ?", *f.DueAfter)
		}
		if f.DueFrom != nil {
			db = db.Where("due_date >= ?", *f.DueFrom)
		}
		if f.DueTo != nil {
			db = db.Where("due_date <= ?", *f.DueTo)
		}
		return db
	}
}
