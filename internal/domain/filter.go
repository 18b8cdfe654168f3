package domain

import "strings"

// TodoFilter selects todos. Every criterion that is set must hold; an empty
// filter matches everything. Due-date criteria never match a todo without a
// due date.
type TodoFilter struct {
	Completed     *bool
	TitleContains *string
	Priority      *Priority

	DueOn     *Date
	DueBefore *Date // strict
	DueAfter  *Date // strict
	DueFrom   *Date // inclusive
	DueTo     *Date // inclusive
}

// OverdueFilter selects open todos due on or before today.
func OverdueFilter(today Date) TodoFilter {
	open := false
	return TodoFilter{Completed: &open, DueTo: &today}
}

func (f TodoFilter) IsEmpty() bool {
	return f == TodoFilter{}
}

// HasDueCriteria reports whether any due-date criterion is set.
func (f TodoFilter) HasDueCriteria() bool {
	return f.DueOn != nil || f.DueBefore != nil || f.DueAfter != nil || f.DueFrom != nil || f.DueTo != nil
}

// Matches evaluates the filter against a single todo. Title matching is a
// case-sensitive substring test.
func (f TodoFilter) Matches(t Todo) bool {
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.TitleContains != nil && !strings.Contains(t.Title, *f.TitleContains) {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if !f.HasDueCriteria() {
		return true
	}
	if t.DueDate == nil {
		return false
	}
	due := *t.DueDate
	if f.DueOn != nil && due != *f.DueOn {
		return false
	}
	if f.DueBefore != nil && !due.Before(*f.DueBefore) {
		return false
	}
	if f.DueAfter != nil && !due.After(*f.DueAfter) {
		return false
	}
	if f.DueFrom != nil && due.Before(*f.DueFrom) {
		return false
	}
	if f.DueTo != nil && due.After(*f.DueTo) {
		return false
	}
	return true
}

// Apply keeps the todos that match, preserving order.
func (f TodoFilter) Apply(todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
