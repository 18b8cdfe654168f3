package domain

import "slices"

// CompareByPriorityAndDueDate orders higher priority first, then earlier due
// date, with todos lacking a due date last within their priority.
func CompareByPriorityAndDueDate(a, b Todo) int {
	if c := b.Priority.Compare(a.Priority); c != 0 {
		return c
	}
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	default:
		return a.DueDate.Compare(*b.DueDate)
	}
}

// SortByPriorityAndDueDate sorts in place. The sort is stable, so todos equal
// on both keys keep their incoming order.
func SortByPriorityAndDueDate(todos []Todo) {
	slices.SortStableFunc(todos, CompareByPriorityAndDueDate)
}
