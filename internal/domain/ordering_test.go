package domain

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByPriorityAndDueDate(t *testing.T) {
	todos := sampleTodos()
	SortByPriorityAndDueDate(todos)

	// URGENT, HIGH by due, MEDIUM with the dateless todo last, LOW likewise.
	assert.Equal(t, []uint{1, 3, 6, 5, 4, 2, 7}, ids(todos))
}

func TestSortIsStableAndIdempotent(t *testing.T) {
	due := NewDate(2025, time.January, 1)
	todos := []Todo{
		{ID: 10, Priority: PriorityHigh, DueDate: &due},
		{ID: 11, Priority: PriorityLow},
		{ID: 12, Priority: PriorityHigh, DueDate: &due},
		{ID: 13, Priority: PriorityLow},
		{ID: 14, Priority: PriorityHigh, DueDate: &due},
	}

	SortByPriorityAndDueDate(todos)
	first := ids(todos)
	assert.Equal(t, []uint{10, 12, 14, 11, 13}, first)

	SortByPriorityAndDueDate(todos)
	assert.Equal(t, first, ids(todos))
}

func TestHigherPriorityAlwaysFirst(t *testing.T) {
	early := NewDate(2000, time.January, 1)
	late := NewDate(2100, time.January, 1)
	todos := []Todo{
		{ID: 1, Priority: PriorityLow, DueDate: &early},
		{ID: 2, Priority: PriorityMedium},
		{ID: 3, Priority: PriorityUrgent, DueDate: &late},
		{ID: 4, Priority: PriorityHigh, DueDate: &early},
	}
	SortByPriorityAndDueDate(todos)

	require.True(t, slices.IsSortedFunc(todos, CompareByPriorityAndDueDate))
	for i := 0; i < len(todos); i++ {
		for j := i + 1; j < len(todos); j++ {
			assert.GreaterOrEqual(t, todos[i].Priority.Rank(), todos[j].Priority.Rank())
		}
	}
	assert.Equal(t, []uint{3, 4, 2, 1}, ids(todos))
}

func TestSortScenario(t *testing.T) {
	today := NewDate(2025, time.May, 1)
	todos := []Todo{
		{ID: 1, Title: "Urgent Todo", Priority: PriorityUrgent, DueDate: ptr(today.AddDays(1))},
		{ID: 2, Title: "Low Priority Todo", Priority: PriorityLow, DueDate: ptr(today.AddDays(2))},
		{ID: 3, Title: "High Priority Todo", Priority: PriorityHigh, DueDate: ptr(today.AddDays(1))},
	}
	SortByPriorityAndDueDate(todos)

	got := make([]Priority, 0, len(todos))
	for _, todo := range todos {
		got = append(got, todo.Priority)
	}
	assert.Equal(t, []Priority{PriorityUrgent, PriorityHigh, PriorityLow}, got)
}
