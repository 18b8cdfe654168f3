package server

import (
	"net/http"

	"github.com/Tomlord1122/todo-tracker/internal/domain"
)

func (s *Server) todosByCompletedHandler(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	completed := q.requiredBool("completed")
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	todos, err := s.todoService.GetTodosByCompleted(r.Context(), completed)
	s.respondWithTodos(w, r, todos, err)
}

func (s *Server) todosByTitleHandler(w http.ResponseWriter, r *http.Request) {
	s.titleSearch(w, r, "title")
}

// searchTodosHandler is the ?q= spelling of the title search.
func (s *Server) searchTodosHandler(w http.ResponseWriter, r *http.Request) {
	s.titleSearch(w, r, "q")
}

func (s *Server) titleSearch(w http.ResponseWriter, r *http.Request, param string) {
	q := newQueryParser(r)
	title := q.requiredString(param)
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	todos, err := s.todoService.GetTodosByTitle(r.Context(), title)
	s.respondWithTodos(w, r, todos, err)
}

func (s *Server) todosByPriorityHandler(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	priority := q.requiredPriority("priority")
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	todos, err := s.todoService.GetTodosByPriority(r.Context(), priority)
	s.respondWithTodos(w, r, todos, err)
}

func (s *Server) todosByPriorityAndCompletedHandler(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	priority := q.requiredPriority("priority")
	completed := q.requiredBool("completed")
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	todos, err := s.todoService.GetTodosByPriorityAndCompleted(r.Context(), priority, completed)
	s.respondWithTodos(w, r, todos, err)
}

func (s *Server) todosByDueDateHandler(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	dueDate := q.requiredDate("dueDate")
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	todos, err := s.todoService.GetTodosByDueDate(r.Context(), dueDate)
	s.respondWithTodos(w, r, todos, err)
}

func (s *Server) todosDueBeforeHandler(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	date := q.requiredDate("date")
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	todos, err := s.todoService.GetTodosDueBefore(r.Context(), date)
	s.respondWithTodos(w, r, todos, err)
}

func (s *Server) todosDueAfterHandler(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	date := q.requiredDate("date")
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	todos, err := s.todoService.GetTodosDueAfter(r.Context(), date)
	s.respondWithTodos(w, r, todos, err)
}

// todosByDateRangeHandler answers an inverted range with an empty list.
func (s *Server) todosByDateRangeHandler(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	start := q.requiredDate("startDate")
	end := q.requiredDate("endDate")
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	todos, err := s.todoService.GetTodosByDateRange(r.Context(), start, end)
	s.respondWithTodos(w, r, todos, err)
}

// overdueTodosHandler uses ?date= when given, otherwise today in the
// configured time zone.
func (s *Server) overdueTodosHandler(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	date := q.optionalDate("date")
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	today := domain.Today(s.location)
	if date != nil {
		today = *date
	}
	todos, err := s.todoService.GetOverdueTodos(r.Context(), today)
	s.respondWithTodos(w, r, todos, err)
}

func (s *Server) todosByPriorityAndDueDateHandler(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	priority := q.requiredPriority("priority")
	dueDate := q.requiredDate("dueDate")
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	todos, err := s.todoService.GetTodosByPriorityAndDueDate(r.Context(), priority, dueDate)
	s.respondWithTodos(w, r, todos, err)
}

func (s *Server) sortedTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todoService.GetTodosSortedByPriorityAndDueDate(r.Context())
	s.respondWithTodos(w, r, todos, err)
}
