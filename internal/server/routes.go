package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-tracker/internal/domain"
	"github.com/Tomlord1122/todo-tracker/internal/logger"
	"github.com/Tomlord1122/todo-tracker/internal/service"
)

const maxBodyBytes = 1 << 20

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", requestIDHeader},
		ExposedHeaders:   []string{"Link", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.HelloWorldHandler)

	r.Get("/health", s.healthHandler)

	r.Route("/api/todos", func(r chi.Router) {
		r.Post("/", s.createTodoHandler)
		r.Get("/", s.listTodosHandler)

		r.Get("/completed", s.todosByCompletedHandler)
		r.Get("/title", s.todosByTitleHandler)
		r.Get("/search", s.searchTodosHandler)
		r.Get("/priority", s.todosByPriorityHandler)
		r.Get("/priority-completed", s.todosByPriorityAndCompletedHandler)
		r.Get("/due-date", s.todosByDueDateHandler)
		r.Get("/due-before", s.todosDueBeforeHandler)
		r.Get("/due-after", s.todosDueAfterHandler)
		r.Get("/due-range", s.todosByDateRangeHandler)
		r.Get("/overdue", s.overdueTodosHandler)
		r.Get("/priority-due-date", s.todosByPriorityAndDueDateHandler)
		r.Get("/sorted", s.sortedTodosHandler)

		r.Get("/{id}", s.getTodoByIDHandler)
		r.Put("/{id}", s.updateTodoHandler)
		r.Delete("/{id}", s.deleteTodoHandler)
	})

	return r
}

func (s *Server) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Hello World from Todo Tracker!"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTodoRequest
	if !s.decodeJSONBody(w, r, &req) {
		return
	}

	todoResp, err := s.todoService.CreateTodo(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, r, err, "Failed to create todo")
		return
	}

	respondWithJSON(w, http.StatusCreated, todoResp)
}

// listTodosHandler returns every todo, or the AND of whichever filter
// parameters are present.
func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := domain.TodoFilter{
		Completed:     q.optionalBool("completed"),
		TitleContains: q.optionalString("title"),
		Priority:      q.optionalPriority("priority"),
		DueOn:         q.optionalDate("dueDate"),
		DueBefore:     q.optionalDate("dueBefore"),
		DueAfter:      q.optionalDate("dueAfter"),
		DueFrom:       q.optionalDate("startDate"),
		DueTo:         q.optionalDate("endDate"),
	}
	if q.err != nil {
		respondWithError(w, http.StatusBadRequest, q.err.Error())
		return
	}

	if filter.IsEmpty() {
		todos, err := s.todoService.GetAllTodos(r.Context())
		s.respondWithTodos(w, r, todos, err)
		return
	}
	todos, err := s.todoService.FilterTodos(r.Context(), filter)
	s.respondWithTodos(w, r, todos, err)
}

func (s *Server) getTodoByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTodoID(w, r)
	if !ok {
		return
	}

	todo, err := s.todoService.GetTodoByID(r.Context(), id)
	if err != nil {
		s.respondWithServiceError(w, r, err, "Failed to retrieve todo")
		return
	}
	if todo == nil {
		s.respondMissing(w, id)
		return
	}

	respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTodoID(w, r)
	if !ok {
		return
	}

	var req service.UpdateTodoRequest
	if !s.decodeJSONBody(w, r, &req) {
		return
	}

	updatedTodo, err := s.todoService.UpdateTodo(r.Context(), id, req)
	if err != nil {
		s.respondWithServiceError(w, r, err, "Failed to update todo")
		return
	}
	if updatedTodo == nil {
		s.respondMissing(w, id)
		return
	}

	respondWithJSON(w, http.StatusOK, updatedTodo)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTodoID(w, r)
	if !ok {
		return
	}

	if err := s.todoService.DeleteTodo(r.Context(), id); err != nil {
		s.respondWithServiceError(w, r, err, "Failed to delete todo")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseTodoID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid todo ID provided")
		return 0, false
	}
	return uint(id), true
}

// decodeJSONBody decodes a single JSON object into dst and answers the
// request itself when the body is unusable.
func (s *Server) decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(dst)
	if err == nil {
		if decoder.More() {
			respondWithError(w, http.StatusBadRequest, "Request body must only contain a single JSON object")
			return false
		}
		return true
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
		respondWithError(w, http.StatusBadRequest, msg)
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
		respondWithError(w, http.StatusBadRequest, msg)
	case errors.Is(err, domain.ErrInvalidPriority), errors.Is(err, domain.ErrInvalidDate):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains unknown field %s", fieldName))
	case errors.Is(err, io.EOF):
		respondWithError(w, http.StatusBadRequest, "Request body must not be empty")
	case errors.As(err, &maxBytesError):
		msg := fmt.Sprintf("Request body must not be larger than %d bytes", maxBytesError.Limit)
		respondWithError(w, http.StatusRequestEntityTooLarge, msg)
	default:
		logger.WithRequestID(r.Context(), s.logger).Error("decode request body", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Error processing request")
	}
	return false
}

// respondWithServiceError maps service errors onto status codes. Anything
// that is not a validation failure is logged and reported as a 500 with msg.
func (s *Server) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, service.ErrInvalidTodo) {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.WithRequestID(r.Context(), s.logger).Error(msg, zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, msg)
}

func (s *Server) respondMissing(w http.ResponseWriter, id uint) {
	if s.cfg.NullOnMissing {
		respondWithJSON(w, http.StatusOK, nil)
		return
	}
	respondWithError(w, http.StatusNotFound, fmt.Sprintf("todo with id %d not found", id))
}

func (s *Server) respondWithTodos(w http.ResponseWriter, r *http.Request, todos []service.TodoResponse, err error) {
	if err != nil {
		s.respondWithServiceError(w, r, err, "Failed to retrieve todos")
		return
	}
	if todos == nil {
		todos = []service.TodoResponse{}
	}
	respondWithJSON(w, http.StatusOK, todos)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("marshal JSON response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
