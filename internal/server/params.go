package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Tomlord1122/todo-tracker/internal/domain"
)

// queryParser reads typed query parameters and keeps the first failure so a
// handler can check once after reading everything it needs.
type queryParser struct {
	values url.Values
	err    error
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{values: r.URL.Query()}
}

func (q *queryParser) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

func (q *queryParser) lookup(name string) (string, bool) {
	if !q.values.Has(name) {
		return "", false
	}
	return q.values.Get(name), true
}

func (q *queryParser) required(name string) (string, bool) {
	v, ok := q.lookup(name)
	if !ok {
		q.fail(fmt.Errorf("missing required query parameter %q", name))
	}
	return v, ok
}

// String parameters may be empty; an empty title matches every todo.
func (q *queryParser) requiredString(name string) string {
	v, _ := q.required(name)
	return v
}

func (q *queryParser) optionalString(name string) *string {
	v, ok := q.lookup(name)
	if !ok {
		return nil
	}
	return &v
}

func (q *queryParser) parseBool(name, raw string) bool {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		q.fail(fmt.Errorf("query parameter %q: %q is not a boolean", name, raw))
	}
	return b
}

func (q *queryParser) requiredBool(name string) bool {
	raw, ok := q.required(name)
	if !ok {
		return false
	}
	return q.parseBool(name, raw)
}

func (q *queryParser) optionalBool(name string) *bool {
	raw, ok := q.lookup(name)
	if !ok {
		return nil
	}
	b := q.parseBool(name, raw)
	return &b
}

func (q *queryParser) parsePriority(name, raw string) domain.Priority {
	p, err := domain.ParsePriority(raw)
	if err != nil {
		q.fail(fmt.Errorf("query parameter %q: %w", name, err))
	}
	return p
}

func (q *queryParser) requiredPriority(name string) domain.Priority {
	raw, ok := q.required(name)
	if !ok {
		return ""
	}
	return q.parsePriority(name, raw)
}

func (q *queryParser) optionalPriority(name string) *domain.Priority {
	raw, ok := q.lookup(name)
	if !ok {
		return nil
	}
	p := q.parsePriority(name, raw)
	return &p
}

func (q *queryParser) parseDate(name, raw string) domain.Date {
	d, err := domain.ParseDate(raw)
	if err != nil {
		q.fail(fmt.Errorf("query parameter %q: %w", name, err))
	}
	return d
}

func (q *queryParser) requiredDate(name string) domain.Date {
	raw, ok := q.required(name)
	if !ok {
		return domain.Date{}
	}
	return q.parseDate(name, raw)
}

func (q *queryParser) optionalDate(name string) *domain.Date {
	raw, ok := q.lookup(name)
	if !ok {
		return nil
	}
	d := q.parseDate(name, raw)
	return &d
}
