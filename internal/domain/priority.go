package domain

import (
	"cmp"
	"database/sql/driver"
	"errors"
	"fmt"
)

var ErrInvalidPriority = errors.New("invalid priority")

// Priority is stored and serialized as its token. Ordering comes from Rank,
// never from the token text.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists every level in ascending rank.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ParsePriority accepts the exact upper-case tokens only.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (want one of LOW, MEDIUM, HIGH, URGENT)", ErrInvalidPriority, s)
	}
	return p, nil
}

func (p Priority) Valid() bool {
	return p.Rank() >= 0
}

// Rank is LOW=0, MEDIUM=1, HIGH=2, URGENT=3 and -1 for anything else.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	default:
		return -1
	}
}

// Compare returns -1, 0 or +1 by rank.
func (p Priority) Compare(other Priority) int {
	return cmp.Compare(p.Rank(), other.Rank())
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, string(p))
	}
	return []byte(p), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value stores the token.
func (p Priority) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, string(p))
	}
	return string(p), nil
}

func (p *Priority) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return p.UnmarshalText([]byte(v))
	case []byte:
		return p.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidPriority, src)
	}
}
