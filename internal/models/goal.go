package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyName is returned when a goal is created without a usable name
	ErrEmptyName = errors.New("name is required")
	// ErrUnknownKind is returned for a goal kind outside habit, task and progress
	ErrUnknownKind = errors.New("unknown goal kind")
)

// Kind tags the three goal variants
type Kind int

const (
	KindHabit Kind = iota + 1
	KindTask
	KindProgress
)

// Kinds lists every goal kind in display order.
var Kinds = []Kind{KindHabit, KindTask, KindProgress}

func (k Kind) String() string {
	switch k {
	case KindHabit:
		return "habit"
	case KindTask:
		return "task"
	case KindProgress:
		return "progress"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps user input such as "habit" or "tasks" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "habit", "habits":
		return KindHabit, nil
	case "task", "tasks":
		return KindTask, nil
	case "progress", "goal", "goals":
		return KindProgress, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Meta holds the fields every goal shares. It is embedded so the JSON shape
// stays flat.
type Meta struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Goal is implemented by Habit, Task and ProgressGoal only.
type Goal interface {
	Info() Meta
	Kind() Kind
	sealed()
}

// Draft carries raw user input for creating any kind of goal. Numeric fields
// stay strings so parse failures can fall back to defaults.
type Draft struct {
	Name        string
	Description string
	Current     string
	Target      string
	Unit        string
}

// Edit describes a change to descriptive fields. Nil fields are left alone.
// Target and Unit only apply to progress goals.
type Edit struct {
	Name        *string
	Description *string
	Target      *string
	Unit        *string
}

// NewGoal builds a goal of the given kind from a draft.
func NewGoal(kind Kind, d Draft) (Goal, error) {
	switch kind {
	case KindHabit:
		return NewHabit(d.Name, d.Description)
	case KindTask:
		return NewTask(d.Name, d.Description)
	case KindProgress:
		return NewProgressGoal(d.Name, d.Description, d.Current, d.Target, d.Unit)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}

func newMeta(name, description string) (Meta, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Meta{}, ErrEmptyName
	}
	return Meta{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		// Millisecond precision matches the ISO-8601 timestamps on disk.
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}, nil
}

func (m Meta) apply(e Edit) Meta {
	if e.Name != nil {
		if name := strings.TrimSpace(*e.Name); name != "" {
			m.Name = name
		}
	}
	if e.Description != nil {
		m.Description = strings.TrimSpace(*e.Description)
	}
	return m
}

// entity constrains the generic collection helpers to the goal variants.
type entity interface {
	Habit | Task | ProgressGoal
	Info() Meta
}

// replaceByID returns a copy of list with the entity matching id replaced by
// fn(entity). The input slice is never written to.
func replaceByID[T entity](list []T, id string, fn func(T) T) ([]T, bool) {
	for i, item := range list {
		if item.Info().ID != id {
			continue
		}
		out := make([]T, len(list))
		copy(out, list)
		out[i] = fn(item)
		return out, true
	}
	return list, false
}

// removeByID returns a copy of list without the entity matching id.
func removeByID[T entity](list []T, id string) ([]T, bool) {
	for i, item := range list {
		if item.Info().ID != id {
			continue
		}
		out := make([]T, 0, len(list)-1)
		out = append(out, list[:i]...)
		out = append(out, list[i+1:]...)
		return out, true
	}
	return list, false
}

// findByID returns the entity matching id.
func findByID[T entity](list []T, id string) (T, bool) {
	for _, item := range list {
		if item.Info().ID == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// findByName returns the first entity whose name matches, ignoring case.
func findByName[T entity](list []T, name string) (T, bool) {
	name = strings.TrimSpace(name)
	for _, item := range list {
		if strings.EqualFold(item.Info().Name, name) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
