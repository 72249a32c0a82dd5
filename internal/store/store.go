// Package store owns the in-memory goal collections. Every mutation swaps a
// whole collection for a new one and tells the observer which collection
// changed.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/datekey"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/stats"
)

var (
	ErrNotReady      = errors.New("goal store is not ready")
	ErrNotFound      = errors.New("goal not found")
	ErrAmbiguous     = errors.New("more than one goal has that name")
	ErrInvalidAmount = errors.New("amount must be a finite number")
)

// Observer is told about every effective change, with the collections as
// they are after the change.
type Observer interface {
	Changed(kind models.Kind, c models.Collections)
}

// Loader produces the initial collections.
type Loader interface {
	Load(ctx context.Context) (models.Collections, error)
}

// Syncer is a Loader that also observes changes, like persist.Synchronizer.
type Syncer interface {
	Loader
	Observer
}

type Store struct {
	mu       sync.RWMutex
	observer Observer
	ready    bool
	c        models.Collections
}

// New returns an empty store that is not ready yet. observer may be nil.
func New(observer Observer) *Store {
	return &Store{
		observer: observer,
		c: models.Collections{
			Habits:   []models.Habit{},
			Tasks:    []models.Task{},
			Progress: []models.ProgressGoal{},
		},
	}
}

// Open loads the collections through s and returns a ready store that
// reports changes back to it.
func Open(ctx context.Context, s Syncer) (*Store, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	st := New(s)
	st.Hydrate(c)
	st.MarkReady()
	return st, nil
}

// Hydrate replaces all collections without notifying the observer.
func (s *Store) Hydrate(c models.Collections) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.Habits != nil {
		s.c.Habits = c.Habits
	}
	if c.Tasks != nil {
		s.c.Tasks = c.Tasks
	}
	if c.Progress != nil {
		s.c.Progress = c.Progress
	}
}

// Replace swaps in whole collections for the given kinds and notifies the
// observer once per kind. It is used to apply repairs and restores.
func (s *Store) Replace(c models.Collections, kinds ...models.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotReady
	}
	for _, kind := range kinds {
		switch kind {
		case models.KindHabit:
			s.c.Habits = nonNil(c.Habits)
		case models.KindTask:
			s.c.Tasks = nonNil(c.Tasks)
		case models.KindProgress:
			s.c.Progress = nonNil(c.Progress)
		default:
			return fmt.Errorf("%w: %v", models.ErrUnknownKind, kind)
		}
		if s.observer != nil {
			s.observer.Changed(kind, s.c)
		}
	}
	return nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

func (s *Store) MarkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// mutate runs fn under the write lock and notifies the observer when fn
// reports a change. The notification happens before the lock is released
// so observers see changes in order.
func (s *Store) mutate(kind models.Kind, fn func(c *models.Collections) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotReady
	}
	changed, err := fn(&s.c)
	if err != nil {
		return err
	}
	if changed && s.observer != nil {
		s.observer.Changed(kind, s.c)
	}
	return nil
}

// Collections returns the current collections. The slices must not be
// modified.
func (s *Store) Collections() models.Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c
}

func (s *Store) Habits() []models.Habit {
	return s.Collections().Habits
}

func (s *Store) Tasks() []models.Task {
	return s.Collections().Tasks
}

func (s *Store) Progress() []models.ProgressGoal {
	return s.Collections().Progress
}

func (s *Store) AddHabit(name, description string) (models.Habit, error) {
	g, err := s.Add(models.KindHabit, models.Draft{Name: name, Description: description})
	if err != nil {
		return models.Habit{}, err
	}
	return g.(models.Habit), nil
}

func (s *Store) AddTask(name, description string) (models.Task, error) {
	g, err := s.Add(models.KindTask, models.Draft{Name: name, Description: description})
	if err != nil {
		return models.Task{}, err
	}
	return g.(models.Task), nil
}

func (s *Store) AddProgress(name, description, current, target, unit string) (models.ProgressGoal, error) {
	g, err := s.Add(models.KindProgress, models.Draft{
		Name:        name,
		Description: description,
		Current:     current,
		Target:      target,
		Unit:        unit,
	})
	if err != nil {
		return models.ProgressGoal{}, err
	}
	return g.(models.ProgressGoal), nil
}

// Add creates a goal of the given kind and appends it to its collection.
func (s *Store) Add(kind models.Kind, d models.Draft) (models.Goal, error) {
	var created models.Goal
	err := s.mutate(kind, func(c *models.Collections) (bool, error) {
		g, err := models.NewGoal(kind, d)
		if err != nil {
			return false, err
		}
		switch g := g.(type) {
		case models.Habit:
			c.Habits = appendCopy(c.Habits, g)
		case models.Task:
			c.Tasks = appendCopy(c.Tasks, g)
		case models.ProgressGoal:
			c.Progress = appendCopy(c.Progress, g)
		}
		created = g
		return true, nil
	})
	return created, err
}

func appendCopy[T any](list []T, item T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, item)
}

// ToggleHabitDay flips completion of the habit on date and returns the
// updated habit.
//
// Like every mutation below, an id that matches no goal changes nothing,
// notifies nobody and is not an error; the zero value is returned. Use
// Resolve or Find first when the caller needs to report a missing goal.
func (s *Store) ToggleHabitDay(id string, date time.Time) (models.Habit, error) {
	var h models.Habit
	err := s.mutate(models.KindHabit, func(c *models.Collections) (bool, error) {
		next, ok := models.ToggleHabitDay(c.Habits, id, date)
		if !ok {
			return false, nil
		}
		c.Habits = next
		h, _ = models.FindHabit(next, id)
		return true, nil
	})
	return h, err
}

func (s *Store) ToggleTask(id string) (models.Task, error) {
	var t models.Task
	err := s.mutate(models.KindTask, func(c *models.Collections) (bool, error) {
		next, ok := models.ToggleTask(c.Tasks, id)
		if !ok {
			return false, nil
		}
		c.Tasks = next
		t, _ = models.FindTask(next, id)
		return true, nil
	})
	return t, err
}

// UpdateProgress sets a progress goal's current value from raw input.
// Input that is not a finite number changes nothing and returns
// ErrInvalidAmount, unless the id is unknown.
func (s *Store) UpdateProgress(id, raw string) (models.ProgressGoal, error) {
	var p models.ProgressGoal
	err := s.mutate(models.KindProgress, func(c *models.Collections) (bool, error) {
		if _, ok := models.FindProgress(c.Progress, id); !ok {
			return false, nil
		}
		next, ok := models.UpdateProgressCurrent(c.Progress, id, raw)
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
		}
		c.Progress = next
		p, _ = models.FindProgress(next, id)
		return true, nil
	})
	return p, err
}

// IncrementProgress adds one to the goal's current value, up to its target.
func (s *Store) IncrementProgress(id string) (models.ProgressGoal, error) {
	var p models.ProgressGoal
	err := s.mutate(models.KindProgress, func(c *models.Collections) (bool, error) {
		next, ok := models.IncrementProgress(c.Progress, id)
		if !ok {
			return false, nil
		}
		c.Progress = next
		p, _ = models.FindProgress(next, id)
		return true, nil
	})
	return p, err
}

// Edit changes descriptive fields of a goal. The result is nil when no goal
// has the id.
func (s *Store) Edit(kind models.Kind, id string, e models.Edit) (models.Goal, error) {
	var g models.Goal
	err := s.mutate(kind, func(c *models.Collections) (bool, error) {
		var ok bool
		switch kind {
		case models.KindHabit:
			if c.Habits, ok = models.EditHabit(c.Habits, id, e); ok {
				g, _ = models.FindHabit(c.Habits, id)
			}
		case models.KindTask:
			if c.Tasks, ok = models.EditTask(c.Tasks, id, e); ok {
				g, _ = models.FindTask(c.Tasks, id)
			}
		case models.KindProgress:
			if c.Progress, ok = models.EditProgress(c.Progress, id, e); ok {
				g, _ = models.FindProgress(c.Progress, id)
			}
		default:
			return false, fmt.Errorf("%w: %v", models.ErrUnknownKind, kind)
		}
		return ok, nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes a goal.
func (s *Store) Delete(kind models.Kind, id string) error {
	return s.mutate(kind, func(c *models.Collections) (bool, error) {
		var ok bool
		switch kind {
		case models.KindHabit:
			c.Habits, ok = models.DeleteHabit(c.Habits, id)
		case models.KindTask:
			c.Tasks, ok = models.DeleteTask(c.Tasks, id)
		case models.KindProgress:
			c.Progress, ok = models.DeleteProgress(c.Progress, id)
		default:
			return false, fmt.Errorf("%w: %v", models.ErrUnknownKind, kind)
		}
		return ok, nil
	})
}

// Find looks a goal up by id.
func (s *Store) Find(kind models.Kind, id string) (models.Goal, bool) {
	c := s.Collections()
	switch kind {
	case models.KindHabit:
		if h, ok := models.FindHabit(c.Habits, id); ok {
			return h, true
		}
	case models.KindTask:
		if t, ok := models.FindTask(c.Tasks, id); ok {
			return t, true
		}
	case models.KindProgress:
		if p, ok := models.FindProgress(c.Progress, id); ok {
			return p, true
		}
	}
	return nil, false
}

// FindByName returns the first goal of kind with the given name, ignoring case.
func (s *Store) FindByName(kind models.Kind, name string) (models.Goal, bool) {
	c := s.Collections()
	switch kind {
	case models.KindHabit:
		if h, ok := models.FindHabitByName(c.Habits, name); ok {
			return h, true
		}
	case models.KindTask:
		if t, ok := models.FindTaskByName(c.Tasks, name); ok {
			return t, true
		}
	case models.KindProgress:
		if p, ok := models.FindProgressByName(c.Progress, name); ok {
			return p, true
		}
	}
	return nil, false
}

// minIDPrefix is the shortest id prefix Resolve accepts.
const minIDPrefix = 4

// Resolve finds a goal by id, by name when exactly one goal has it, or by a
// unique id prefix as printed in listings.
func (s *Store) Resolve(kind models.Kind, ref string) (models.Goal, error) {
	if g, ok := s.Find(kind, ref); ok {
		return g, nil
	}
	ref = strings.TrimSpace(ref)
	var match models.Goal
	n := 0
	for _, g := range s.Collections().Goals(kind) {
		if strings.EqualFold(g.Info().Name, ref) {
			match = g
			n++
		}
	}
	if n == 0 && len(ref) >= minIDPrefix {
		for _, g := range s.Collections().Goals(kind) {
			if strings.HasPrefix(g.Info().ID, ref) {
				match = g
				n++
			}
		}
	}
	switch n {
	case 0:
		return nil, notFound(kind, ref)
	case 1:
		return match, nil
	default:
		return nil, fmt.Errorf("%w: %d %s goals match %q, use the full id", ErrAmbiguous, n, kind, ref)
	}
}

// HabitMonth reports completion of one habit for a month.
func (s *Store) HabitMonth(id string, ym datekey.YearMonth) (stats.MonthStats, error) {
	h, ok := models.FindHabit(s.Habits(), id)
	if !ok {
		return stats.MonthStats{}, notFound(models.KindHabit, id)
	}
	return stats.HabitMonth(h, ym), nil
}

// Dashboard summarizes every collection for a month.
func (s *Store) Dashboard(ym datekey.YearMonth) stats.Summary {
	return stats.Dashboard(s.Collections(), ym)
}

func notFound(kind models.Kind, ref string) error {
	return fmt.Errorf("%w: no %s %q", ErrNotFound, kind, ref)
}
