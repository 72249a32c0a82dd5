// Package snapshot encodes whole goal collections for the key-value store.
// Each collection is stored independently as a JSON array under its own key.
package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
)

// Key returns the storage key for a kind of goal.
func Key(kind models.Kind) (string, error) {
	switch kind {
	case models.KindHabit:
		return constants.KeyHabits, nil
	case models.KindTask:
		return constants.KeyTasks, nil
	case models.KindProgress:
		return constants.KeyProgress, nil
	default:
		return "", fmt.Errorf("%w: %v", models.ErrUnknownKind, kind)
	}
}

// KindOf is the inverse of Key.
func KindOf(key string) (models.Kind, error) {
	switch key {
	case constants.KeyHabits:
		return models.KindHabit, nil
	case constants.KeyTasks:
		return models.KindTask, nil
	case constants.KeyProgress:
		return models.KindProgress, nil
	default:
		return 0, fmt.Errorf("%w: no collection stored under %q", models.ErrUnknownKind, key)
	}
}

func encode[T any](list []T) (string, error) {
	if list == nil {
		list = []T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decode[T any](raw string) ([]T, error) {
	out := []T{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		// "null" decodes to a nil slice
		out = []T{}
	}
	return out, nil
}

// EncodeHabits serializes the habit collection.
func EncodeHabits(habits []models.Habit) (string, error) {
	s, err := encode(habits)
	if err != nil {
		return "", fmt.Errorf("failed to encode habits: %w", err)
	}
	return s, nil
}

// DecodeHabits parses a habit snapshot. Missing completion sets decode as
// empty sets.
func DecodeHabits(raw string) ([]models.Habit, error) {
	habits, err := decode[models.Habit](raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode habits: %w", err)
	}
	for i := range habits {
		if habits[i].CompletedDates == nil {
			habits[i].CompletedDates = models.DateSet{}
		}
	}
	return habits, nil
}

// EncodeTasks serializes the task collection.
func EncodeTasks(tasks []models.Task) (string, error) {
	s, err := encode(tasks)
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks: %w", err)
	}
	return s, nil
}

// DecodeTasks parses a task snapshot.
func DecodeTasks(raw string) ([]models.Task, error) {
	tasks, err := decode[models.Task](raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// EncodeProgress serializes the progress goal collection.
func EncodeProgress(list []models.ProgressGoal) (string, error) {
	s, err := encode(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode progress goals: %w", err)
	}
	return s, nil
}

// DecodeProgress parses a progress goal snapshot. Stored targets that are
// not positive fall back to the default target.
func DecodeProgress(raw string) ([]models.ProgressGoal, error) {
	list, err := decode[models.ProgressGoal](raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode progress goals: %w", err)
	}
	for i := range list {
		list[i] = list[i].WithValidTarget()
	}
	return list, nil
}

// Encode serializes the collection of the given kind out of c.
func Encode(kind models.Kind, c models.Collections) (string, error) {
	switch kind {
	case models.KindHabit:
		return EncodeHabits(c.Habits)
	case models.KindTask:
		return EncodeTasks(c.Tasks)
	case models.KindProgress:
		return EncodeProgress(c.Progress)
	default:
		return "", fmt.Errorf("%w: %v", models.ErrUnknownKind, kind)
	}
}

// DecodeInto parses raw as the given kind and stores it in c.
func DecodeInto(kind models.Kind, raw string, c *models.Collections) error {
	var err error
	switch kind {
	case models.KindHabit:
		c.Habits, err = DecodeHabits(raw)
	case models.KindTask:
		c.Tasks, err = DecodeTasks(raw)
	case models.KindProgress:
		c.Progress, err = DecodeProgress(raw)
	default:
		err = fmt.Errorf("%w: %v", models.ErrUnknownKind, kind)
	}
	return err
}
