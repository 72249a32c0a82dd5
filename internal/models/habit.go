package models

import (
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/datekey"
)

// Habit is a goal tracked by daily completion across a calendar
type Habit struct {
	Meta
	CompletedDates DateSet `json:"completedDates"`
}

func (h Habit) Info() Meta { return h.Meta }
func (Habit) Kind() Kind   { return KindHabit }
func (Habit) sealed()      {}

// Done reports whether the habit was completed on the given day.
func (h Habit) Done(day time.Time) bool {
	return h.CompletedDates.Has(datekey.Key(day))
}

// NewHabit creates a habit with no completed days.
func NewHabit(name, description string) (Habit, error) {
	meta, err := newMeta(name, description)
	if err != nil {
		return Habit{}, err
	}
	return Habit{Meta: meta, CompletedDates: DateSet{}}, nil
}

// ToggleHabitDay completes the habit on date, or un-completes it if it was
// already completed. Unknown ids leave habits unchanged.
func ToggleHabitDay(habits []Habit, habitID string, date time.Time) ([]Habit, bool) {
	key := datekey.Key(date)
	return replaceByID(habits, habitID, func(h Habit) Habit {
		h.CompletedDates = h.CompletedDates.Toggle(key)
		return h
	})
}

// EditHabit applies the descriptive fields of e.
func EditHabit(habits []Habit, id string, e Edit) ([]Habit, bool) {
	return replaceByID(habits, id, func(h Habit) Habit {
		h.Meta = h.Meta.apply(e)
		return h
	})
}

// DeleteHabit removes the habit with the given id.
func DeleteHabit(habits []Habit, id string) ([]Habit, bool) {
	return removeByID(habits, id)
}

// FindHabit looks a habit up by id.
func FindHabit(habits []Habit, id string) (Habit, bool) {
	return findByID(habits, id)
}

// FindHabitByName looks a habit up by case-insensitive name.
func FindHabitByName(habits []Habit, name string) (Habit, bool) {
	return findByName(habits, name)
}
