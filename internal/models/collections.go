package models

// Collections groups the three top-level goal lists.
type Collections struct {
	Habits   []Habit
	Tasks    []Task
	Progress []ProgressGoal
}

// Len returns the total number of goals across all kinds.
func (c Collections) Len() int {
	return len(c.Habits) + len(c.Tasks) + len(c.Progress)
}

// Goals returns every goal of the given kind as the Goal variant.
func (c Collections) Goals(kind Kind) []Goal {
	var out []Goal
	switch kind {
	case KindHabit:
		for _, h := range c.Habits {
			out = append(out, h)
		}
	case KindTask:
		for _, t := range c.Tasks {
			out = append(out, t)
		}
	case KindProgress:
		for _, p := range c.Progress {
			out = append(out, p)
		}
	}
	return out
}
