// Package stats derives calendar views and summary numbers from goal
// collections. Nothing here is stored; every function is a pure query.
package stats

import (
	"math"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/datekey"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
)

// MonthStats counts the days of a month a habit was completed.
type MonthStats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Percent returns the completion rate rounded to a whole percent.
func (m MonthStats) Percent() int {
	if m.Total == 0 {
		return 0
	}
	return int(math.Round(float64(m.Completed) / float64(m.Total) * 100))
}

// HabitMonth counts completed days of ym. Keys outside the month are ignored.
func HabitMonth(h models.Habit, ym datekey.YearMonth) MonthStats {
	keys := ym.Keys()
	completed := 0
	for _, key := range keys {
		if h.CompletedDates.Has(key) {
			completed++
		}
	}
	return MonthStats{Completed: completed, Total: len(keys)}
}

// TaskSummary counts completed tasks.
type TaskSummary struct {
	Completed int `json:"completedCount"`
	Total     int `json:"total"`
}

// Percent returns the share of completed tasks, 0 for an empty list.
func (s TaskSummary) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
}

// Tasks summarizes task completion.
func Tasks(tasks []models.Task) TaskSummary {
	s := TaskSummary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	return s
}

// ProgressPercent returns current/target*100 without clamping.
func ProgressPercent(g models.ProgressGoal) float64 {
	return g.Current / g.Target * 100
}

// ProgressBar returns the rounded percentage clamped to [0, 100] for
// drawing a bar. Aggregates use ProgressPercent instead.
func ProgressBar(g models.ProgressGoal) int {
	p := math.Round(ProgressPercent(g))
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return int(math.Min(p, 100))
}

// DashboardAverage is the rounded mean of the unclamped percentages. Goals
// whose percentage is not finite are left out. The result is 0 when
// nothing is left.
func DashboardAverage(list []models.ProgressGoal) int {
	var sum float64
	n := 0
	for _, g := range list {
		p := ProgressPercent(g)
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}
		sum += p
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

// Summary is the dashboard view of all three collections for one month.
type Summary struct {
	Month            datekey.YearMonth
	HabitCount       int
	HabitCompletions int
	Tasks            TaskSummary
	ProgressCount    int
	ProgressAverage  int
}

// Dashboard builds the summary for ym.
func Dashboard(c models.Collections, ym datekey.YearMonth) Summary {
	s := Summary{
		Month:           ym,
		HabitCount:      len(c.Habits),
		Tasks:           Tasks(c.Tasks),
		ProgressCount:   len(c.Progress),
		ProgressAverage: DashboardAverage(c.Progress),
	}
	for _, h := range c.Habits {
		s.HabitCompletions += HabitMonth(h, ym).Completed
	}
	return s
}

// Streak counts consecutive completed days ending on today. If today is not
// completed yet the count ends on yesterday, so an unfinished day does not
// break a running streak.
func Streak(h models.Habit, today time.Time) int {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if !h.Done(day) {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for h.Done(day) {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}
