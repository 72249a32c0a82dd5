package snapshot

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/stats"
)

func meta(id, name string) models.Meta {
	return models.Meta{
		ID:          id,
		Name:        name,
		Description: "desc " + name,
		CreatedAt:   time.Date(2024, time.March, 1, 8, 30, 0, 123000000, time.UTC),
	}
}

func TestHabitsRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		habits []models.Habit
	}{
		{"empty collection", []models.Habit{}},
		{"empty completion set", []models.Habit{{Meta: meta("h1", "Read"), CompletedDates: models.DateSet{}}}},
		{"several habits", []models.Habit{
			{Meta: meta("h1", "Read"), CompletedDates: models.NewDateSet("2024-03-05", "2024-02-29")},
			{Meta: meta("h2", "Run"), CompletedDates: models.NewDateSet("1999-12-31")},
			{Meta: meta("h3", "Read"), CompletedDates: models.DateSet{}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := EncodeHabits(tt.habits)
			if err != nil {
				t.Fatalf("EncodeHabits() error = %v", err)
			}
			got, err := DecodeHabits(raw)
			if err != nil {
				t.Fatalf("DecodeHabits() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.habits) {
				t.Errorf("round trip = %+v, want %+v", got, tt.habits)
			}
		})
	}
}

func TestTasksAndProgressRoundTrip(t *testing.T) {
	tasks := []models.Task{
		{Meta: meta("t1", "Pay bills"), Completed: true},
		{Meta: meta("t2", "Call mom")},
	}
	raw, err := EncodeTasks(tasks)
	if err != nil {
		t.Fatalf("EncodeTasks() error = %v", err)
	}
	gotTasks, err := DecodeTasks(raw)
	if err != nil {
		t.Fatalf("DecodeTasks() error = %v", err)
	}
	if !reflect.DeepEqual(gotTasks, tasks) {
		t.Errorf("tasks round trip = %+v", gotTasks)
	}

	progress := []models.ProgressGoal{
		{Meta: meta("p1", "Run"), Current: 12.5, Target: 50, Unit: "km"},
		{Meta: meta("p2", "Save"), Current: 150, Target: 100},
	}
	raw, err = EncodeProgress(progress)
	if err != nil {
		t.Fatalf("EncodeProgress() error = %v", err)
	}
	gotProgress, err := DecodeProgress(raw)
	if err != nil {
		t.Fatalf("DecodeProgress() error = %v", err)
	}
	if !reflect.DeepEqual(gotProgress, progress) {
		t.Errorf("progress round trip = %+v", gotProgress)
	}
}

func TestEncodeNilIsEmptyArray(t *testing.T) {
	raw, err := EncodeTasks(nil)
	if err != nil {
		t.Fatalf("EncodeTasks(nil) error = %v", err)
	}
	if raw != "[]" {
		t.Errorf("EncodeTasks(nil) = %q, want []", raw)
	}
}

func TestDecodeBrowserFormat(t *testing.T) {
	// Shape written by the original browser build.
	raw := `[{"id":"1709300000000_abc123def","name":"Read","description":"",` +
		`"completedDates":{"2024-03-05":true},"createdAt":"2024-03-01T08:30:00.000Z"}]`

	habits, err := DecodeHabits(raw)
	if err != nil {
		t.Fatalf("DecodeHabits() error = %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("len = %d, want 1", len(habits))
	}
	h := habits[0]
	if h.ID != "1709300000000_abc123def" || h.Name != "Read" {
		t.Errorf("decoded habit = %+v", h)
	}
	if !h.CompletedDates.Has("2024-03-05") {
		t.Error("completed date lost")
	}
	if !h.CreatedAt.Equal(time.Date(2024, time.March, 1, 8, 30, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", h.CreatedAt)
	}
}

func TestDecodeHabitsWithoutCompletedDates(t *testing.T) {
	habits, err := DecodeHabits(`[{"id":"h1","name":"Read"}]`)
	if err != nil {
		t.Fatalf("DecodeHabits() error = %v", err)
	}
	if habits[0].CompletedDates == nil {
		t.Error("missing completedDates should decode as an empty set")
	}
}

func TestDecodeEdgeCases(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "[]"} {
		got, err := DecodeTasks(raw)
		if err != nil {
			t.Errorf("DecodeTasks(%q) error = %v", raw, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("DecodeTasks(%q) = %#v, want empty slice", raw, got)
		}
	}

	if _, err := DecodeProgress(`{"not":"an array"}`); err == nil {
		t.Error("DecodeProgress() should reject an object")
	} else if !strings.Contains(err.Error(), "progress") {
		t.Errorf("error %q should name the collection", err)
	}
}

func TestDecodeProgressNonPositiveTarget(t *testing.T) {
	raw := `[{"id":"a","name":"Zero","current":5,"target":0},` +
		`{"id":"b","name":"Negative","current":1,"target":-4},` +
		`{"id":"c","name":"Run","current":50,"target":100}]`
	got, err := DecodeProgress(raw)
	if err != nil {
		t.Fatalf("DecodeProgress() error = %v", err)
	}
	want := []float64{constants.DefaultProgressTarget, constants.DefaultProgressTarget, 100}
	for i, p := range got {
		if p.Target != want[i] {
			t.Errorf("%s target = %v, want %v", p.Name, p.Target, want[i])
		}
	}
	if got[0].Current != 5 {
		t.Errorf("current changed to %v", got[0].Current)
	}
	if avg := stats.DashboardAverage(got[:1]); avg != 5 {
		t.Errorf("DashboardAverage() = %d, want 5", avg)
	}
	if avg := stats.DashboardAverage([]models.ProgressGoal{got[0], got[2]}); avg != 28 {
		t.Errorf("DashboardAverage() = %d, want 28", avg)
	}
}

func TestKeys(t *testing.T) {
	for _, kind := range models.Kinds {
		key, err := Key(kind)
		if err != nil {
			t.Fatalf("Key(%v) error = %v", kind, err)
		}
		back, err := KindOf(key)
		if err != nil || back != kind {
			t.Errorf("KindOf(Key(%v)) = %v, %v", kind, back, err)
		}
	}
	if key, _ := Key(models.KindHabit); key != constants.KeyHabits {
		t.Errorf("Key(habit) = %q", key)
	}
	if _, err := KindOf("goals_other"); !errors.Is(err, models.ErrUnknownKind) {
		t.Errorf("KindOf(unknown) error = %v", err)
	}
}

func TestEncodeDecodeInto(t *testing.T) {
	src := models.Collections{
		Habits:   []models.Habit{{Meta: meta("h1", "Read"), CompletedDates: models.NewDateSet("2024-03-05")}},
		Tasks:    []models.Task{{Meta: meta("t1", "Pay bills")}},
		Progress: []models.ProgressGoal{{Meta: meta("p1", "Run"), Target: 10}},
	}

	var dst models.Collections
	for _, kind := range models.Kinds {
		raw, err := Encode(kind, src)
		if err != nil {
			t.Fatalf("Encode(%v) error = %v", kind, err)
		}
		if err := DecodeInto(kind, raw, &dst); err != nil {
			t.Fatalf("DecodeInto(%v) error = %v", kind, err)
		}
	}
	if !reflect.DeepEqual(dst, src) {
		t.Errorf("collections round trip = %+v, want %+v", dst, src)
	}
}
