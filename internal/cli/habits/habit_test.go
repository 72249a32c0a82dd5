package habits

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/config"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/datekey"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage/memory"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{Backend: constants.BackendMemory, Dir: t.TempDir()}
	ctx := cli.New(context.Background(), cfg, memory.New())
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.Now = func() time.Time { return time.Date(2024, time.March, 5, 9, 0, 0, 0, time.Local) }
	ctx.Confirm = func(string, string) (bool, error) { return true, nil }
	ctx.Form = func(models.Kind, *models.Draft) error { return errors.New("no terminal in tests") }
	if err := ctx.Open(); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	return ctx, out
}

func TestHabitAddPromptsForName(t *testing.T) {
	ctx, out := setupTestContext(t)
	var asked []models.Kind
	ctx.Form = func(kind models.Kind, d *models.Draft) error {
		asked = append(asked, kind)
		d.Name = "Meditate"
		d.Description = "10 minutes"
		return nil
	}

	if err := (&HabitAddCmd{}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(asked) != 1 || asked[0] != models.KindHabit {
		t.Errorf("form calls = %v", asked)
	}
	habits := ctx.Store.Habits()
	if len(habits) != 1 || habits[0].Name != "Meditate" || habits[0].Description != "10 minutes" {
		t.Fatalf("habits = %+v", habits)
	}

	out.Reset()
	if err := (&HabitAddCmd{Name: "meditate"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(asked) != 1 {
		t.Error("a given name must not open the form")
	}
	if !strings.Contains(out.String(), `a habit named "Meditate" already exists`) {
		t.Errorf("duplicate add output = %q", out.String())
	}
	if len(ctx.Store.Habits()) != 2 {
		t.Error("duplicate names are allowed")
	}
}

func TestHabitWorkflow(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&HabitAddCmd{Name: "Read", Description: "20 pages"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Added habit: Read") {
		t.Errorf("add output = %q", out.String())
	}

	for _, date := range []string{"", "2024-03-04", "2024-03-03"} {
		if err := (&HabitToggleCmd{Habit: "read", Date: date}).Run(ctx); err != nil {
			t.Fatalf("toggle %q failed: %v", date, err)
		}
	}
	h := ctx.Store.Habits()[0]
	for _, key := range []string{"2024-03-05", "2024-03-04", "2024-03-03"} {
		if !h.CompletedDates.Has(key) {
			t.Errorf("expected %s to be completed", key)
		}
	}

	out.Reset()
	if err := (&HabitToggleCmd{Habit: "Read", Date: "2024-03-03"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `Unmarked habit "Read" for 2024-03-03`) {
		t.Errorf("toggle output = %q", out.String())
	}

	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Habits for March 2024", "Read", " 2/31", "streak 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	if err := (&HabitListCmd{Month: "prev"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), " 0/29") {
		t.Errorf("February 2024 should have 29 days:\n%s", out.String())
	}
}

func TestHabitToggleErrors(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&HabitToggleCmd{Habit: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit")
	}
	if _, err := ctx.Store.AddHabit("Run", ""); err != nil {
		t.Fatal(err)
	}
	if err := (&HabitToggleCmd{Habit: "Run", Date: "05/03/2024"}).Run(ctx); err == nil {
		t.Error("expected error for malformed date")
	}
	if err := (&HabitListCmd{Month: "2024"}).Run(ctx); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestHabitEditAndDelete(t *testing.T) {
	ctx, out := setupTestContext(t)
	h, err := ctx.Store.AddHabit("Meditate", "")
	if err != nil {
		t.Fatal(err)
	}

	desc := "10 minutes"
	if err := (&HabitEditCmd{Habit: h.ID, EditFlags: cli.EditFlags{Description: &desc}}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if got := ctx.Store.Habits()[0]; got.Description != desc || got.Name != "Meditate" {
		t.Errorf("habit after edit = %+v", got)
	}

	if err := (&HabitDeleteCmd{Habit: "Meditate", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(ctx.Store.Habits()) != 0 {
		t.Error("habit not deleted")
	}
	if !strings.Contains(out.String(), "Deleted habit: Meditate") {
		t.Errorf("delete output = %q", out.String())
	}
}

func TestCalendar(t *testing.T) {
	h := models.Habit{Meta: models.Meta{ID: "h1", Name: "Read"}, CompletedDates: models.NewDateSet("2024-02-01", "2024-02-29")}
	ym := datekey.YearMonth{Year: 2024, Month: time.February}

	cal := Calendar(h, ym, "2024-02-10")
	lines := strings.Split(strings.TrimRight(cal, "\n"), "\n")
	if !strings.Contains(lines[0], "February 2024") {
		t.Errorf("header = %q", lines[0])
	}
	// February 2024 starts on a Thursday and spans five weeks.
	if len(lines) != 2+5 {
		t.Fatalf("calendar has %d lines:\n%s", len(lines), cal)
	}
	if !strings.HasPrefix(lines[2], strings.Repeat(" ", 16)) {
		t.Errorf("first week should be padded to Thursday: %q", lines[2])
	}
	if strings.Count(cal, "✓") != 2 {
		t.Errorf("expected two completed days:\n%s", cal)
	}
	if !strings.Contains(cal, "29✓") {
		t.Errorf("leap day should be marked:\n%s", cal)
	}

	// Highlighting today restyles the cell but keeps its completion mark.
	onToday := Calendar(h, ym, "2024-02-29")
	if !strings.Contains(onToday, "29✓") || strings.Count(onToday, "✓") != 2 {
		t.Errorf("today's completed cell lost its mark:\n%s", onToday)
	}
}

func TestHabitShow(t *testing.T) {
	ctx, out := setupTestContext(t)
	h, err := ctx.Store.AddHabit("Stretch", "morning")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Store.ToggleHabitDay(h.ID, ctx.Now()); err != nil {
		t.Fatal(err)
	}
	if err := (&HabitShowCmd{Habit: "Stretch"}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Stretch", "morning", "March 2024", "1/31 days (3%)", "streak 1"} {
		if !strings.Contains(got, want) {
			t.Errorf("show output missing %q:\n%s", want, got)
		}
	}
}
