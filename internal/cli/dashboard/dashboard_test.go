package dashboard

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/config"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
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
	if err := ctx.Open(); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	return ctx, out
}

func TestDashboard(t *testing.T) {
	ctx, out := setupTestContext(t)
	s := ctx.Store

	h, err := s.AddHabit("Read", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, day := range []time.Time{
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.March, 2, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.February, 28, 0, 0, 0, 0, time.Local),
	} {
		if _, err := s.ToggleHabitDay(h.ID, day); err != nil {
			t.Fatal(err)
		}
	}
	task, err := s.AddTask("Pay bills", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleTask(task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddTask("Call mom", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddProgress("Run", "", "25", "50", "km"); err != nil {
		t.Fatal(err)
	}

	if err := (&DashboardCmd{}).Run(ctx); err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"March 2024", "2 check-ins this month", "1/2", "50% complete", "average of 1 goals"} {
		if !strings.Contains(got, want) {
			t.Errorf("dashboard missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	if err := (&DashboardCmd{Month: "prev"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 check-ins this month") {
		t.Errorf("February dashboard:\n%s", out.String())
	}

	if err := (&DashboardCmd{Month: "bogus"}).Run(ctx); err == nil {
		t.Error("expected error for bad month")
	}
}
