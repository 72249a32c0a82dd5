package tasks

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

func TestTaskWorkflow(t *testing.T) {
	ctx, out := setupTestContext(t)

	for _, name := range []string{"Pay bills", "Call mom", "Renew passport"} {
		if err := (&TaskAddCmd{Name: name}).Run(ctx); err != nil {
			t.Fatalf("add %q failed: %v", name, err)
		}
	}
	if err := (&TaskAddCmd{Name: "   "}).Run(ctx); err == nil {
		t.Error("expected error when the name prompt is unavailable")
	}
	if len(ctx.Store.Tasks()) != 3 {
		t.Fatalf("blank add created a task: %d tasks", len(ctx.Store.Tasks()))
	}

	if err := (&TaskToggleCmd{Task: "call mom"}).Run(ctx); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "Completed task: Call mom") {
		t.Errorf("toggle output = %q", out.String())
	}

	out.Reset()
	if err := (&TaskListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Tasks (1/3 done, 33%):") {
		t.Errorf("list summary missing:\n%s", got)
	}
	if !strings.Contains(got, "[x]") || strings.Count(got, "[ ]") != 2 {
		t.Errorf("list marks wrong:\n%s", got)
	}

	out.Reset()
	if err := (&TaskListCmd{Pending: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "Call mom") {
		t.Errorf("--pending should hide completed tasks:\n%s", out.String())
	}

	out.Reset()
	if err := (&TaskToggleCmd{Task: "Call mom"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Reopened task: Call mom") {
		t.Errorf("second toggle output = %q", out.String())
	}
}

func TestTaskListEmpty(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&TaskListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No tasks found") {
		t.Errorf("output = %q", out.String())
	}
}

func TestTaskEditAndDelete(t *testing.T) {
	ctx, _ := setupTestContext(t)
	task, err := ctx.Store.AddTask("Draft report", "")
	if err != nil {
		t.Fatal(err)
	}

	name := "Send report"
	if err := (&TaskEditCmd{Task: task.ID[:8], EditFlags: cli.EditFlags{Name: &name}}).Run(ctx); err != nil {
		t.Fatalf("edit by id prefix failed: %v", err)
	}
	if got := ctx.Store.Tasks()[0].Name; got != name {
		t.Errorf("name = %q", got)
	}

	ctx.Confirm = func(string, string) (bool, error) { return false, nil }
	if err := (&TaskDeleteCmd{Task: name}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Store.Tasks()) != 1 {
		t.Fatal("declined delete removed the task")
	}
	if err := (&TaskDeleteCmd{Task: name, Yes: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Store.Tasks()) != 0 {
		t.Error("task not deleted")
	}
}
