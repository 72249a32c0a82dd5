package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage"
)

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not initialized", storage.ErrNotInitialized, "run 'growth init' first"},
		{"empty name", fmt.Errorf("failed to add habit: %w", models.ErrEmptyName), "names must contain at least one non-space character"},
		{"unknown kind", fmt.Errorf("%w: goal", models.ErrUnknownKind), "use habit, task or progress"},
		{"password in dsn", storage.ErrEmbeddedCredentials, "store the password with 'growth secret set' instead"},
		{"unrelated", errors.New("disk full"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hint(tt.err); got != tt.want {
				t.Errorf("Hint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"no hint", errors.New("disk full"), "Error: disk full"},
		{
			"wrapped sentinel keeps context",
			fmt.Errorf("open data file: %w", storage.ErrNotInitialized),
			"Error: open data file: storage not initialized (run 'growth init' first)",
		},
		{
			"unknown kind",
			fmt.Errorf("%w: goal", models.ErrUnknownKind),
			"Error: unknown goal kind: goal (use habit, task or progress)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Fatal exits the process, so it runs in a child test binary.
func TestFatal(t *testing.T) {
	switch os.Getenv("GROWTH_FATAL_CASE") {
	case "hinted":
		Fatal(fmt.Errorf("connect: %w", storage.ErrEmbeddedCredentials))
		return
	case "nil":
		Fatal(nil)
		os.Exit(0)
	}

	run := func(c string) (int, string) {
		cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
		cmd.Env = append(os.Environ(), "GROWTH_FATAL_CASE="+c)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		err := cmd.Run()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), stderr.String()
		}
		if err != nil {
			t.Fatalf("running child: %v", err)
		}
		return 0, stderr.String()
	}

	code, stderr := run("hinted")
	if code != 1 {
		t.Errorf("Fatal(err) exit code = %d, want 1", code)
	}
	want := "Error: connect: connection string must not contain a password (store the password with 'growth secret set' instead)"
	if !strings.Contains(stderr, want) {
		t.Errorf("stderr = %q, want it to contain %q", stderr, want)
	}

	if code, _ := run("nil"); code != 0 {
		t.Errorf("Fatal(nil) exit code = %d, want 0", code)
	}
}
