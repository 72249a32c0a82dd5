package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/logger"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v (%s)", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint returns a short remedy for well-known errors, or "".
func Hint(err error) string {
	switch {
	case stderrors.Is(err, storage.ErrNotInitialized):
		return "run 'growth init' first"
	case stderrors.Is(err, models.ErrEmptyName):
		return "names must contain at least one non-space character"
	case stderrors.Is(err, models.ErrUnknownKind):
		return "use habit, task or progress"
	case stderrors.Is(err, storage.ErrEmbeddedCredentials):
		return "store the password with 'growth secret set' instead"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
