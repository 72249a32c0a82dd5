package system

import (
	"fmt"
	"os"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
)

type InitCmd struct {
	Force bool `help:"Delete an existing data file before initialization (file and sqlite backends)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Provider.Init(ctx.Ctx); err != nil {
		return err
	}
	ctx.Printf("Initialized growth storage at: %s\n", ctx.Provider.Describe())
	return nil
}

func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	switch ctx.Config.Backend {
	case constants.BackendFile, constants.BackendSQLite:
	default:
		return fmt.Errorf("--force is only supported for the file and sqlite backends")
	}

	path := ctx.Config.Path
	if _, err := os.Stat(path); err == nil {
		// Close first to prevent file locking issues
		if err := ctx.Provider.Close(); err != nil {
			return fmt.Errorf("failed to close existing storage: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing storage: %w", err)
		}
		ctx.Printf("Deleted existing storage at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing storage: %w", err)
	}
	return nil
}
