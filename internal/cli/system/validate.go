package system

import (
	"fmt"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Repair what can be repaired automatically. A backup is taken first."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	ctx.Println("Validating goals...")
	result := validation.New().Validate(ctx.Store.Collections())

	ctx.Println()
	ctx.Println(result.FormatReport())

	if !cmd.Fix || !result.HasConflicts() {
		return nil
	}

	fixed, actions := validation.Repair(ctx.Store.Collections())
	if len(actions) == 0 {
		ctx.Println("\nNothing can be repaired automatically.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.Replace(fixed, models.Kinds...); err != nil {
		return fmt.Errorf("failed to apply repairs: %w", err)
	}

	ctx.Printf("\nApplied %d fix(es):\n", len(actions))
	for _, a := range actions {
		ctx.Printf("  - %s\n", a.Action)
	}
	return nil
}
