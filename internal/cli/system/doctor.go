package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/keyring"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/snapshot"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/validation"
)

// DoctorCmd opens storage itself so that it can report why opening fails.
type DoctorCmd struct{}

type check struct {
	name string
	// needsStorage checks are skipped when storage is unreachable.
	needsStorage bool
	// warnOnly failures do not fail the command.
	warnOnly bool
	run      func(ctx *cli.Context, c *models.Collections) error
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", needsStorage: true, run: checkSchemaVersion},
	{name: "Collections readable", needsStorage: true, run: checkCollections},
	{name: "Data validation", needsStorage: true, run: checkValidation},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Printf("Backend: %s (%s)\n\n", ctx.Config.Backend, ctx.Provider.Describe())

	hasError := false
	reachable := false
	var collections models.Collections

	for i, chk := range checks {
		if chk.needsStorage && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", chk.name)
			continue
		}
		err := chk.run(ctx, &collections)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", chk.name)
			if i == 0 {
				reachable = true
			}
		case chk.warnOnly:
			ctx.Printf("⚠ %s: %s\n", chk.name, cli.WarningStyle.Render("WARNING"))
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: %s\n", chk.name, cli.DangerStyle.Render("FAIL"))
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context, _ *models.Collections) error {
	if err := ctx.Provider.Open(ctx.Ctx); err != nil {
		return err
	}
	if p, ok := ctx.Provider.(storage.Pinger); ok {
		if err := p.Ping(ctx.Ctx); err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context, _ *models.Collections) error {
	v, ok := ctx.Provider.(storage.Versioned)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersion(ctx.Ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkCollections reads every collection and keeps what decodes for the
// validation check.
func checkCollections(ctx *cli.Context, c *models.Collections) error {
	var errs []error
	for _, key := range constants.CollectionKeys {
		raw, err := ctx.Provider.Get(ctx.Ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		kind, err := snapshot.KindOf(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := snapshot.DecodeInto(kind, raw, c); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func checkValidation(ctx *cli.Context, c *models.Collections) error {
	result := validation.New().Validate(*c)
	if result.HasErrors() {
		return fmt.Errorf("found conflicts, run 'growth validate --fix':\n%s", result.FormatReport())
	}
	if result.HasConflicts() {
		ctx.Println(result.FormatReport())
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context, _ *models.Collections) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'growth backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context, _ *models.Collections) error {
	switch ctx.Config.Backend {
	case constants.BackendPostgres, constants.BackendRedis:
	default:
		return nil
	}
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; set the password through the environment instead")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context, _ *models.Collections) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
