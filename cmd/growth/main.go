package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli/backups"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli/dashboard"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli/habits"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli/progress"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli/system"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli/tasks"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/config"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/errors"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config}"`
	Backend string `help:"Storage backend (file, sqlite, postgres, redis, memory). Overrides the config file."`
	Path    string `help:"Data file for the file and sqlite backends. Overrides the config file." type:"path"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init      system.InitCmd         `cmd:"" help:"Initialize growth storage."`
	Dashboard dashboard.DashboardCmd `cmd:"" help:"Show the monthly overview." default:"1"`
	Habit     habits.HabitCmd        `cmd:"" help:"Manage habits and daily check-ins."`
	Task      tasks.TaskCmd          `cmd:"" help:"Manage one-off tasks."`
	Progress  progress.ProgressCmd   `cmd:"" help:"Manage numeric progress goals."`
	Validate  system.ValidateCmd     `cmd:"" help:"Check goals for conflicts."`
	Doctor    system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Backup    backups.BackupCmd      `cmd:"" help:"Manage backups."`
	Secret    system.SecretCmd       `cmd:"" help:"Manage backend passwords in the OS keyring."`
}

// Commands that manage storage themselves instead of using the goal store.
var noStoreCommands = []string{"init", "doctor", "secret"}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track habits, tasks and progress goals"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  config.DefaultPath(),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if err := cfg.Override(constants.Backend(CLI.Backend), CLI.Path, CLI.Debug); err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.LogDir, Level: cfg.LogLevel}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	cfg.ResolveSecrets()

	provider, err := cli.NewProvider(cfg)
	if err != nil {
		errors.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	appCtx := cli.New(ctx, cfg, provider)

	if needsStore(kctx.Command()) {
		if err := appCtx.Open(); err != nil {
			provider.Close()
			errors.Fatal(err)
		}
	}

	runErr := kctx.Run(appCtx)
	if err := appCtx.Close(); err != nil {
		logger.Warn("Failed to close storage", "error", err)
	}
	if runErr != nil {
		logger.Error("Command execution failed", "command", kctx.Command(), "error", runErr)
		fmt.Fprintln(os.Stderr, errors.Format(runErr))
		os.Exit(1)
	}
}

func needsStore(command string) bool {
	for _, name := range noStoreCommands {
		if command == name || strings.HasPrefix(command, name+" ") {
			return false
		}
	}
	return true
}
