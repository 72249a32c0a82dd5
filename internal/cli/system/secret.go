package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/keyring"
)

// SecretCmd manages backend passwords in the OS keyring.
type SecretCmd struct {
	Set    SecretSetCmd    `cmd:"" help:"Store a backend password in the OS keyring."`
	Delete SecretDeleteCmd `cmd:"" help:"Remove a backend password from the OS keyring."`
	Status SecretStatusCmd `cmd:"" help:"Check the OS keyring and stored passwords."`
}

// secretBackends are the backends that take a password.
var secretBackends = []constants.Backend{constants.BackendPostgres, constants.BackendRedis}

type SecretSetCmd struct {
	Backend  string `arg:"" enum:"postgres,redis" help:"Backend the password belongs to (postgres, redis)."`
	Password string `help:"Password to store. Prompted for when omitted."`
}

func (cmd *SecretSetCmd) Run(ctx *cli.Context) error {
	password := cmd.Password
	if password == "" {
		err := huh.NewInput().
			Title(fmt.Sprintf("%s password", cmd.Backend)).
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Run()
		if err != nil {
			return err
		}
	}

	if err := keyring.SetSecret(constants.Backend(cmd.Backend), password); err != nil {
		return err
	}
	ctx.Printf("✓ %s password stored in OS keyring\n", cmd.Backend)
	return nil
}

type SecretDeleteCmd struct {
	Backend string `arg:"" enum:"postgres,redis" help:"Backend the password belongs to (postgres, redis)."`
}

func (cmd *SecretDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteSecret(constants.Backend(cmd.Backend))
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("no %s password found in keyring", cmd.Backend)
	}
	if err != nil {
		return err
	}
	ctx.Printf("✓ %s password deleted from OS keyring\n", cmd.Backend)
	return nil
}

type SecretStatusCmd struct{}

func (cmd *SecretStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	ctx.Println("✓ OS keyring is available")

	for _, backend := range secretBackends {
		_, err := keyring.GetSecret(backend)
		switch {
		case err == nil:
			ctx.Printf("✓ %s password is stored\n", backend)
		case errors.Is(err, keyring.ErrNotFound):
			ctx.Printf("ℹ No %s password stored\n", backend)
		default:
			ctx.Printf("❌ %s: %v\n", backend, err)
		}
	}
	return nil
}
