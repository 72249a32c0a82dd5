package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored for a backend
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// user is the keyring account a backend's secret is stored under.
func user(backend constants.Backend) string {
	return string(backend) + "-" + constants.DefaultKeyringUser
}

// GetSecret retrieves the password for a storage backend from the OS keyring.
// Returns ErrNotFound if nothing is stored.
func GetSecret(backend constants.Backend) (string, error) {
	secret, err := keyring.Get(constants.AppName, user(backend))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// SetSecret stores the password for a storage backend in the OS keyring.
func SetSecret(backend constants.Backend, secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, user(backend), secret); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

// DeleteSecret removes the password for a storage backend from the OS keyring.
func DeleteSecret(backend constants.Backend) error {
	if err := keyring.Delete(constants.AppName, user(backend)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
