package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no value is stored under the key
	ErrNotFound = errors.New("key not found")
	// ErrNotInitialized is returned when the backing store has not been created yet
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrClosed is returned after Close
	ErrClosed = errors.New("storage closed")
	// ErrEmbeddedCredentials is returned for connection strings carrying a password
	ErrEmbeddedCredentials = errors.New("connection string must not contain a password")
)

// Provider is a string key-value store. Values are whole collection
// snapshots; the store never interprets them.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Open(ctx context.Context) error
	Close() error

	// Get returns ErrNotFound when the key has no value.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error

	// Describe returns a non-sensitive identifier for messages.
	Describe() string
}

// Pinger is implemented by providers that can check connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Versioned is implemented by SQL providers with a migrated schema.
type Versioned interface {
	// SchemaVersion returns the applied and the latest known schema version.
	SchemaVersion(ctx context.Context) (current, latest int, err error)
}
