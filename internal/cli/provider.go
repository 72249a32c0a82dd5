package cli

import (
	"fmt"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/config"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage/file"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage/memory"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage/postgres"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage/redis"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage/sqlite"
)

// NewProvider builds the storage backend selected by cfg. It does not
// connect; call Init or Open on the result.
func NewProvider(cfg *config.Config) (storage.Provider, error) {
	switch cfg.Backend {
	case constants.BackendFile:
		return file.New(cfg.Path), nil
	case constants.BackendSQLite:
		return sqlite.NewStore(cfg.Path), nil
	case constants.BackendPostgres:
		return postgres.New(cfg.Postgres.DSN, cfg.Postgres.Password), nil
	case constants.BackendRedis:
		return redis.New(redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}), nil
	case constants.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
