// Package redis stores snapshots as plain string keys in a Redis database.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage"
)

// markerKey records that Init ran against this database and prefix.
const markerKey = "initialized"

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type Store struct {
	cfg Config
	rdb *redis.Client
}

var (
	_ storage.Provider = (*Store)(nil)
	_ storage.Pinger   = (*Store)(nil)
)

func New(cfg Config) *Store {
	if cfg.Addr == "" {
		cfg.Addr = constants.DefaultRedisAddr
	}
	if cfg.Prefix == "" {
		cfg.Prefix = constants.DefaultRedisPrefix
	}
	return &Store{cfg: cfg}
}

func (s *Store) key(k string) string {
	return s.cfg.Prefix + k
}

func (s *Store) connect(ctx context.Context) error {
	if s.rdb != nil {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     s.cfg.Addr,
		Password: s.cfg.Password,
		DB:       s.cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", s.cfg.Addr, err)
	}
	s.rdb = rdb
	return nil
}

func (s *Store) Init(ctx context.Context) error {
	if err := s.connect(ctx); err != nil {
		return err
	}
	if err := s.rdb.SetNX(ctx, s.key(markerKey), constants.Version, 0).Err(); err != nil {
		return fmt.Errorf("failed to initialize redis storage: %w", err)
	}
	return nil
}

func (s *Store) Open(ctx context.Context) error {
	if err := s.connect(ctx); err != nil {
		return err
	}
	n, err := s.rdb.Exists(ctx, s.key(markerKey)).Result()
	if err != nil {
		return fmt.Errorf("failed to inspect redis storage: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no %s keys at %s", storage.ErrNotInitialized, constants.AppName, s.Describe())
	}
	return nil
}

func (s *Store) Close() error {
	if s.rdb == nil {
		return nil
	}
	err := s.rdb.Close()
	s.rdb = nil
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if s.rdb == nil {
		return "", storage.ErrClosed
	}
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.rdb == nil {
		return storage.ErrClosed
	}
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.rdb == nil {
		return storage.ErrClosed
	}
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Describe() string {
	return fmt.Sprintf("redis://%s/%d (prefix %q)", s.cfg.Addr, s.cfg.DB, s.cfg.Prefix)
}
