// Package config loads growth settings from defaults, an optional YAML file
// and GROWTH_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/keyring"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/logger"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage/postgres"
)

const maxConfigFileSize = 1024 * 1024

// ErrSecretInFile is returned when a config file carries a password.
var ErrSecretInFile = errors.New("passwords must not be stored in the config file")

type PostgresConfig struct {
	DSN      string `koanf:"dsn"`
	Password string `koanf:"password"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
	Password string `koanf:"password"`
}

type Config struct {
	Backend  constants.Backend `koanf:"backend"`
	Path     string            `koanf:"path"`
	Postgres PostgresConfig    `koanf:"postgres"`
	Redis    RedisConfig       `koanf:"redis"`
	Debug    bool              `koanf:"debug"`
	LogDir   string            `koanf:"log_dir"`
	LogLevel string            `koanf:"log_level"`

	// Dir holds backups and, by default, data and logs. It is the directory
	// of the config file.
	Dir string `koanf:"-"`

	defaultPath bool
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	dir := ExpandPath(constants.DefaultConfigDir)
	return &Config{
		Backend: constants.BackendFile,
		Redis: RedisConfig{
			Addr:   constants.DefaultRedisAddr,
			Prefix: constants.DefaultRedisPrefix,
		},
		Dir: dir,
	}
}

// DefaultPath is ~/.config/growth/config.yaml.
func DefaultPath() string {
	return filepath.Join(ExpandPath(constants.DefaultConfigDir), constants.DefaultConfigFile)
}

// Load reads the config file at path (the default path when empty) and
// applies environment overrides. A missing file is not an error. A .env
// file in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath()
	}
	path = ExpandPath(path)

	cfg := Default()
	cfg.Dir = filepath.Dir(path)

	k := koanf.New(".")
	content, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if k.String("postgres.password") != "" || k.String("redis.password") != "" {
			return nil, fmt.Errorf("%s: %w", path, ErrSecretInFile)
		}
		if dsn := k.String("postgres.dsn"); dsn != "" {
			if err := postgres.ValidateConnString(dsn); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(constants.EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s is larger than %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// envKey maps GROWTH_REDIS_ADDR to redis.addr and GROWTH_LOG_DIR to log_dir.
// Only the postgres and redis sections nest.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, constants.EnvPrefix))
	for _, section := range []string{"postgres", "redis"} {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = constants.BackendFile
	}
	c.Backend = constants.Backend(strings.ToLower(string(c.Backend)))
	if c.Path == "" {
		switch c.Backend {
		case constants.BackendFile:
			c.Path = filepath.Join(c.Dir, constants.DefaultDataFile)
			c.defaultPath = true
		case constants.BackendSQLite:
			c.Path = filepath.Join(c.Dir, constants.DefaultSQLiteFile)
			c.defaultPath = true
		}
	}
	c.Path = ExpandPath(c.Path)
	if c.LogDir == "" {
		c.LogDir = filepath.Join(c.Dir, "logs")
	}
	c.LogDir = ExpandPath(c.LogDir)
	if c.Redis.Addr == "" {
		c.Redis.Addr = constants.DefaultRedisAddr
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = constants.DefaultRedisPrefix
	}
}

// Override applies command-line selections on top of the loaded config. A
// path that was only defaulted follows a change of backend.
func (c *Config) Override(backend constants.Backend, path string, debug bool) error {
	if backend != "" && backend != c.Backend {
		c.Backend = backend
		if c.defaultPath {
			c.Path = ""
			c.defaultPath = false
		}
	}
	if path != "" {
		c.Path = path
		c.defaultPath = false
	}
	if debug {
		c.Debug = true
	}
	c.applyDefaults()
	return c.Validate()
}

// Validate checks the backend selection and its required settings.
func (c *Config) Validate() error {
	var problems []string

	switch c.Backend {
	case constants.BackendFile, constants.BackendSQLite:
		if c.Path == "" {
			problems = append(problems, fmt.Sprintf("path is required for the %s backend", c.Backend))
		}
	case constants.BackendPostgres:
		if c.Postgres.DSN == "" {
			problems = append(problems, "postgres.dsn is required for the postgres backend")
		}
	case constants.BackendRedis:
		if c.Redis.DB < 0 {
			problems = append(problems, fmt.Sprintf("invalid redis.db %d: must not be negative", c.Redis.DB))
		}
	case constants.BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("unknown backend %q: use file, sqlite, postgres, redis or memory", c.Backend))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ResolveSecrets fills in the selected backend's password from the OS
// keyring when the environment did not provide one.
func (c *Config) ResolveSecrets() {
	var target *string
	switch c.Backend {
	case constants.BackendPostgres:
		target = &c.Postgres.Password
	case constants.BackendRedis:
		target = &c.Redis.Password
	default:
		return
	}
	if *target != "" {
		return
	}

	secret, err := keyring.GetSecret(c.Backend)
	switch {
	case err == nil:
		*target = secret
	case errors.Is(err, keyring.ErrNotFound):
	default:
		logger.Debug("Keyring lookup failed", "backend", c.Backend, "error", err)
	}
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
