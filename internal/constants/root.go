package constants

import "time"

// Backend names a key-value storage backend
type Backend string

const (
	AppName            = "growth"
	DefaultConfigDir   = "~/.config/growth"
	DefaultConfigFile  = "config.yaml"
	DefaultDataFile    = "growth.json"
	DefaultSQLiteFile  = "growth.db"
	DefaultKeyringUser = "backend-secret"
	EnvPrefix          = "GROWTH_"
	Version            = "v0.1.0"

	// DateFormat is the standard date key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the format of a year-month selector (YYYY-MM)
	MonthFormat = "2006-01"

	// Storage keys, one per collection. These match the keys written by the
	// original browser build so exported data can be imported unchanged.
	KeyHabits   = "goals_habits"
	KeyTasks    = "goals_tasks"
	KeyProgress = "goals_progress"

	// Progress goal defaults
	DefaultProgressCurrent = 0.0
	DefaultProgressTarget  = 100.0
	ProgressIncrement      = 1.0

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "growth-"
	BackupFileSuffix = ".json"

	// Redis
	DefaultRedisAddr   = "localhost:6379"
	DefaultRedisPrefix = "growth:"

	// Persistence
	SaveTimeout = 10 * time.Second

	// Storage backends
	BackendFile     Backend = "file"
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

// CollectionKeys lists the storage keys in load order.
var CollectionKeys = []string{KeyHabits, KeyTasks, KeyProgress}
