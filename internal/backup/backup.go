package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/logger"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/snapshot"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage"
)

const bundleVersion = 1

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Bundle is the on-disk backup format: the raw snapshot of each collection
// keyed by its storage key.
type Bundle struct {
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"createdAt"`
	Source      string            `json:"source"`
	Collections map[string]string `json:"collections"`
}

// Manager handles backup operations
type Manager struct {
	provider  storage.Provider
	backupDir string
	now       func() time.Time
}

// NewManager creates a backup manager writing to <configDir>/backups.
func NewManager(provider storage.Provider, configDir string) *Manager {
	return &Manager{
		provider:  provider,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes the stored collections to a new backup file and
// removes the oldest backups beyond constants.MaxBackups.
func (m *Manager) CreateBackup(ctx context.Context) (string, error) {
	return m.createBackup(ctx, false)
}

// skipRotation keeps the pre-restore backup from rotating away the file
// being restored.
func (m *Manager) createBackup(ctx context.Context, skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	bundle := Bundle{
		Version:     bundleVersion,
		CreatedAt:   m.now().UTC(),
		Source:      m.provider.Describe(),
		Collections: map[string]string{},
	}
	for _, key := range constants.CollectionKeys {
		raw, err := m.provider.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", key, err)
		}
		bundle.Collections[key] = raw
	}

	backupPath, err := m.nextPath()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// nextPath picks growth-YYYYMMDD-HHMM.json, falling back to seconds and
// then a counter when that name is taken.
func (m *Manager) nextPath() (string, error) {
	now := m.now()
	candidate := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := candidate(now.Format("20060102-1504"))
	if !exists(path) {
		return path, nil
	}
	stamp := now.Format("20060102-150405")
	path = candidate(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = candidate(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// parseBackupName extracts the timestamp from a backup file name.
func parseBackupName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// Drop a trailing -N counter. Time parts are always 4 or 6 digits.
	parts := strings.Split(stamp, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 && allDigits(last) {
			stamp = strings.Join(parts[:len(parts)-1], "-")
		}
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ListBackups returns all backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// ReadBackup loads and verifies a backup file. Every snapshot in it must
// decode.
func ReadBackup(path string) (Bundle, models.Collections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, models.Collections{}, fmt.Errorf("failed to read backup: %w", err)
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return Bundle{}, models.Collections{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if bundle.Version < 1 || bundle.Version > bundleVersion {
		return Bundle{}, models.Collections{}, fmt.Errorf("unsupported backup version %d", bundle.Version)
	}

	var c models.Collections
	for key, raw := range bundle.Collections {
		kind, err := snapshot.KindOf(key)
		if err != nil {
			return Bundle{}, models.Collections{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
		}
		if err := snapshot.DecodeInto(kind, raw, &c); err != nil {
			return Bundle{}, models.Collections{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
		}
	}
	return bundle, c, nil
}

// RestoreBackup writes the snapshots in a backup back through the provider.
// The current data is backed up first; its path is returned.
// Collections absent from the backup are restored as empty.
func (m *Manager) RestoreBackup(ctx context.Context, backupPath string) (string, error) {
	bundle, _, err := ReadBackup(backupPath)
	if err != nil {
		return "", err
	}

	current, err := m.createBackup(ctx, true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current data before restore: %w", err)
	}
	logger.Info("Created backup of current data", "path", current)

	for _, key := range constants.CollectionKeys {
		raw, ok := bundle.Collections[key]
		if !ok {
			raw = "[]"
		}
		if err := m.provider.Set(ctx, key, raw); err != nil {
			return current, fmt.Errorf("failed to restore %s: %w", key, err)
		}
	}
	return current, nil
}
