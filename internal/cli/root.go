package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/backup"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/config"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/logger"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/persist"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/store"
)

// Context is handed to every command's Run method.
type Context struct {
	Ctx      context.Context
	Config   *config.Config
	Provider storage.Provider
	Sync     *persist.Synchronizer
	Store    *store.Store

	Out io.Writer
	// Confirm asks a yes/no question. It defaults to a huh prompt.
	Confirm func(title, description string) (bool, error)
	// Form fills in a new goal when no name was given. It defaults to
	// DraftForm.
	Form func(kind models.Kind, d *models.Draft) error
	Now  func() time.Time

	saveMu      sync.Mutex
	failedSaves []string
}

// New returns a Context for the provider. Open must be called before the
// goal store is used.
func New(ctx context.Context, cfg *config.Config, provider storage.Provider) *Context {
	return &Context{
		Ctx:      ctx,
		Config:   cfg,
		Provider: provider,
		Out:      os.Stdout,
		Confirm:  Confirm,
		Form:     DraftForm,
		Now:      time.Now,
	}
}

// Open opens the provider and loads the goal store through a synchronizer.
func (c *Context) Open() error {
	if err := c.Provider.Open(c.Ctx); err != nil {
		return err
	}
	c.Sync = persist.New(c.Provider)
	c.Sync.OnSaveError = c.saveFailed
	s, err := store.Open(c.Ctx, c.Sync)
	if err != nil {
		return err
	}
	c.Store = s
	return nil
}

// Close waits for pending saves and releases the provider.
func (c *Context) Close() error {
	if c.Sync != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*constants.SaveTimeout)
		defer cancel()
		if err := c.Sync.Close(ctx); err != nil {
			logger.Warn("Failed to flush pending saves", "error", err)
		}
		if keys := c.FailedSaves(); len(keys) > 0 {
			fmt.Fprintf(os.Stderr, "Warning: %d save(s) failed for %s, see the log for details\n",
				c.Sync.Stats().Failures, strings.Join(keys, ", "))
		}
	}
	return c.Provider.Close()
}

func (c *Context) saveFailed(key string, _ error) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	if !slices.Contains(c.failedSaves, key) {
		c.failedSaves = append(c.failedSaves, key)
	}
}

// FailedSaves returns the storage keys that had at least one rejected write
// since Open, in the order they first failed.
func (c *Context) FailedSaves() []string {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	return slices.Clone(c.failedSaves)
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// Print writes to the command output.
func (c *Context) Print(args ...interface{}) {
	fmt.Fprint(c.Out, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Today returns the current local time.
func (c *Context) Today() time.Time {
	return c.Now()
}

// Backups returns the backup manager for the configured provider.
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Provider, c.Config.Dir)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups().CreateBackup(c.Ctx); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Resolve finds a goal of kind by id or unique name.
func (c *Context) Resolve(kind models.Kind, ref string) (models.Goal, error) {
	return c.Store.Resolve(kind, ref)
}
