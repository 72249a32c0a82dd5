// Package persist keeps the goal collections and the key-value store in
// step. It loads the three collections once at startup and then writes
// every changed collection back under its own key.
package persist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/logger"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/snapshot"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage"
)

// State is the synchronizer lifecycle.
type State int32

const (
	Unloaded State = iota
	Loading
	Ready
	Closed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

var (
	ErrAlreadyLoaded = errors.New("collections already loaded")
	ErrClosed        = errors.New("synchronizer closed")
)

// Stats counts what happened to change notifications.
type Stats struct {
	// Saves is the number of successful writes.
	Saves int64
	// Failures is the number of writes the provider rejected.
	Failures int64
	// Suppressed counts changes dropped because loading had not finished.
	Suppressed int64
	// Superseded counts snapshots replaced by a newer one before being written.
	Superseded int64
}

type Synchronizer struct {
	provider storage.Provider

	// OnSaveError, when set, is called from the writer goroutine after a
	// failed write. Set it before Load.
	OnSaveError func(key string, err error)
	// SaveTimeout bounds each write. Zero means constants.SaveTimeout.
	SaveTimeout time.Duration

	mu      sync.Mutex
	state   State
	writers map[string]*writer

	saves, failures, suppressed, superseded atomic.Int64
}

func New(provider storage.Provider) *Synchronizer {
	return &Synchronizer{
		provider: provider,
		writers:  map[string]*writer{},
	}
}

func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Synchronizer) Stats() Stats {
	return Stats{
		Saves:      s.saves.Load(),
		Failures:   s.failures.Load(),
		Suppressed: s.suppressed.Load(),
		Superseded: s.superseded.Load(),
	}
}

// Load reads all three collections concurrently. A read or decode failure
// for one key is logged and that collection starts empty; the others are
// unaffected. Storage problems never make Load fail.
func (s *Synchronizer) Load(ctx context.Context) (models.Collections, error) {
	s.mu.Lock()
	switch s.state {
	case Unloaded:
		s.state = Loading
	case Closed:
		s.mu.Unlock()
		return models.Collections{}, ErrClosed
	default:
		s.mu.Unlock()
		return models.Collections{}, ErrAlreadyLoaded
	}
	s.mu.Unlock()

	raws := make([]string, len(models.Kinds))
	found := make([]bool, len(models.Kinds))

	var g errgroup.Group
	for i, kind := range models.Kinds {
		g.Go(func() error {
			key, err := snapshot.Key(kind)
			if err != nil {
				return err
			}
			raw, err := s.provider.Get(ctx, key)
			switch {
			case errors.Is(err, storage.ErrNotFound):
				logger.Debug("No stored collection", "key", key)
			case err != nil:
				logger.Warn("Failed to load collection, starting empty", "key", key, "error", err)
			default:
				raws[i] = raw
				found[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Only possible if models.Kinds and snapshot keys disagree.
		logger.Error("Collection load failed", "error", err)
	}

	c := models.Collections{
		Habits:   []models.Habit{},
		Tasks:    []models.Task{},
		Progress: []models.ProgressGoal{},
	}
	for i, kind := range models.Kinds {
		if !found[i] {
			continue
		}
		if err := snapshot.DecodeInto(kind, raws[i], &c); err != nil {
			logger.Warn("Stored collection is unreadable, starting empty", "kind", kind, "error", err)
			resetKind(&c, kind)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Closed {
		return c, ErrClosed
	}
	for _, key := range constants.CollectionKeys {
		w := newWriter(key, s.save)
		s.writers[key] = w
		go w.run()
	}
	s.state = Ready
	logger.Debug("Collections loaded", "habits", len(c.Habits), "tasks", len(c.Tasks), "progress", len(c.Progress))
	return c, nil
}

func resetKind(c *models.Collections, kind models.Kind) {
	switch kind {
	case models.KindHabit:
		c.Habits = []models.Habit{}
	case models.KindTask:
		c.Tasks = []models.Task{}
	case models.KindProgress:
		c.Progress = []models.ProgressGoal{}
	}
}

// Changed queues the collection of the given kind for writing. Before
// loading completes the change is dropped so a half-loaded state can never
// overwrite stored data.
func (s *Synchronizer) Changed(kind models.Kind, c models.Collections) {
	key, err := snapshot.Key(kind)
	if err != nil {
		logger.Error("Change for unknown collection", "kind", kind)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		s.suppressed.Add(1)
		logger.Debug("Save suppressed", "key", key, "state", s.state)
		return
	}

	raw, err := snapshot.Encode(kind, c)
	if err != nil {
		s.failures.Add(1)
		logger.Error("Failed to encode collection", "key", key, "error", err)
		return
	}
	if s.writers[key].submit(raw) {
		s.superseded.Add(1)
	}
}

func (s *Synchronizer) save(key, raw string) {
	timeout := s.SaveTimeout
	if timeout <= 0 {
		timeout = constants.SaveTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.provider.Set(ctx, key, raw); err != nil {
		s.failures.Add(1)
		logger.Error("Failed to save collection", "key", key, "error", err)
		if s.OnSaveError != nil {
			s.OnSaveError(key, err)
		}
		return
	}
	s.saves.Add(1)
	logger.Debug("Saved collection", "key", key, "bytes", len(raw))
}

// Flush waits until every queued write has been attempted.
func (s *Synchronizer) Flush(ctx context.Context) error {
	s.mu.Lock()
	waits := make([]<-chan struct{}, 0, len(s.writers))
	for _, w := range s.writers {
		waits = append(waits, w.idle())
	}
	s.mu.Unlock()

	for _, ch := range waits {
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close stops accepting changes, flushes pending writes and stops the
// writer goroutines. It does not close the provider.
func (s *Synchronizer) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.state == Closed {
		s.mu.Unlock()
		return nil
	}
	s.state = Closed
	s.mu.Unlock()

	err := s.Flush(ctx)

	s.mu.Lock()
	for _, w := range s.writers {
		w.stop()
	}
	s.mu.Unlock()
	return err
}
