// Package memory is an in-process Provider. It backs the --backend memory
// mode and doubles as a test double with fault injection.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage"
)

type Store struct {
	mu     sync.Mutex
	values map[string]string
	closed bool

	// Hooks let tests fail or slow down individual calls. A non-nil
	// error returned from a hook is returned by the call.
	GetHook func(key string) error
	SetHook func(key, value string) error
	// Delay is applied before each Set, honouring ctx.
	Delay time.Duration

	gets   map[string]int
	sets   map[string]int
	writes map[string][]string
}

var _ storage.Provider = (*Store)(nil)

func New() *Store {
	return &Store{
		values: map[string]string{},
		gets:   map[string]int{},
		sets:   map[string]int{},
		writes: map[string][]string{},
	}
}

// Seed stores values directly, bypassing hooks and counters.
func (s *Store) Seed(values map[string]string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *Store) Init(ctx context.Context) error { return nil }
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = false
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	s.gets[key]++
	hook := s.GetHook
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return "", storage.ErrClosed
	}
	if hook != nil {
		if err := hook(key); err != nil {
			return "", err
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.sets[key]++
	hook := s.SetHook
	delay := s.Delay
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return storage.ErrClosed
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if hook != nil {
		if err := hook(key, value); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.writes[key] = append(s.writes[key], value)
	return nil
}

func (s *Store) Describe() string { return "memory" }

func (s *Store) Ping(ctx context.Context) error { return nil }

// Value returns the stored value without counting as a Get.
func (s *Store) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Gets reports how many times Get was called for key.
func (s *Store) Gets(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets[key]
}

// Sets reports how many times Set was called for key, failed calls included.
func (s *Store) Sets(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[key]
}

// Writes returns the values successfully written to key, oldest first.
func (s *Store) Writes(key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes[key]...)
}

// TotalSets is the number of Set calls across all keys.
func (s *Store) TotalSets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.sets {
		n += c
	}
	return n
}
