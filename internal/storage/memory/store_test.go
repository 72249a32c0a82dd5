package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage"
)

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s := New().Seed(map[string]string{"a": "1"})

	if v, err := s.Get(ctx, "a"); err != nil || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, err)
	}
	if _, err := s.Get(ctx, "b"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get(b) error = %v, want ErrNotFound", err)
	}
	if err := s.Set(ctx, "b", "2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, _ := s.Value("b"); v != "2" {
		t.Errorf("Value(b) = %q", v)
	}
	if s.Gets("b") != 1 || s.Sets("b") != 1 || s.TotalSets() != 1 {
		t.Errorf("counters gets=%d sets=%d total=%d", s.Gets("b"), s.Sets("b"), s.TotalSets())
	}
}

func TestHooks(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	s := New()
	s.SetHook = func(key, value string) error {
		if key == "bad" {
			return boom
		}
		return nil
	}
	s.GetHook = func(key string) error {
		if key == "bad" {
			return boom
		}
		return nil
	}

	if err := s.Set(ctx, "bad", "x"); !errors.Is(err, boom) {
		t.Errorf("Set(bad) error = %v", err)
	}
	if _, ok := s.Value("bad"); ok {
		t.Error("failed Set should not store a value")
	}
	if _, err := s.Get(ctx, "bad"); !errors.Is(err, boom) {
		t.Errorf("Get(bad) error = %v", err)
	}
	if err := s.Set(ctx, "good", "y"); err != nil {
		t.Errorf("Set(good) error = %v", err)
	}
	if len(s.Writes("bad")) != 0 || len(s.Writes("good")) != 1 {
		t.Errorf("writes bad=%v good=%v", s.Writes("bad"), s.Writes("good"))
	}
}

func TestDelayHonoursContext(t *testing.T) {
	s := New()
	s.Delay = time.Second
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := s.Set(ctx, "k", "v"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Set() error = %v, want DeadlineExceeded", err)
	}
}

func TestClosed(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.Close()
	if err := s.Set(ctx, "k", "v"); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("Set() after Close error = %v", err)
	}
	if err := s.Open(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Errorf("Set() after reopen error = %v", err)
	}
}
