package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/snapshot"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/storage/memory"
)

func sampleCollections() models.Collections {
	created := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	return models.Collections{
		Habits: []models.Habit{{
			Meta:           models.Meta{ID: "h1", Name: "Read", CreatedAt: created},
			CompletedDates: models.NewDateSet("2024-03-01", "2024-03-02"),
		}},
		Tasks: []models.Task{{
			Meta:      models.Meta{ID: "t1", Name: "Pay bills", CreatedAt: created},
			Completed: true,
		}},
		Progress: []models.ProgressGoal{{
			Meta:    models.Meta{ID: "p1", Name: "Run", CreatedAt: created},
			Current: 5, Target: 42, Unit: "km",
		}},
	}
}

func seeded(t *testing.T, c models.Collections) *memory.Store {
	t.Helper()
	values := map[string]string{}
	for _, kind := range models.Kinds {
		key, _ := snapshot.Key(kind)
		raw, err := snapshot.Encode(kind, c)
		if err != nil {
			t.Fatal(err)
		}
		values[key] = raw
	}
	return memory.New().Seed(values)
}

func loadReady(t *testing.T, s *Synchronizer) models.Collections {
	t.Helper()
	c, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.State() != Ready {
		t.Fatalf("State() = %v, want ready", s.State())
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return c
}

func TestLoadAllCollections(t *testing.T) {
	want := sampleCollections()
	s := New(seeded(t, want))

	got := loadReady(t, s)
	if len(got.Habits) != 1 || !got.Habits[0].CompletedDates.Has("2024-03-02") {
		t.Errorf("habits = %+v", got.Habits)
	}
	if len(got.Tasks) != 1 || !got.Tasks[0].Completed {
		t.Errorf("tasks = %+v", got.Tasks)
	}
	if len(got.Progress) != 1 || got.Progress[0].Target != 42 {
		t.Errorf("progress = %+v", got.Progress)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	got := loadReady(t, New(memory.New()))
	if got.Habits == nil || got.Tasks == nil || got.Progress == nil {
		t.Errorf("collections should be empty, not nil: %+v", got)
	}
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0", got.Len())
	}
}

func TestLoadDegradesPerKey(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*memory.Store)
	}{
		{
			name: "read failure",
			setup: func(m *memory.Store) {
				m.GetHook = func(key string) error {
					if key == constants.KeyTasks {
						return errors.New("connection reset")
					}
					return nil
				}
			},
		},
		{
			name: "malformed snapshot",
			setup: func(m *memory.Store) {
				m.Seed(map[string]string{constants.KeyTasks: "{not json"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := seeded(t, sampleCollections())
			tt.setup(m)
			got := loadReady(t, New(m))

			if len(got.Tasks) != 0 {
				t.Errorf("tasks = %+v, want empty", got.Tasks)
			}
			if len(got.Habits) != 1 || len(got.Progress) != 1 {
				t.Errorf("other collections should load: %+v", got)
			}
		})
	}
}

func TestLoadCompletesInAnyOrder(t *testing.T) {
	m := seeded(t, sampleCollections())
	delays := map[string]time.Duration{
		constants.KeyHabits:   30 * time.Millisecond,
		constants.KeyTasks:    0,
		constants.KeyProgress: 15 * time.Millisecond,
	}
	m.GetHook = func(key string) error {
		time.Sleep(delays[key])
		return nil
	}

	got := loadReady(t, New(m))
	if got.Len() != 3 {
		t.Errorf("Len() = %d, want 3", got.Len())
	}
}

func TestNoWritesBeforeReady(t *testing.T) {
	m := memory.New()
	s := New(m)

	s.Changed(models.KindTask, sampleCollections())
	if s.State() != Unloaded {
		t.Errorf("State() = %v", s.State())
	}

	release := make(chan struct{})
	m.GetHook = func(string) error {
		<-release
		return nil
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Load(context.Background())
	}()

	// Wait for the Loading state, then change while reads are blocked.
	deadline := time.Now().Add(time.Second)
	for s.State() != Loading && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	s.Changed(models.KindHabit, sampleCollections())
	close(release)
	<-done
	defer s.Close(context.Background())

	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := m.TotalSets(); n != 0 {
		t.Errorf("provider received %d writes before ready", n)
	}
	if got := s.Stats().Suppressed; got != 2 {
		t.Errorf("Suppressed = %d, want 2", got)
	}
}

func TestChangedWritesSnapshot(t *testing.T) {
	m := memory.New()
	s := New(m)
	loadReady(t, s)

	c := sampleCollections()
	s.Changed(models.KindProgress, c)
	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}

	want, _ := snapshot.Encode(models.KindProgress, c)
	if got, _ := m.Value(constants.KeyProgress); got != want {
		t.Errorf("stored = %q, want %q", got, want)
	}
	if m.Sets(constants.KeyHabits) != 0 || m.Sets(constants.KeyTasks) != 0 {
		t.Error("only the changed collection should be written")
	}
	if s.Stats().Saves != 1 {
		t.Errorf("Saves = %d, want 1", s.Stats().Saves)
	}
}

func TestLatestSnapshotWins(t *testing.T) {
	m := memory.New()
	m.Delay = 100 * time.Millisecond
	s := New(m)
	loadReady(t, s)

	c := sampleCollections()
	var last string
	for i := 0; i < 3; i++ {
		c.Tasks = append([]models.Task(nil), c.Tasks...)
		c.Tasks[0].Completed = i%2 == 0
		c.Tasks[0].Name = []string{"one", "two", "three"}[i]
		s.Changed(models.KindTask, c)
		last, _ = snapshot.Encode(models.KindTask, c)
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}

	writes := m.Writes(constants.KeyTasks)
	if len(writes) == 0 || writes[len(writes)-1] != last {
		t.Fatalf("last write = %v, want %q", writes, last)
	}
	if len(writes) >= 3 {
		t.Errorf("expected superseded snapshots to be skipped, got %d writes", len(writes))
	}
	if s.Stats().Superseded == 0 {
		t.Error("Superseded counter not incremented")
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	m := memory.New()
	boom := errors.New("disk full")
	m.SetHook = func(key, value string) error {
		if key == constants.KeyHabits {
			return boom
		}
		return nil
	}

	var mu sync.Mutex
	var reported []string
	s := New(m)
	s.OnSaveError = func(key string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if errors.Is(err, boom) {
			reported = append(reported, key)
		}
	}
	loadReady(t, s)

	c := sampleCollections()
	s.Changed(models.KindHabit, c)
	s.Changed(models.KindTask, c)
	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(reported) != 1 || reported[0] != constants.KeyHabits {
		t.Errorf("reported = %v", reported)
	}
	if _, ok := m.Value(constants.KeyTasks); !ok {
		t.Error("a failing key must not block other keys")
	}
	st := s.Stats()
	if st.Failures != 1 || st.Saves != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestLifecycleErrors(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New())
	loadReady(t, s)

	if _, err := s.Load(ctx); !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("second Load() error = %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	s.Changed(models.KindTask, sampleCollections())
	if s.Stats().Suppressed != 1 {
		t.Error("changes after Close should be suppressed")
	}

	closed := New(memory.New())
	closed.Close(ctx)
	if _, err := closed.Load(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Load() after Close error = %v", err)
	}
}

func TestFlushHonoursContext(t *testing.T) {
	m := memory.New()
	m.Delay = time.Second
	s := New(m)
	loadReady(t, s)

	s.Changed(models.KindTask, sampleCollections())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := s.Flush(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Flush() error = %v, want DeadlineExceeded", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{Unloaded: "unloaded", Loading: "loading", Ready: "ready", Closed: "closed"}
	for st, want := range tests {
		if st.String() != want {
			t.Errorf("%d.String() = %q, want %q", st, st.String(), want)
		}
	}
}
