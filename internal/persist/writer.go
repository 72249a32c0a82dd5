package persist

import "sync"

// writer owns all writes for one key. It holds at most one pending value;
// a newer submit replaces it, so only the latest snapshot is written once
// the current write finishes.
type writer struct {
	key  string
	save func(key, raw string)

	wake chan struct{}

	mu         sync.Mutex
	pending    string
	hasPending bool
	busy       bool
	stopped    bool
	waiters    []chan struct{}
}

func newWriter(key string, save func(key, raw string)) *writer {
	return &writer{
		key:  key,
		save: save,
		wake: make(chan struct{}, 1),
	}
}

// submit queues raw and reports whether it replaced an unwritten value.
func (w *writer) submit(raw string) bool {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return false
	}
	replaced := w.hasPending
	w.pending = raw
	w.hasPending = true
	w.busy = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
	return replaced
}

func (w *writer) run() {
	for range w.wake {
		for {
			w.mu.Lock()
			if !w.hasPending {
				w.busy = false
				for _, ch := range w.waiters {
					close(ch)
				}
				w.waiters = nil
				w.mu.Unlock()
				break
			}
			raw := w.pending
			w.pending = ""
			w.hasPending = false
			w.mu.Unlock()

			w.save(w.key, raw)
		}
	}
}

// idle returns a channel closed once nothing is queued or in flight.
func (w *writer) idle() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	ch := make(chan struct{})
	if !w.busy {
		close(ch)
		return ch
	}
	w.waiters = append(w.waiters, ch)
	return ch
}

func (w *writer) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.wake)
}
