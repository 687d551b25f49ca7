package cache

import "sync"

// LoadTracker gates a page-scoped blocking spinner. It counts in-flight
// requests instead of holding a boolean so that one fast request finishing
// cannot hide the spinner while a slower one is still pending.
type LoadTracker struct {
	mu       sync.Mutex
	inflight int
}

func NewLoadTracker() *LoadTracker {
	return &LoadTracker{}
}

// Begin marks a request as started and returns the matching completion
// callback. The callback is safe to call exactly once.
func (t *LoadTracker) Begin() func() {
	t.mu.Lock()
	t.inflight++
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			if t.inflight > 0 {
				t.inflight--
			}
			t.mu.Unlock()
		})
	}
}

// Loading reports whether any request is still outstanding.
func (t *LoadTracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inflight > 0
}
