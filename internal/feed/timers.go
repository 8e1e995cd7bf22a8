package feed

import (
	"sync"
	"time"
)

// Timers runs one ticker per tracked order and reports the elapsed time since
// the order was created. Every ticker is stopped by Untrack, Retain or Stop.
type Timers struct {
	period time.Duration
	onTick func(id string, elapsed time.Duration)

	mu      sync.Mutex
	running map[string]chan struct{}
	wg      sync.WaitGroup
	stopped bool
}

func NewTimers(period time.Duration, onTick func(id string, elapsed time.Duration)) *Timers {
	return &Timers{
		period:  period,
		onTick:  onTick,
		running: make(map[string]chan struct{}),
	}
}

// Track starts a ticker for id unless one is already running.
func (t *Timers) Track(id string, since time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if _, ok := t.running[id]; ok {
		return
	}

	done := make(chan struct{})
	t.running[id] = done
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(t.period)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				t.onTick(id, now.Sub(since))
			}
		}
	}()
}

func (t *Timers) Untrack(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if done, ok := t.running[id]; ok {
		close(done)
		delete(t.running, id)
	}
}

// Retain stops every ticker whose id is not in ids.
func (t *Timers) Retain(ids []string) {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for id, done := range t.running {
		if _, ok := keep[id]; !ok {
			close(done)
			delete(t.running, id)
		}
	}
}

func (t *Timers) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.running)
}

// Stop cancels every ticker and waits for their goroutines to exit.
// Track is a no-op afterwards.
func (t *Timers) Stop() {
	t.mu.Lock()
	t.stopped = true
	for id, done := range t.running {
		close(done)
		delete(t.running, id)
	}
	t.mu.Unlock()
	t.wg.Wait()
}
