package journal

import (
	"sync"
	"time"
)

// AutosaveWindow is how long after the last keystroke a draft save fires.
const AutosaveWindow = 30 * time.Second

// Debouncer coalesces a burst of triggers into one callback after a quiet
// window. Every new trigger cancels and reschedules the pending one (pure
// debounce, not throttle). Stop must be called on teardown so a stale timer
// can never write into a session that no longer exists.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = AutosaveWindow
	}
	return &Debouncer{window: window}
}

// Trigger schedules fn to run after the quiet window, replacing any pending
// schedule.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels the pending save, if any, and reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
