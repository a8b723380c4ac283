package reminder

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrAlreadyStarted = errors.New("reminder: scheduler already started")
	ErrNotStarted     = errors.New("reminder: scheduler not started")
)

// Event is emitted on the scheduler's channel whenever a reminder is
// dispatched, so the UI can surface a banner alongside the notifier calls.
type Event struct {
	FiredAt time.Time
	Message string
}

// SnapshotFunc returns the current reminder inputs. The second result is
// false when no user session is active, which suppresses all checks.
type SnapshotFunc func() (Snapshot, bool)

// Config bundles the scheduler dependencies.
type Config struct {
	Snapshot SnapshotFunc
	Notifier Notifier
	Logger   *zap.Logger

	// Interval between periodic checks. Defaults to one hour.
	Interval time.Duration
	// Buffer is the event channel capacity. Defaults to 8.
	Buffer int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Scheduler runs reminder checks in the background: once immediately on
// Start, then once per interval. Events are delivered on C; if the consumer
// falls behind, events are dropped rather than blocking the loop.
type Scheduler struct {
	snapshot SnapshotFunc
	notifier Notifier
	logger   *zap.Logger
	interval time.Duration
	now      func() time.Time

	out chan Event

	mu        sync.Mutex
	started   bool
	stopped   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	lastFired *time.Time
	dropped   int
}

func NewScheduler(cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 8
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Scheduler{
		snapshot: cfg.Snapshot,
		notifier: cfg.Notifier,
		logger:   cfg.Logger.Named("reminder"),
		interval: cfg.Interval,
		now:      cfg.Now,
		out:      make(chan Event, cfg.Buffer),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// C delivers dispatched reminder events.
func (s *Scheduler) C() <-chan Event { return s.out }

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	go s.loop()
	return nil
}

// Stop halts the loop and waits for it to exit. Safe to call more than once.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	close(s.stopCh)
	s.mu.Unlock()

	<-s.doneCh
	return nil
}

// ResetThrottle clears the last-fired timestamp, allowing the next check to
// dispatch immediately. Called when the user re-enables reminders.
func (s *Scheduler) ResetThrottle() {
	s.mu.Lock()
	s.lastFired = nil
	s.mu.Unlock()
}

// CheckNow runs a single reminder check outside the periodic loop.
func (s *Scheduler) CheckNow() bool {
	return s.check()
}

func (s *Scheduler) loop() {
	defer close(s.doneCh)

	s.check()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.check()
		}
	}
}

func (s *Scheduler) check() bool {
	if s.snapshot == nil {
		return false
	}
	snap, ok := s.snapshot()
	if !ok {
		return false
	}

	now := s.now()

	s.mu.Lock()
	last := s.lastFired
	s.mu.Unlock()

	if !ShouldFire(now, snap, last) {
		return false
	}

	s.mu.Lock()
	fired := now
	s.lastFired = &fired
	s.mu.Unlock()

	message := TieredMessage(snap.WaterMLToday, snap.Preferences.WaterGoalML)
	s.notifier.Notify(ChannelSMS, snap.Phone, message)
	s.notifier.Notify(ChannelEmail, snap.Email, message)

	ev := Event{FiredAt: now, Message: message}
	select {
	case s.out <- ev:
	default:
		s.mu.Lock()
		s.dropped++
		n := s.dropped
		s.mu.Unlock()
		s.logger.Warn("reminder event dropped", zap.Int("total_dropped", n))
	}

	s.logger.Info("reminder dispatched",
		zap.Time("fired_at", now),
		zap.Int("water_ml", snap.WaterMLToday),
		zap.Int("goal_ml", snap.Preferences.WaterGoalML),
	)
	return true
}
