package reminder

import (
	"sync"
	"testing"
	"time"

	"github.com/lifesyncapp/lifesync/internal/model"
)

func activeSnapshot() Snapshot {
	return Snapshot{
		Enabled:      true,
		Preferences:  model.DefaultPreferences(),
		WaterMLToday: 500,
		Email:        "user1@example.com",
		Phone:        "555-0100",
	}
}

func at(hour int) time.Time {
	return time.Date(2025, 11, 5, hour, 0, 0, 0, time.UTC)
}

func TestShouldFire(t *testing.T) {
	snap := activeSnapshot()

	cases := []struct {
		name string
		now  time.Time
		mod  func(*Snapshot)
		last *time.Time
		want bool
	}{
		{name: "midday below goal", now: at(12), want: true},
		{name: "disabled", now: at(12), mod: func(s *Snapshot) { s.Enabled = false }, want: false},
		{name: "goal met", now: at(12), mod: func(s *Snapshot) { s.WaterMLToday = 2000 }, want: false},
		{name: "goal exceeded", now: at(12), mod: func(s *Snapshot) { s.WaterMLToday = 2500 }, want: false},
		{name: "before quiet end", now: at(7), want: false},
		{name: "at quiet end boundary", now: at(8), want: true},
		{name: "last active hour", now: at(21), want: true},
		{name: "at quiet start boundary", now: at(22), want: false},
		{name: "deep night", now: at(2), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := snap
			if tc.mod != nil {
				tc.mod(&s)
			}
			if got := ShouldFire(tc.now, s, tc.last); got != tc.want {
				t.Fatalf("ShouldFire() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTieredMessage(t *testing.T) {
	cases := []struct {
		name    string
		todayML int
		goalML  int
		want    string
	}{
		{name: "low intake", todayML: 250, goalML: 2000, want: "Time to drink water! You've had 250ml, need 1750ml more!"},
		{name: "midway", todayML: 1000, goalML: 2000, want: "Keep it up! You're 50% to your goal!"},
		{name: "nearly done", todayML: 1800, goalML: 2000, want: "Almost there! Just 200ml to reach your goal!"},
		{name: "goal met", todayML: 2000, goalML: 2000, want: "Goal reached! Amazing work staying hydrated!"},
		{name: "zero goal falls back", todayML: 500, goalML: 0, want: DefaultMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TieredMessage(tc.todayML, tc.goalML); got != tc.want {
				t.Fatalf("TieredMessage(%d, %d) = %q, want %q", tc.todayML, tc.goalML, got, tc.want)
			}
		})
	}
}

func TestShouldFireThrottle(t *testing.T) {
	snap := activeSnapshot()
	now := at(12)

	recent := now.Add(-30 * time.Minute)
	if ShouldFire(now, snap, &recent) {
		t.Fatal("fired within an hour of the previous reminder")
	}

	old := now.Add(-time.Hour)
	if !ShouldFire(now, snap, &old) {
		t.Fatal("did not fire an hour after the previous reminder")
	}
}

func TestInQuietHoursWrapWindow(t *testing.T) {
	prefs := model.DefaultPreferences() // quiet 22..8

	for hour := 0; hour < 24; hour++ {
		active := hour >= 8 && hour < 22
		if got := InQuietHours(hour, prefs); got == active {
			t.Fatalf("hour %d: InQuietHours = %v, want %v", hour, got, !active)
		}
	}
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []struct {
		channel Channel
		address string
	}
}

func (r *recordingNotifier) Notify(channel Channel, address, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, struct {
		channel Channel
		address string
	}{channel, address})
}

func (r *recordingNotifier) snapshot() []struct {
	channel Channel
	address string
} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]struct {
		channel Channel
		address string
	}(nil), r.calls...)
}

func TestSchedulerImmediateCheck(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewScheduler(Config{
		Snapshot: func() (Snapshot, bool) { return activeSnapshot(), true },
		Notifier: notifier,
		Interval: time.Hour,
		Now:      func() time.Time { return at(12) },
	})

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	select {
	case ev := <-s.C():
		want := "Time to drink water! You've had 500ml, need 1500ml more!"
		if ev.Message != want {
			t.Fatalf("event message = %q, want %q", ev.Message, want)
		}
	case <-time.After(time.Second):
		t.Fatal("no event after immediate check")
	}

	calls := notifier.snapshot()
	if len(calls) != 2 {
		t.Fatalf("notifier calls = %d, want 2", len(calls))
	}
	if calls[0].channel != ChannelSMS || calls[1].channel != ChannelEmail {
		t.Fatalf("channels = %v, %v", calls[0].channel, calls[1].channel)
	}
	if calls[0].address != "555-0100" || calls[1].address != "user1@example.com" {
		t.Fatalf("addresses = %q, %q", calls[0].address, calls[1].address)
	}
}

func TestSchedulerThrottlesRepeatChecks(t *testing.T) {
	s := NewScheduler(Config{
		Snapshot: func() (Snapshot, bool) { return activeSnapshot(), true },
		Now:      func() time.Time { return at(12) },
	})

	if !s.CheckNow() {
		t.Fatal("first check did not fire")
	}
	if s.CheckNow() {
		t.Fatal("second check fired within the throttle window")
	}

	s.ResetThrottle()
	if !s.CheckNow() {
		t.Fatal("check did not fire after throttle reset")
	}
}

func TestSchedulerNoSession(t *testing.T) {
	s := NewScheduler(Config{
		Snapshot: func() (Snapshot, bool) { return Snapshot{}, false },
		Now:      func() time.Time { return at(12) },
	})
	if s.CheckNow() {
		t.Fatal("fired without an active session")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(Config{
		Snapshot: func() (Snapshot, bool) { return Snapshot{}, false },
		Interval: 10 * time.Millisecond,
	})
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(); err != ErrAlreadyStarted {
		t.Fatalf("second Start = %v, want ErrAlreadyStarted", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("repeat Stop: %v", err)
	}
}
