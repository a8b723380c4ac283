package main

import (
	"testing"
	"time"

	"github.com/lifesyncapp/lifesync/internal/auth"
	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/storage"
	"github.com/lifesyncapp/lifesync/internal/tracker"
)

// A water log saved yesterday at goal must not suppress reminders after
// midnight: the snapshot rolls the log to today's zeroed intake first.
func TestReminderSnapshotRollsStaleWaterLog(t *testing.T) {
	data := storage.NewData(storage.NewMemoryStore(nil))
	now := func() time.Time { return time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC) }

	registry, err := auth.NewRegistryAt(data, nil, now)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	user, err := registry.Login("user1", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := data.SaveReminderEnabled(user.ID, true); err != nil {
		t.Fatalf("save reminder flag: %v", err)
	}
	if err := data.SaveWaterLog(user.ID, model.WaterLog{
		TodayML: user.Preferences.WaterGoalML,
		Date:    "2025-11-05",
		Streak:  3,
	}); err != nil {
		t.Fatalf("seed water log: %v", err)
	}

	engine := tracker.NewEngineAt(data, nil, now)
	snap, ok := reminderSnapshot(registry, data, engine)()
	if !ok {
		t.Fatal("no snapshot for active session")
	}
	if snap.WaterMLToday != 0 {
		t.Fatalf("water today = %dml, want 0 after rollover", snap.WaterMLToday)
	}
	if !snap.Enabled {
		t.Fatal("reminders not enabled in snapshot")
	}
}
