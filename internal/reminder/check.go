package reminder

import (
	"fmt"
	"time"

	"github.com/lifesyncapp/lifesync/internal/model"
)

// DefaultMessage is the fallback reminder text when no goal is configured.
const DefaultMessage = "Time to drink some water! Stay hydrated!"

// MinInterval is the minimum gap between two dispatched reminders.
const MinInterval = time.Hour

// Snapshot captures everything the scheduler needs to decide whether a
// reminder is due. The update layer produces one on demand so the scheduler
// never reaches into UI state directly.
type Snapshot struct {
	Enabled      bool
	Preferences  model.Preferences
	WaterMLToday int
	Email        string
	Phone        string
}

// InQuietHours reports whether reminders are suppressed at the given hour.
// The active window runs from QuietHoursEnd up to (not including)
// QuietHoursStart, so with the defaults 8 and 22 reminders fire between
// 08:00 and 21:59.
func InQuietHours(hour int, prefs model.Preferences) bool {
	return !(hour >= prefs.QuietHoursEnd && hour < prefs.QuietHoursStart)
}

// TieredMessage composes the reminder text for the current intake. The tone
// escalates with progress toward the goal.
func TieredMessage(todayML, goalML int) string {
	if goalML <= 0 {
		return DefaultMessage
	}
	percent := todayML * 100 / goalML
	remaining := goalML - todayML
	if remaining < 0 {
		remaining = 0
	}
	switch {
	case percent < 30:
		return fmt.Sprintf("Time to drink water! You've had %dml, need %dml more!", todayML, remaining)
	case percent < 70:
		return fmt.Sprintf("Keep it up! You're %d%% to your goal!", percent)
	case percent < 100:
		return fmt.Sprintf("Almost there! Just %dml to reach your goal!", remaining)
	default:
		return "Goal reached! Amazing work staying hydrated!"
	}
}

// ShouldFire decides whether a reminder is due at now. lastFired is nil when
// no reminder has been dispatched yet this session.
func ShouldFire(now time.Time, snap Snapshot, lastFired *time.Time) bool {
	if !snap.Enabled {
		return false
	}
	if InQuietHours(now.Hour(), snap.Preferences) {
		return false
	}
	if snap.WaterMLToday >= snap.Preferences.WaterGoalML {
		return false
	}
	if lastFired != nil && now.Sub(*lastFired) < MinInterval {
		return false
	}
	return true
}
