package tracker

import "github.com/lifesyncapp/lifesync/internal/model"

// BuildDailyProgress snapshots every tracked metric for one calendar date.
func BuildDailyProgress(
	today string,
	tasks []model.Task,
	pomo model.PomodoroStats,
	water model.WaterLog,
	goalML int,
	entries []model.JournalEntry,
) model.DailyProgress {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	todayEntries := 0
	for _, e := range entries {
		if e.Date == today {
			todayEntries++
		}
	}
	return model.DailyProgress{
		Date:             today,
		TasksCompleted:   completed,
		TasksTotal:       len(tasks),
		PomodoroSessions: pomo.SessionsToday,
		WaterIntake:      water.TodayML,
		WaterGoal:        goalML,
		JournalEntries:   todayEntries,
	}
}

// UpsertDailyProgress replaces the entry for its date or appends a new one,
// keeping exactly one record per calendar date.
func UpsertDailyProgress(progress []model.DailyProgress, entry model.DailyProgress) []model.DailyProgress {
	for i, p := range progress {
		if p.Date == entry.Date {
			out := make([]model.DailyProgress, len(progress))
			copy(out, progress)
			out[i] = entry
			return out
		}
	}
	return append(append([]model.DailyProgress{}, progress...), entry)
}

// FindProgress returns the record for a date, if any.
func FindProgress(progress []model.DailyProgress, date string) (model.DailyProgress, bool) {
	for _, p := range progress {
		if p.Date == date {
			return p, true
		}
	}
	return model.DailyProgress{}, false
}
