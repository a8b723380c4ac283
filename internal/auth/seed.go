package auth

import "github.com/lifesyncapp/lifesync/internal/model"

// SeedUsers are the demo accounts installed on first run, matching the data
// set shipped with earlier releases so existing exports stay comparable.
func SeedUsers() []model.User {
	return []model.User{
		{
			ID:          "user1",
			Username:    "user1",
			Password:    "password123",
			Name:        "User One",
			CreatedAt:   "2025-10-25",
			Preferences: model.DefaultPreferences(),
			Stats: model.Stats{
				DaysActive:            []string{"2025-10-25", "2025-10-26", "2025-10-27", "2025-10-28", "2025-10-29"},
				CurrentStreak:         5,
				LongestStreak:         5,
				TotalTasksCompleted:   12,
				TotalPomodoroSessions: 8,
				TotalJournalEntries:   6,
			},
		},
		{
			ID:          "user2",
			Username:    "user2",
			Password:    "demo123",
			Name:        "User Two",
			CreatedAt:   "2025-10-28",
			Preferences: model.DefaultPreferences(),
			Stats: model.Stats{
				DaysActive:            []string{"2025-10-28", "2025-10-29", "2025-10-30"},
				CurrentStreak:         3,
				LongestStreak:         3,
				TotalTasksCompleted:   5,
				TotalPomodoroSessions: 3,
				TotalJournalEntries:   2,
			},
		},
		{
			ID:          "admin",
			Username:    "admin",
			Password:    "admin123",
			Name:        "Admin User",
			CreatedAt:   "2025-10-15",
			Preferences: model.DefaultPreferences(),
			Stats: model.Stats{
				DaysActive: []string{
					"2025-10-15", "2025-10-16", "2025-10-17", "2025-10-18", "2025-10-19",
					"2025-10-20", "2025-10-21", "2025-10-22", "2025-10-23", "2025-10-24",
				},
				CurrentStreak:         10,
				LongestStreak:         10,
				TotalTasksCompleted:   25,
				TotalPomodoroSessions: 20,
				TotalJournalEntries:   15,
			},
		},
	}
}
