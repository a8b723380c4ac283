// Package export assembles a user's complete data set into a single JSON
// document suitable for download or backup.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/storage"
)

// Snapshot is the exported document. The key set and spelling are stable:
// external tooling imports these files.
type Snapshot struct {
	User          *model.User           `json:"user"`
	Tasks         []model.Task          `json:"tasks"`
	Journal       []model.JournalEntry  `json:"journal"`
	WaterLog      model.WaterLog        `json:"waterLog"`
	PomodoroStats model.PomodoroStats   `json:"pomodoroStats"`
	DailyProgress []model.DailyProgress `json:"dailyProgress"`
}

// Build collects the user's datasets from storage into a Snapshot. The user
// is exported as-is, password included: accounts store plaintext passwords
// and the export file reproduces the in-memory record exactly.
func Build(data *storage.Data, user *model.User, today string) (*Snapshot, error) {
	if user == nil {
		return nil, fmt.Errorf("export: no active user")
	}

	tasks, err := data.Tasks(user.ID)
	if err != nil {
		return nil, fmt.Errorf("export: load tasks: %w", err)
	}
	journal, err := data.JournalEntries(user.ID)
	if err != nil {
		return nil, fmt.Errorf("export: load journal: %w", err)
	}
	water, err := data.WaterLog(user.ID, today)
	if err != nil {
		return nil, fmt.Errorf("export: load water log: %w", err)
	}
	pomo, err := data.PomodoroStats(user.ID, today)
	if err != nil {
		return nil, fmt.Errorf("export: load pomodoro stats: %w", err)
	}
	progress, err := data.DailyProgress(user.ID)
	if err != nil {
		return nil, fmt.Errorf("export: load daily progress: %w", err)
	}

	u := *user

	if tasks == nil {
		tasks = []model.Task{}
	}
	if journal == nil {
		journal = []model.JournalEntry{}
	}
	if progress == nil {
		progress = []model.DailyProgress{}
	}

	return &Snapshot{
		User:          &u,
		Tasks:         tasks,
		Journal:       journal,
		WaterLog:      water,
		PomodoroStats: pomo,
		DailyProgress: progress,
	}, nil
}

// Marshal renders the snapshot as indented JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal: %w", err)
	}
	return b, nil
}

// Filename returns the conventional export file name for the given ISO date,
// e.g. lifesync-data-2025-11-05.json.
func Filename(date string) string {
	return fmt.Sprintf("lifesync-data-%s.json", date)
}

// WriteFile marshals the snapshot and writes it under dir using the
// conventional file name. It returns the full path written.
func WriteFile(dir string, s *Snapshot, date string) (string, error) {
	b, err := s.Marshal()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, Filename(date))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}
