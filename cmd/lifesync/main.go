package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lifesyncapp/lifesync/internal/auth"
	"github.com/lifesyncapp/lifesync/internal/journal"
	"github.com/lifesyncapp/lifesync/internal/reminder"
	"github.com/lifesyncapp/lifesync/internal/storage"
	"github.com/lifesyncapp/lifesync/internal/tracker"
	"github.com/lifesyncapp/lifesync/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lifesync failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	logger, err := newLogger(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logger.Sync()

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	data := storage.NewData(store)

	registry, err := auth.NewRegistry(data, logger)
	if err != nil {
		return fmt.Errorf("init user registry: %w", err)
	}

	deps := update.Deps{
		Registry: registry,
		Data:     data,
		Tracker:  tracker.NewEngine(data, logger),
		Book:     journal.NewBook(data),
		Logger:   logger,
	}

	deps.Reminders = reminder.NewScheduler(reminder.Config{
		Snapshot: reminderSnapshot(registry, data, deps.Tracker),
		Notifier: reminder.NewLogNotifier(logger),
		Logger:   logger,
		Buffer:   cfg.ReminderBuffer,
	})
	if err := deps.Reminders.Start(); err != nil {
		return fmt.Errorf("start reminder scheduler: %w", err)
	}
	defer deps.Reminders.Stop()

	program := tea.NewProgram(update.NewModelWithConfig(deps, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// reminderSnapshot reads the reminder inputs straight off storage so the
// scheduler goroutine never touches TUI state. The water log goes through
// the rollover engine first, so a check across midnight sees today's zeroed
// intake instead of yesterday's total.
func reminderSnapshot(registry *auth.Registry, data *storage.Data, engine *tracker.Engine) reminder.SnapshotFunc {
	return func() (reminder.Snapshot, bool) {
		user := registry.CurrentUser()
		if user == nil {
			return reminder.Snapshot{}, false
		}
		enabled, err := data.ReminderEnabled(user.ID)
		if err != nil {
			return reminder.Snapshot{}, false
		}
		water, _, err := engine.EnsureCurrent(user.ID, user.Preferences.WaterGoalML)
		if err != nil {
			return reminder.Snapshot{}, false
		}
		return reminder.Snapshot{
			Enabled:      enabled,
			Preferences:  user.Preferences,
			WaterMLToday: water.TodayML,
			Email:        user.Email,
			Phone:        user.Phone,
		}, true
	}
}

func openStore(cfg update.RuntimeConfig, logger *zap.Logger) (storage.Store, error) {
	if cfg.DBPath == "" {
		return storage.NewMemoryStore(logger), nil
	}
	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	return store, nil
}

func newLogger(path string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	// The TUI owns stdout and stderr, so logs go to a file.
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}
