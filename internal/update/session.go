package update

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/pomodoro"
	"github.com/lifesyncapp/lifesync/internal/tracker"
)

// enterSession loads the user's datasets, rolls day-boundary state forward,
// and lands on the dashboard. Called after login, signup, or session resume.
func (m *Model) enterSession(user model.User) {
	m.User = &user
	m.Screen = ScreenDashboard
	m.Auth = AuthState{}
	m.resetAuthInputs()

	if updated, err := m.deps.Registry.RecordActivity(); err == nil {
		m.User = &updated
	} else {
		m.deps.Logger.Warn("record activity failed", zap.Error(err))
	}

	if err := m.loadUserData(); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}

	if m.deps.Reminders != nil {
		m.deps.Reminders.ResetThrottle()
		m.deps.Reminders.CheckNow()
	}
	m.Status = StatusBar{Text: fmt.Sprintf("welcome back, %s", m.User.Name), IsError: false}
}

func (m *Model) loadUserData() error {
	userID := m.User.ID
	goal := m.User.Preferences.WaterGoalML

	water, pomo, err := m.deps.Tracker.EnsureCurrent(userID, goal)
	if err != nil {
		return fmt.Errorf("update: roll day state: %w", err)
	}
	m.Water = WaterState{Log: water, GoalReached: water.TodayML >= goal}
	m.Timer = TimerState{Machine: pomodoro.New(), Stats: pomo}

	tasks, err := m.deps.Data.Tasks(userID)
	if err != nil {
		return fmt.Errorf("update: load tasks: %w", err)
	}
	m.Tasks = TasksState{Tasks: tasks, Filter: TaskFilterAll}

	entries, err := m.deps.Book.Entries(userID)
	if err != nil {
		return fmt.Errorf("update: load journal: %w", err)
	}
	drafts, err := m.deps.Book.Drafts(userID)
	if err != nil {
		return fmt.Errorf("update: load drafts: %w", err)
	}
	m.Journal = JournalState{Entries: entries, Drafts: drafts}

	progress, err := m.deps.Data.DailyProgress(userID)
	if err != nil {
		return fmt.Errorf("update: load progress: %w", err)
	}
	m.Progress = ProgressState{Rows: progress, WindowDays: 7}
	m.Meditation = newMeditationState()

	enabled, err := m.deps.Data.ReminderEnabled(userID)
	if err != nil {
		return fmt.Errorf("update: load reminder flag: %w", err)
	}
	m.Settings = SettingsState{ReminderEnabled: enabled}
	return nil
}

// leaveSession stops the timers and clears per-user state without touching
// storage. The registry has already cleared the persisted session.
func (m *Model) leaveSession() {
	m.autosaver.Stop()
	m.User = nil
	m.Tasks = TasksState{}
	m.Timer = TimerState{Machine: pomodoro.New()}
	m.Water = WaterState{}
	m.Journal = JournalState{}
	m.Settings = SettingsState{}
	m.Progress = ProgressState{}
	m.Meditation = MeditationState{}
	m.LastReminder = nil
	m.Screen = ScreenLogin
	m.resetAuthInputs()
}

func (m *Model) resetAuthInputs() {
	m.usernameInput.SetValue("")
	m.passwordInput.SetValue("")
	m.nameInput.SetValue("")
	m.confirmInput.SetValue("")
	m.usernameInput.Focus()
	m.passwordInput.Blur()
	m.nameInput.Blur()
	m.confirmInput.Blur()
	m.Auth.Field = AuthFieldUsername
}

// syncDailyProgress recomputes today's progress row from the current
// in-memory state and persists it.
func (m *Model) syncDailyProgress() {
	if !m.loggedIn() {
		return
	}
	row := tracker.BuildDailyProgress(m.today(), m.Tasks.Tasks, m.Timer.Stats, m.Water.Log, m.User.Preferences.WaterGoalML, m.Journal.Entries)
	m.Progress.Rows = tracker.UpsertDailyProgress(m.Progress.Rows, row)
	if err := m.deps.Data.SaveDailyProgress(m.User.ID, m.Progress.Rows); err != nil {
		m.deps.Logger.Warn("persist daily progress failed", zap.Error(err))
	}
}

func (m *Model) persistTasks() {
	if err := m.deps.Data.SaveTasks(m.User.ID, m.Tasks.Tasks); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.syncDailyProgress()
}

func (m *Model) persistWater() {
	if err := m.deps.Data.SaveWaterLog(m.User.ID, m.Water.Log); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.syncDailyProgress()
}

func (m *Model) persistPomodoroStats() {
	if err := m.deps.Data.SavePomodoroStats(m.User.ID, m.Timer.Stats); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.syncDailyProgress()
}

func (m *Model) bumpStats(change func(*model.Stats)) {
	if !m.loggedIn() {
		return
	}
	stats := m.User.Stats
	change(&stats)
	updated, err := m.deps.Registry.UpdateUser(modelStatsUpdate(stats))
	if err != nil {
		m.deps.Logger.Warn("persist user stats failed", zap.Error(err))
		return
	}
	m.User = &updated
}
