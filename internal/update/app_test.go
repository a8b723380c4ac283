package update

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifesyncapp/lifesync/internal/auth"
	"github.com/lifesyncapp/lifesync/internal/journal"
	"github.com/lifesyncapp/lifesync/internal/pomodoro"
	"github.com/lifesyncapp/lifesync/internal/reminder"
	"github.com/lifesyncapp/lifesync/internal/storage"
	"github.com/lifesyncapp/lifesync/internal/tracker"
)

func reminderEvent() reminder.Event {
	return reminder.Event{FiredAt: testClock(), Message: reminder.DefaultMessage}
}

var testClock = func() time.Time {
	return time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC)
}

func newTestModel(t *testing.T) (Model, *storage.Data) {
	t.Helper()
	data := storage.NewData(storage.NewMemoryStore(nil))
	registry, err := auth.NewRegistryAt(data, nil, testClock)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	deps := Deps{
		Registry: registry,
		Data:     data,
		Tracker:  tracker.NewEngineAt(data, nil, testClock),
		Book:     journal.NewBookAt(data, testClock),
		Now:      testClock,
	}
	cfg := DefaultRuntimeConfig()
	cfg.ExportDir = t.TempDir()
	return NewModelWithConfig(deps, cfg), data
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func login(t *testing.T, m Model) Model {
	t.Helper()
	m = press(t, m,
		keyRunes("user1"),
		tea.KeyMsg{Type: tea.KeyTab},
		keyRunes("password123"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if !m.loggedIn() {
		t.Fatalf("login failed: %+v", m.Status)
	}
	return m
}

func TestNewModelStartsAtLogin(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Screen != ScreenLogin {
		t.Fatalf("initial screen = %s", m.Screen)
	}
	if m.loggedIn() {
		t.Fatal("model logged in without a session")
	}
}

func TestLoginHappyPath(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	if m.Screen != ScreenDashboard {
		t.Fatalf("screen after login = %s", m.Screen)
	}
	if m.User.Username != "user1" {
		t.Fatalf("user = %q", m.User.Username)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m,
		keyRunes("user1"),
		tea.KeyMsg{Type: tea.KeyTab},
		keyRunes("nope"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.loggedIn() {
		t.Fatal("logged in with wrong password")
	}
	if m.Auth.Err == "" {
		t.Fatal("no auth error surfaced")
	}
}

func TestSignupFlow(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.Screen != ScreenSignup {
		t.Fatalf("screen = %s, want signup", m.Screen)
	}
	m = press(t, m,
		keyRunes("newperson"),
		tea.KeyMsg{Type: tea.KeyTab},
		keyRunes("secret99"),
		tea.KeyMsg{Type: tea.KeyTab},
		keyRunes("secret99"),
		tea.KeyMsg{Type: tea.KeyTab},
		keyRunes("New Person"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if !m.loggedIn() {
		t.Fatalf("signup did not log in: %+v", m.Auth)
	}
	if m.User.Name != "New Person" {
		t.Fatalf("name = %q", m.User.Name)
	}
}

func TestScreenSwitchKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)

	m = press(t, m, keyRunes("2"))
	if m.Screen != ScreenTasks {
		t.Fatalf("screen = %s, want tasks", m.Screen)
	}
	m = press(t, m, keyRunes("5"))
	if m.Screen != ScreenJournal {
		t.Fatalf("screen = %s, want journal", m.Screen)
	}
	m = press(t, m, keyRunes("7"))
	if m.Screen != ScreenMeditation {
		t.Fatalf("screen = %s, want meditation", m.Screen)
	}
	m = press(t, m, keyRunes("8"))
	if m.Screen != ScreenSettings {
		t.Fatalf("screen = %s, want settings", m.Screen)
	}
	m = press(t, m, keyRunes("1"))
	if m.Screen != ScreenDashboard {
		t.Fatalf("screen = %s, want dashboard", m.Screen)
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	updated, cmd := m.Update(keyRunes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("quitting flag not set")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestTaskAddAndToggle(t *testing.T) {
	m, data := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("2"), keyRunes("a"), keyRunes("write report"), tea.KeyMsg{Type: tea.KeyEnter})

	if len(m.Tasks.Tasks) != 1 {
		t.Fatalf("tasks = %d", len(m.Tasks.Tasks))
	}
	if m.Tasks.Tasks[0].Text != "write report" {
		t.Fatalf("task text = %q", m.Tasks.Tasks[0].Text)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeySpace})
	if !m.Tasks.Tasks[0].Completed {
		t.Fatal("task not completed")
	}
	if m.User.Stats.TotalTasksCompleted == 0 {
		t.Fatal("total completed stat not bumped")
	}

	stored, err := data.Tasks(m.User.ID)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(stored) != 1 || !stored[0].Completed {
		t.Fatalf("persisted tasks = %+v", stored)
	}
}

func TestTaskFilterCycle(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m,
		keyRunes("2"),
		keyRunes("a"),
		keyRunes("one"), tea.KeyMsg{Type: tea.KeyEnter},
		keyRunes("two"), tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyEsc},
		tea.KeyMsg{Type: tea.KeySpace},
	)

	if m.Tasks.Filter != TaskFilterAll {
		t.Fatalf("initial filter = %s", m.Tasks.Filter)
	}
	m = press(t, m, keyRunes("f"))
	if m.Tasks.Filter != TaskFilterPending {
		t.Fatalf("filter after one cycle = %s", m.Tasks.Filter)
	}
	visible := m.visibleTasks()
	if len(visible) != 1 || m.Tasks.Tasks[visible[0]].Text != "one" {
		t.Fatalf("pending view = %v", visible)
	}
	m = press(t, m, keyRunes("f"))
	if m.Tasks.Filter != TaskFilterCompleted {
		t.Fatalf("filter after two cycles = %s", m.Tasks.Filter)
	}
	visible = m.visibleTasks()
	if len(visible) != 1 || m.Tasks.Tasks[visible[0]].Text != "two" {
		t.Fatalf("completed view = %v", visible)
	}
	m = press(t, m, keyRunes("f"))
	if m.Tasks.Filter != TaskFilterAll {
		t.Fatalf("filter after full cycle = %s", m.Tasks.Filter)
	}
}

func TestProgressWindowToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("6"))

	if m.Progress.WindowDays != 7 {
		t.Fatalf("initial window = %d", m.Progress.WindowDays)
	}
	m = press(t, m, keyRunes("w"))
	if m.Progress.WindowDays != 30 {
		t.Fatalf("window after toggle = %d", m.Progress.WindowDays)
	}
	m = press(t, m, keyRunes("w"))
	if m.Progress.WindowDays != 7 {
		t.Fatalf("window after second toggle = %d", m.Progress.WindowDays)
	}
}

func TestWaterGlassKeyPersists(t *testing.T) {
	m, data := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("4"), keyRunes("g"), keyRunes("g"))

	if m.Water.Log.TodayML != 2*tracker.GlassML {
		t.Fatalf("water = %dml", m.Water.Log.TodayML)
	}
	stored, err := data.WaterLog(m.User.ID, m.today())
	if err != nil {
		t.Fatalf("load water: %v", err)
	}
	if stored.TodayML != 2*tracker.GlassML {
		t.Fatalf("persisted water = %dml", stored.TodayML)
	}
}

func TestWaterCustomAmountReachesGoal(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("4"), keyRunes("c"), keyRunes("2000"), tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Water.GoalReached {
		t.Fatal("goal not marked reached")
	}
	if !strings.Contains(m.Status.Text, "goal reached") {
		t.Fatalf("status = %q", m.Status.Text)
	}
}

func TestPomodoroTickCountsFocusSession(t *testing.T) {
	m, data := newTestModel(t)
	m = login(t, m)
	m.Timer.Machine = m.Timer.Machine.Start()
	m.Timer.Machine.RemainingSec = 1

	m = press(t, m, PomodoroTickMsg{})
	if m.Timer.Stats.SessionsToday != 1 {
		t.Fatalf("sessions today = %d", m.Timer.Stats.SessionsToday)
	}
	if m.Timer.Machine.Mode != pomodoro.ModeShortBreak {
		t.Fatalf("mode = %s", m.Timer.Machine.Mode)
	}
	if m.User.Stats.TotalPomodoroSessions != 1 {
		t.Fatalf("total sessions = %d", m.User.Stats.TotalPomodoroSessions)
	}

	stored, err := data.PomodoroStats(m.User.ID, m.today())
	if err != nil {
		t.Fatalf("load stats: %v", err)
	}
	if stored.SessionsToday != 1 {
		t.Fatalf("persisted sessions = %d", stored.SessionsToday)
	}
}

func TestPomodoroStaleTickIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("3"),
		tea.KeyMsg{Type: tea.KeySpace}, // start
		tea.KeyMsg{Type: tea.KeySpace}, // pause
		tea.KeyMsg{Type: tea.KeySpace}, // restart within the same second
	)

	before := m.Timer.Machine.RemainingSec
	m = press(t, m, PomodoroTickMsg{Gen: 1})
	if m.Timer.Machine.RemainingSec != before {
		t.Fatalf("stale tick advanced the timer: %d -> %d", before, m.Timer.Machine.RemainingSec)
	}
	m = press(t, m, PomodoroTickMsg{Gen: 2})
	if m.Timer.Machine.RemainingSec != before-1 {
		t.Fatalf("live tick did not advance the timer: %d -> %d", before, m.Timer.Machine.RemainingSec)
	}
}

func TestMeditationSoundToggleAndStopAll(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("7"), tea.KeyMsg{Type: tea.KeySpace})

	if !m.Meditation.Playing[0] {
		t.Fatal("first sound not playing after toggle")
	}
	m = press(t, m, keyRunes("j"), tea.KeyMsg{Type: tea.KeySpace})
	if !m.Meditation.Playing[1] {
		t.Fatal("second sound not playing after toggle")
	}

	m = press(t, m, keyRunes("S"))
	for i, playing := range m.Meditation.Playing {
		if playing {
			t.Fatalf("sound %d still playing after stop all", i)
		}
	}
}

func TestMeditationFocusModeSwallowsKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("7"), keyRunes("f"))

	if !m.Meditation.FocusMode {
		t.Fatal("focus mode not enabled")
	}
	m = press(t, m, keyRunes("1"))
	if m.Screen != ScreenMeditation {
		t.Fatalf("navigation escaped focus mode: screen = %s", m.Screen)
	}
	if m.Meditation.FocusMode {
		t.Fatal("first key did not exit focus mode")
	}
	m = press(t, m, keyRunes("1"))
	if m.Screen != ScreenDashboard {
		t.Fatalf("screen = %s, want dashboard", m.Screen)
	}
}

func TestMeditationTimerMinutesClamped(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("7"))

	if m.Meditation.TimerMinutes != 20 {
		t.Fatalf("default minutes = %d", m.Meditation.TimerMinutes)
	}
	m = press(t, m, keyRunes("+"), keyRunes("+"))
	if m.Meditation.TimerMinutes != 22 {
		t.Fatalf("minutes after increment = %d", m.Meditation.TimerMinutes)
	}
	m.Meditation.TimerMinutes = 1
	m = press(t, m, keyRunes("-"))
	if m.Meditation.TimerMinutes != 1 {
		t.Fatalf("minutes dropped below floor: %d", m.Meditation.TimerMinutes)
	}
}

func TestPaletteWaterCommand(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("/"), keyRunes("water 500"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.Water.Log.TodayML != 500 {
		t.Fatalf("water = %dml", m.Water.Log.TodayML)
	}
	if m.Palette.Active {
		t.Fatal("palette still active after execute")
	}
}

func TestPaletteShowCommand(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("/"), keyRunes("show journal"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen != ScreenJournal {
		t.Fatalf("screen = %s", m.Screen)
	}
}

func TestAutosaveKeepsStableDraft(t *testing.T) {
	m, data := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("5"), keyRunes("n"), keyRunes("first thoughts"))

	m = press(t, m, AutosaveDueMsg{})
	drafts, err := data.JournalDrafts(m.User.ID)
	if err != nil {
		t.Fatalf("load drafts: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("drafts = %d", len(drafts))
	}
	firstID := drafts[0].ID

	m = press(t, m, keyRunes(" and more"), AutosaveDueMsg{})
	drafts, err = data.JournalDrafts(m.User.ID)
	if err != nil {
		t.Fatalf("reload drafts: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("autosave duplicated drafts: %d", len(drafts))
	}
	if drafts[0].ID != firstID {
		t.Fatalf("draft id changed: %s -> %s", firstID, drafts[0].ID)
	}
	if !strings.Contains(drafts[0].Content, "and more") {
		t.Fatalf("draft content = %q", drafts[0].Content)
	}
}

func TestPublishEntryFromEditor(t *testing.T) {
	m, data := newTestModel(t)
	m = login(t, m)
	m = press(t, m,
		keyRunes("5"),
		keyRunes("n"),
		keyRunes("a good day"),
		AutosaveDueMsg{},
		tea.KeyMsg{Type: tea.KeyCtrlS},
	)

	if m.Journal.Editing {
		t.Fatal("editor still open after publish")
	}
	entries, err := data.JournalEntries(m.User.ID)
	if err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].Date != "2025-11-05" {
		t.Fatalf("entry date = %s", entries[0].Date)
	}
	drafts, err := data.JournalDrafts(m.User.ID)
	if err != nil {
		t.Fatalf("load drafts: %v", err)
	}
	if len(drafts) != 0 {
		t.Fatalf("draft survived publish: %d", len(drafts))
	}
}

func TestSettingsExportWritesFile(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("8"), keyRunes("x"))

	path := filepath.Join(m.cfg.ExportDir, "lifesync-data-2025-11-05.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file missing: %v (status %q)", err, m.Status.Text)
	}
}

func TestSettingsThemeToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("8"),
		keyRunes("j"), keyRunes("j"), keyRunes("j"), keyRunes("j"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.User.Preferences.Theme != "dark" {
		t.Fatalf("theme = %q", m.User.Preferences.Theme)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	m, data := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("8"), keyRunes("L"))

	if m.loggedIn() {
		t.Fatal("still logged in")
	}
	if m.Screen != ScreenLogin {
		t.Fatalf("screen = %s", m.Screen)
	}
	current, err := data.CurrentUser()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if current != nil {
		t.Fatal("session survived logout")
	}
}

func TestDeleteAccountRequiresUsernameMatch(t *testing.T) {
	m, data := newTestModel(t)
	m = login(t, m)
	m = press(t, m, keyRunes("8"), keyRunes("D"), keyRunes("wrongname"), tea.KeyMsg{Type: tea.KeyEnter})

	if !m.loggedIn() {
		t.Fatal("account deleted despite username mismatch")
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %q", m.Status.Text)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, keyRunes("D"), keyRunes("user1"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.loggedIn() {
		t.Fatal("account not deleted on match")
	}
	users, err := data.Users()
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	for _, u := range users {
		if u.Username == "user1" {
			t.Fatal("user1 still present after deletion")
		}
	}
}

func TestReminderDueMsgSetsBanner(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m = press(t, m, ReminderDueMsg{Event: reminderEvent()})
	if m.LastReminder == nil {
		t.Fatal("reminder banner not set")
	}
	if m.Status.Text == "" {
		t.Fatal("reminder status not set")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(t, m)
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "Dashboard") {
		t.Fatalf("expected screen name in output: %q", out)
	}
	if !strings.Contains(out, "user1") {
		t.Fatalf("expected username in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
}
