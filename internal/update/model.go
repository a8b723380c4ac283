package update

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/lifesyncapp/lifesync/internal/auth"
	"github.com/lifesyncapp/lifesync/internal/journal"
	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/pomodoro"
	"github.com/lifesyncapp/lifesync/internal/reminder"
	"github.com/lifesyncapp/lifesync/internal/storage"
	"github.com/lifesyncapp/lifesync/internal/tracker"
)

type Screen string

const (
	ScreenLogin      Screen = "Login"
	ScreenSignup     Screen = "Signup"
	ScreenDashboard  Screen = "Dashboard"
	ScreenTasks      Screen = "Tasks"
	ScreenPomodoro   Screen = "Pomodoro"
	ScreenWater      Screen = "Water"
	ScreenJournal    Screen = "Journal"
	ScreenProgress   Screen = "Progress"
	ScreenMeditation Screen = "Meditation"
	ScreenSettings   Screen = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard  string
	Tasks      string
	Pomodoro   string
	Water      string
	Journal    string
	Progress   string
	Meditation string
	Settings   string
	Help       string
	Quit       string
}

// Deps holds the long-lived services the TUI drives. All of them are safe
// for use from the update loop; the reminder scheduler additionally runs its
// own goroutine.
type Deps struct {
	Registry  *auth.Registry
	Data      *storage.Data
	Tracker   *tracker.Engine
	Book      *journal.Book
	Reminders *reminder.Scheduler
	Logger    *zap.Logger
	Now       func() time.Time
}

type AuthField int

const (
	AuthFieldUsername AuthField = iota
	AuthFieldPassword
	AuthFieldName
	AuthFieldConfirm
)

type AuthState struct {
	Field AuthField
	Err   string
}

type TaskFilter string

const (
	TaskFilterAll       TaskFilter = "all"
	TaskFilterPending   TaskFilter = "pending"
	TaskFilterCompleted TaskFilter = "completed"
)

type TasksState struct {
	Tasks  []model.Task
	Cursor int
	Adding bool
	Filter TaskFilter
}

type TimerState struct {
	Machine pomodoro.Machine
	Stats   model.PomodoroStats
}

type WaterState struct {
	Log         model.WaterLog
	EnteringML  bool
	GoalReached bool
}

type JournalState struct {
	Entries []model.JournalEntry
	Drafts  []model.JournalDraft
	Cursor  int
	Editing bool
	// DraftID pins the autosave target for the open editor. Empty until the
	// first save of a new entry.
	DraftID string
	EntryID string
	Mood    model.Mood
	// FocusField 0 = title, 1 = content.
	FocusField int
	ShowDrafts bool
}

type SettingsField int

const (
	SettingsFieldWaterGoal SettingsField = iota
	SettingsFieldReminderInterval
	SettingsFieldQuietStart
	SettingsFieldQuietEnd
	SettingsFieldTheme
	SettingsFieldReminders
	settingsFieldCount
)

type SettingsState struct {
	Field            SettingsField
	Editing          bool
	ReminderEnabled  bool
	ConfirmingDelete bool
}

type ProgressState struct {
	Rows       []model.DailyProgress
	WindowDays int
}

type MeditationState struct {
	Cursor int
	// Playing is indexed in step with meditationSounds.
	Playing      []bool
	FocusMode    bool
	TimerMinutes int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Screen     Screen
	User       *model.User
	Auth       AuthState
	Tasks      TasksState
	Timer      TimerState
	Water      WaterState
	Journal    JournalState
	Settings   SettingsState
	Progress   ProgressState
	Meditation MeditationState
	Palette    CommandPaletteState

	Status       StatusBar
	Keys         GlobalKeyMap
	HelpVisible  bool
	Quitting     bool
	LastError    error
	LastReminder *reminder.Event

	deps Deps
	cfg  RuntimeConfig

	// Bubble components used for rich TUI controls
	usernameInput   textinput.Model
	passwordInput   textinput.Model
	nameInput       textinput.Model
	confirmInput    textinput.Model
	quickAddInput   textinput.Model
	commandInput    textinput.Model
	titleInput      textinput.Model
	contentArea     textarea.Model
	waterInput      textinput.Model
	settingsInput   textinput.Model
	deleteInput     textinput.Model
	progressTable   table.Model
	timerProgress   progress.Model
	previewViewport viewport.Model

	autosaver  *journal.Debouncer
	autosaveCh chan struct{}

	// timerGen invalidates stale pomodoro tick chains. Every start bumps it,
	// and ticks carrying an older generation are dropped.
	timerGen int
}

type SwitchScreenMsg struct {
	Screen Screen
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type PomodoroTickMsg struct {
	Gen int
}

type ReminderDueMsg struct {
	Event reminder.Event
}

type AutosaveDueMsg struct{}

func NewModel(deps Deps) Model {
	return NewModelWithConfig(deps, DefaultRuntimeConfig())
}

func NewModelWithConfig(deps Deps, cfg RuntimeConfig) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	m := Model{
		Screen: ScreenLogin,
		Timer: TimerState{
			Machine: pomodoro.New(),
		},
		Keys: GlobalKeyMap{
			Dashboard:  "1",
			Tasks:      "2",
			Pomodoro:   "3",
			Water:      "4",
			Journal:    "5",
			Progress:   "6",
			Meditation: "7",
			Settings:   "8",
			Help:       "?",
			Quit:       "q",
		},
		deps:       deps,
		cfg:        cfg,
		autosaver:  journal.NewDebouncer(time.Duration(cfg.AutosaveSecs) * time.Second),
		autosaveCh: make(chan struct{}, 1),
	}
	m.initBubbleComponents()

	// Resume a persisted session if one survives in storage.
	if user := deps.Registry.CurrentUser(); user != nil {
		m.enterSession(*user)
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.usernameInput = textinput.New()
	m.usernameInput.Prompt = "username> "
	m.usernameInput.CharLimit = 64
	m.usernameInput.Width = 32
	m.usernameInput.Focus()

	m.passwordInput = textinput.New()
	m.passwordInput.Prompt = "password> "
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.EchoCharacter = '*'
	m.passwordInput.CharLimit = 64
	m.passwordInput.Width = 32

	m.nameInput = textinput.New()
	m.nameInput.Prompt = "name> "
	m.nameInput.CharLimit = 64
	m.nameInput.Width = 32

	m.confirmInput = textinput.New()
	m.confirmInput.Prompt = "confirm> "
	m.confirmInput.EchoMode = textinput.EchoPassword
	m.confirmInput.EchoCharacter = '*'
	m.confirmInput.CharLimit = 64
	m.confirmInput.Width = 32

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.CharLimit = 128
	m.titleInput.Width = 42

	m.contentArea = textarea.New()
	m.contentArea.SetWidth(54)
	m.contentArea.SetHeight(10)
	m.contentArea.ShowLineNumbers = false
	m.contentArea.Placeholder = "Write your thoughts (markdown)"

	m.waterInput = textinput.New()
	m.waterInput.Prompt = "amount (ml)> "
	m.waterInput.CharLimit = 5
	m.waterInput.Width = 12

	m.settingsInput = textinput.New()
	m.settingsInput.Prompt = "value> "
	m.settingsInput.CharLimit = 16
	m.settingsInput.Width = 12

	m.deleteInput = textinput.New()
	m.deleteInput.Prompt = "type username> "
	m.deleteInput.CharLimit = 64
	m.deleteInput.Width = 32

	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Tasks", Width: 8},
		{Title: "Pomodoros", Width: 10},
		{Title: "Water", Width: 12},
		{Title: "Journal", Width: 8},
	}
	m.progressTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.timerProgress = progress.New(progress.WithDefaultGradient())
	m.previewViewport = viewport.New(54, 12)
}

func isKnownScreen(s Screen) bool {
	switch s {
	case ScreenLogin, ScreenSignup, ScreenDashboard, ScreenTasks, ScreenPomodoro,
		ScreenWater, ScreenJournal, ScreenProgress, ScreenMeditation, ScreenSettings:
		return true
	default:
		return false
	}
}

// loggedIn reports whether an authenticated session is active.
func (m Model) loggedIn() bool { return m.User != nil }

func (m Model) today() string {
	return model.FormatDate(m.deps.Now())
}
