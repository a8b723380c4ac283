package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifesyncapp/lifesync/internal/reminder"
	"github.com/lifesyncapp/lifesync/internal/views"
)

func waitForReminderCmd(ch <-chan reminder.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func waitForAutosaveCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return AutosaveDueMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, waitForAutosaveCmd(m.autosaveCh)}
	if m.deps.Reminders != nil {
		cmds = append(cmds, waitForReminderCmd(m.deps.Reminders.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			m.autosaver.Stop()
			return m, tea.Quit
		}

		if !m.loggedIn() {
			return m.handleAuthKey(typed)
		}

		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}

		// Screens with an open text capture consume keys before global
		// navigation.
		if m.captureActive() {
			return m.routeScreenKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Dashboard:
			m.Screen = ScreenDashboard
			return m, nil
		case m.Keys.Tasks:
			m.Screen = ScreenTasks
			return m, nil
		case m.Keys.Pomodoro:
			m.Screen = ScreenPomodoro
			return m, nil
		case m.Keys.Water:
			m.Screen = ScreenWater
			return m, nil
		case m.Keys.Journal:
			m.Screen = ScreenJournal
			return m, nil
		case m.Keys.Progress:
			m.Screen = ScreenProgress
			m.syncProgressTable()
			return m, nil
		case m.Keys.Meditation:
			m.Screen = ScreenMeditation
			return m, nil
		case m.Keys.Settings:
			m.Screen = ScreenSettings
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			m.autosaver.Stop()
			return m, tea.Quit
		}

		return m.routeScreenKey(typed)

	case SwitchScreenMsg:
		if isKnownScreen(typed.Screen) && m.screenAllowed(typed.Screen) {
			m.Screen = typed.Screen
			if typed.Screen == ScreenProgress {
				m.syncProgressTable()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case PomodoroTickMsg:
		return m.onPomodoroTick(typed.Gen)
	case ReminderDueMsg:
		ev := typed.Event
		m.LastReminder = &ev
		m.Status = StatusBar{Text: ev.Message, IsError: false}
		if m.deps.Reminders != nil {
			return m, waitForReminderCmd(m.deps.Reminders.C())
		}
		return m, nil
	case AutosaveDueMsg:
		m.handleAutosaveDue()
		return m, waitForAutosaveCmd(m.autosaveCh)
	}

	return m, nil
}

// captureActive reports whether a text input currently owns the keyboard.
func (m Model) captureActive() bool {
	switch m.Screen {
	case ScreenTasks:
		return m.Tasks.Adding
	case ScreenJournal:
		return m.Journal.Editing
	case ScreenWater:
		return m.Water.EnteringML
	case ScreenMeditation:
		// Focus mode swallows every key so navigation cannot tear the
		// overlay down by accident.
		return m.Meditation.FocusMode
	case ScreenSettings:
		return m.Settings.Editing || m.Settings.ConfirmingDelete
	default:
		return false
	}
}

// screenAllowed blocks the authenticated screens while logged out.
func (m Model) screenAllowed(s Screen) bool {
	if m.loggedIn() {
		return s != ScreenLogin && s != ScreenSignup
	}
	return s == ScreenLogin || s == ScreenSignup
}

func (m Model) routeScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Screen {
	case ScreenDashboard:
		return m.handleDashboardKey(msg)
	case ScreenTasks:
		return m.handleTasksKey(msg)
	case ScreenPomodoro:
		return m.handlePomodoroKey(msg)
	case ScreenWater:
		return m.handleWaterKey(msg)
	case ScreenJournal:
		return m.handleJournalKey(msg)
	case ScreenProgress:
		return m.handleProgressKey(msg)
	case ScreenMeditation:
		return m.handleMeditationKey(msg)
	case ScreenSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.Screen {
	case ScreenLogin, ScreenSignup:
		leftPane = m.renderAuthView()
		rightPane = m.renderHelpIfVisible()
	case ScreenDashboard:
		leftPane = m.renderDashboardView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ScreenTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ScreenPomodoro:
		leftPane = m.renderPomodoroView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ScreenWater:
		leftPane = m.renderWaterView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ScreenJournal:
		leftPane = m.renderJournalView()
		rightPane = m.renderJournalSidePane() + m.renderHelpIfVisible()
	case ScreenProgress:
		leftPane = m.renderProgressView()
		rightPane = m.renderHelpIfVisible()
	case ScreenMeditation:
		leftPane = m.renderMeditationView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ScreenSettings:
		leftPane = m.renderSettingsView()
		rightPane = m.renderHelpIfVisible()
	}

	notification := ""
	if m.LastReminder != nil {
		notification = fmt.Sprintf("reminder: %s [g]drink 250ml @ %s", m.LastReminder.Message, m.LastReminder.FiredAt.Format("15:04"))
	}

	username := "(guest)"
	theme := "light"
	if m.loggedIn() {
		username = m.User.Username
		theme = m.User.Preferences.Theme
	}

	footer := "keys: 1 dash | 2 tasks | 3 timer | 4 water | 5 journal | 6 progress | 7 meditate | 8 settings | / cmd | ? help | q quit"
	if !m.loggedIn() {
		footer = "keys: tab next field | enter submit | ctrl+s switch login/signup | ctrl+c quit"
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("lifesync | %s | %s", m.Screen, username),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notification,
		Footer:       footer,
		Theme:        theme,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentScreen: string(m.Screen),
		Bindings:      m.screenBindings(),
	})
}

func (m Model) screenBindings() []string {
	switch m.Screen {
	case ScreenTasks:
		return []string{"a add", "j/k move", "space toggle", "p priority", "f filter", "d delete"}
	case ScreenPomodoro:
		return []string{"space start/pause", "r reset", "m cycle mode"}
	case ScreenWater:
		return []string{"g glass +250ml", "c custom amount", "R reset today"}
	case ScreenJournal:
		return []string{"n new entry", "e edit", "j/k move", "d delete", "tab entries/drafts"}
	case ScreenProgress:
		return []string{"w 7/30 day window", "j/k scroll history"}
	case ScreenMeditation:
		return []string{"j/k move", "space play/pause", "S stop all", "f focus mode", "+/- timer minutes"}
	case ScreenSettings:
		return []string{"j/k field", "enter edit/toggle", "x export", "L logout", "D delete account"}
	default:
		return []string{"1-8 switch screens", "/ command palette"}
	}
}
