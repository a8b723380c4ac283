package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifesyncapp/lifesync/internal/commands"
	"github.com/lifesyncapp/lifesync/internal/tracker"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

var showScreens = map[string]Screen{
	"tasks":      ScreenTasks,
	"water":      ScreenWater,
	"pomodoro":   ScreenPomodoro,
	"journal":    ScreenJournal,
	"progress":   ScreenProgress,
	"meditation": ScreenMeditation,
	"settings":   ScreenSettings,
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Task: func(a commands.TaskArgs) (commands.Result, error) {
			m.Screen = ScreenTasks
			m.addTask(a.Text, a.Priority)
			return commands.Result{Message: fmt.Sprintf("task added: %s", a.Text)}, nil
		},
		Water: func(a commands.WaterArgs) (commands.Result, error) {
			amount := a.AmountML
			if amount == 0 {
				amount = tracker.GlassML
			}
			m.logWater(amount)
			return commands.Result{Message: fmt.Sprintf("logged %dml of water", amount)}, nil
		},
		Mode: func(a commands.ModeArgs) (commands.Result, error) {
			machine, err := m.Timer.Machine.ChangeMode(a.Mode)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.Timer.Machine = machine
			m.Screen = ScreenPomodoro
			return commands.Result{Message: "timer mode: " + machine.Mode.Label()}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			screen, ok := showScreens[a.Subject]
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown subject: " + a.Subject}
			}
			m.Screen = screen
			if screen == ScreenProgress {
				m.syncProgressTable()
			}
			return commands.Result{Message: "showing " + a.Subject}, nil
		},
		Export: func() (commands.Result, error) {
			m.exportData()
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}
