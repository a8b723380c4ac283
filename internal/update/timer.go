package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/pomodoro"
	"github.com/lifesyncapp/lifesync/internal/views"
)

func pomodoroTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return PomodoroTickMsg{Gen: gen} })
}

var modeCycle = map[pomodoro.Mode]pomodoro.Mode{
	pomodoro.ModeFocus:      pomodoro.ModeShortBreak,
	pomodoro.ModeShortBreak: pomodoro.ModeLongBreak,
	pomodoro.ModeLongBreak:  pomodoro.ModeFocus,
}

func (m Model) handlePomodoroKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		wasRunning := m.Timer.Machine.Running
		m.Timer.Machine = m.Timer.Machine.Toggle()
		if wasRunning {
			m.Status = StatusBar{Text: "timer paused", IsError: false}
			return m, nil
		}
		m.Status = StatusBar{Text: "timer running", IsError: false}
		// A fresh generation orphans any tick chain left over from a
		// pause/restart inside the same second.
		m.timerGen++
		return m, pomodoroTickCmd(m.timerGen)
	case "r":
		m.Timer.Machine = m.Timer.Machine.Reset()
		m.Status = StatusBar{Text: "timer reset", IsError: false}
		return m, nil
	case "m":
		next := modeCycle[m.Timer.Machine.Mode]
		machine, err := m.Timer.Machine.ChangeMode(next)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Timer.Machine = machine
		m.Status = StatusBar{Text: "mode: " + machine.Mode.Label(), IsError: false}
		return m, nil
	}
	return m, nil
}

func (m Model) onPomodoroTick(gen int) (tea.Model, tea.Cmd) {
	if gen != m.timerGen || !m.Timer.Machine.Running {
		return m, nil
	}
	machine, completedFocus := m.Timer.Machine.Tick()
	m.Timer.Machine = machine
	if completedFocus {
		m.Timer.Stats.SessionsToday++
		m.persistPomodoroStats()
		m.bumpStats(func(s *model.Stats) { s.TotalPomodoroSessions++ })
		m.Status = StatusBar{Text: "focus session complete, take a break", IsError: false}
	}
	if m.Timer.Machine.Running {
		return m, pomodoroTickCmd(gen)
	}
	return m, nil
}

func (m Model) renderPomodoroView() string {
	return views.RenderPomodoroPanel(views.PomodoroPanelData{
		Mode:          m.Timer.Machine.Mode.Label(),
		Timer:         formatDuration(m.Timer.Machine.RemainingSec),
		Running:       m.Timer.Machine.Running,
		Session:       m.Timer.Machine.Session,
		SessionsCycle: pomodoro.SessionsPerCycle,
		SessionsToday: m.Timer.Stats.SessionsToday,
		ProgressView:  m.timerProgress.ViewAs(float64(m.Timer.Machine.ProgressPercent()) / 100),
		ProgressPct:   m.Timer.Machine.ProgressPercent(),
	})
}
