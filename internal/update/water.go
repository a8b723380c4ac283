package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifesyncapp/lifesync/internal/tracker"
	"github.com/lifesyncapp/lifesync/internal/views"
)

func (m Model) handleWaterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Water.EnteringML {
		switch msg.String() {
		case "esc":
			m.Water.EnteringML = false
			m.waterInput.SetValue("")
			m.waterInput.Blur()
			return m, nil
		case "enter":
			raw := strings.TrimSpace(m.waterInput.Value())
			amount, err := strconv.Atoi(raw)
			if err != nil || amount <= 0 {
				m.Status = StatusBar{Text: fmt.Sprintf("invalid amount: %s", raw), IsError: true}
				return m, nil
			}
			m.Water.EnteringML = false
			m.waterInput.SetValue("")
			m.waterInput.Blur()
			m.logWater(amount)
			return m, nil
		}
		var cmd tea.Cmd
		m.waterInput, cmd = m.waterInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "g":
		m.logWater(tracker.GlassML)
		return m, nil
	case "c":
		m.Water.EnteringML = true
		m.waterInput.Focus()
		return m, nil
	case "R":
		m.Water.Log = tracker.ResetWater(m.Water.Log)
		m.Water.GoalReached = false
		m.persistWater()
		m.Status = StatusBar{Text: "today's water intake reset", IsError: false}
		return m, nil
	}
	return m, nil
}

func (m *Model) logWater(amountML int) {
	goal := m.User.Preferences.WaterGoalML
	log, crossed := tracker.AddWater(m.Water.Log, amountML, goal)
	m.Water.Log = log
	m.persistWater()
	if crossed {
		m.Water.GoalReached = true
		m.Status = StatusBar{Text: "daily water goal reached!", IsError: false}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("logged %dml (%d / %d)", amountML, log.TodayML, goal), IsError: false}
}

func (m Model) renderWaterView() string {
	goal := m.User.Preferences.WaterGoalML
	input := ""
	if m.Water.EnteringML {
		input = m.waterInput.View()
	}
	return views.RenderWaterPanel(views.WaterPanelData{
		TodayML:      m.Water.Log.TodayML,
		GoalML:       goal,
		Glasses:      tracker.Glasses(m.Water.Log),
		Streak:       m.Water.Log.Streak,
		ProgressView: progressBar(tracker.ProgressPercent(m.Water.Log, goal), 30),
		ProgressPct:  tracker.ProgressPercent(m.Water.Log, goal),
		GoalReached:  m.Water.GoalReached,
		InputView:    input,
	})
}
