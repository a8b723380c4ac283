package update

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/views"
)

const activityDays = 14

func (m *Model) syncProgressTable() {
	window := m.Progress.WindowDays
	if window <= 0 {
		window = 7
	}
	cutoff := model.FormatDate(m.deps.Now().AddDate(0, 0, -(window - 1)))
	sorted := make([]model.DailyProgress, 0, len(m.Progress.Rows))
	for _, p := range m.Progress.Rows {
		if p.Date >= cutoff {
			sorted = append(sorted, p)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	rows := make([]table.Row, 0, len(sorted))
	for _, p := range sorted {
		rows = append(rows, table.Row{
			p.Date,
			fmt.Sprintf("%d/%d", p.TasksCompleted, p.TasksTotal),
			fmt.Sprintf("%d", p.PomodoroSessions),
			fmt.Sprintf("%d/%dml", p.WaterIntake, p.WaterGoal),
			fmt.Sprintf("%d", p.JournalEntries),
		})
	}
	m.progressTable.SetRows(rows)
}

func (m *Model) toggleProgressWindow() {
	if m.Progress.WindowDays == 7 {
		m.Progress.WindowDays = 30
	} else {
		m.Progress.WindowDays = 7
	}
	m.syncProgressTable()
}

// activityRow renders the last two weeks as a dot per day, filled when the
// user was active that day, oldest first.
func (m Model) activityRow() string {
	now := m.deps.Now()
	row := make([]byte, activityDays)
	for i := 0; i < activityDays; i++ {
		date := model.FormatDate(now.AddDate(0, 0, i-activityDays+1))
		if m.User.Stats.HasDay(date) {
			row[i] = '#'
		} else {
			row[i] = '.'
		}
	}
	return string(row)
}

func (m Model) handleProgressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "w" {
		m.toggleProgressWindow()
		return m, nil
	}
	var cmd tea.Cmd
	m.progressTable, cmd = m.progressTable.Update(msg)
	return m, cmd
}

func (m Model) renderProgressView() string {
	return views.RenderProgressPanel(views.ProgressPanelData{
		TableView:   m.progressTable.View(),
		DaysTracked: len(m.Progress.Rows),
		WindowDays:  m.Progress.WindowDays,
		ActivityRow: m.activityRow(),
	})
}
