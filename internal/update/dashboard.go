package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifesyncapp/lifesync/internal/tracker"
	"github.com/lifesyncapp/lifesync/internal/views"
)

var motivationalQuotes = []string{
	"Small steps every day add up to big results.",
	"Focus on progress, not perfection.",
	"You don't have to be great to start, but you have to start to be great.",
	"Discipline is choosing between what you want now and what you want most.",
	"A little progress each day adds up to big results.",
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "g":
		m.logWater(tracker.GlassML)
		return m, nil
	}
	return m, nil
}

// dailyQuote rotates through the quote list by calendar day, so everyone
// sees the same quote all day.
func (m Model) dailyQuote() string {
	day := m.deps.Now().YearDay()
	return motivationalQuotes[day%len(motivationalQuotes)]
}

func (m Model) greeting() string {
	hour := m.deps.Now().Hour()
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func (m Model) renderDashboardView() string {
	completed := 0
	for _, t := range m.Tasks.Tasks {
		if t.Completed {
			completed++
		}
	}
	return views.RenderDashboardPanel(views.DashboardPanelData{
		Greeting:       m.greeting(),
		Name:           m.User.Name,
		Quote:          m.dailyQuote(),
		TasksDone:      completed,
		TasksTotal:     len(m.Tasks.Tasks),
		WaterML:        m.Water.Log.TodayML,
		WaterGoalML:    m.User.Preferences.WaterGoalML,
		WaterStreak:    m.Water.Log.Streak,
		Pomodoros:      m.Timer.Stats.SessionsToday,
		CurrentStreak:  m.User.Stats.CurrentStreak,
		LongestStreak:  m.User.Stats.LongestStreak,
		JournalEntries: len(m.Journal.Entries),
	})
}
