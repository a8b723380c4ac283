package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifesyncapp/lifesync/internal/views"
)

// Ambient sound palette, in display order.
var meditationSounds = []string{"Rain", "Wind", "Ocean", "Forest", "Campfire", "Night"}

const meditationAffirmation = "You are calm. You are centered. You are at peace."

const (
	meditationMinMinutes     = 1
	meditationMaxMinutes     = 120
	meditationDefaultMinutes = 20
)

func newMeditationState() MeditationState {
	return MeditationState{
		Playing:      make([]bool, len(meditationSounds)),
		TimerMinutes: meditationDefaultMinutes,
	}
}

func (m Model) handleMeditationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Meditation.FocusMode {
		// Any key leaves focus mode, matching the click-anywhere overlay.
		m.Meditation.FocusMode = false
		m.Status = StatusBar{Text: "focus mode off", IsError: false}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		m.Meditation.Cursor = clampCursor(m.Meditation.Cursor+1, len(meditationSounds))
		return m, nil
	case "k", "up":
		m.Meditation.Cursor = clampCursor(m.Meditation.Cursor-1, len(meditationSounds))
		return m, nil
	case " ":
		m.toggleSound(m.Meditation.Cursor)
		return m, nil
	case "S":
		m.stopAllSounds()
		return m, nil
	case "f":
		m.Meditation.FocusMode = true
		m.Status = StatusBar{Text: "focus mode on", IsError: false}
		return m, nil
	case "+", "=":
		m.adjustMeditationTimer(1)
		return m, nil
	case "-":
		m.adjustMeditationTimer(-1)
		return m, nil
	}
	return m, nil
}

func (m *Model) toggleSound(i int) {
	if i < 0 || i >= len(m.Meditation.Playing) {
		return
	}
	m.Meditation.Playing[i] = !m.Meditation.Playing[i]
	if m.Meditation.Playing[i] {
		m.Status = StatusBar{Text: fmt.Sprintf("playing %s", meditationSounds[i]), IsError: false}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("stopped %s", meditationSounds[i]), IsError: false}
	}
}

func (m *Model) stopAllSounds() {
	for i := range m.Meditation.Playing {
		m.Meditation.Playing[i] = false
	}
	m.Status = StatusBar{Text: "all sounds stopped", IsError: false}
}

func (m *Model) adjustMeditationTimer(delta int) {
	minutes := m.Meditation.TimerMinutes + delta
	if minutes < meditationMinMinutes {
		minutes = meditationMinMinutes
	}
	if minutes > meditationMaxMinutes {
		minutes = meditationMaxMinutes
	}
	m.Meditation.TimerMinutes = minutes
}

func (m Model) renderMeditationView() string {
	sounds := make([]views.MeditationSoundData, 0, len(meditationSounds))
	for i, name := range meditationSounds {
		playing := i < len(m.Meditation.Playing) && m.Meditation.Playing[i]
		sounds = append(sounds, views.MeditationSoundData{
			Name:     name,
			Playing:  playing,
			Selected: i == m.Meditation.Cursor,
		})
	}
	return views.RenderMeditationPanel(views.MeditationPanelData{
		Affirmation:  meditationAffirmation,
		Sounds:       sounds,
		TimerMinutes: m.Meditation.TimerMinutes,
		FocusMode:    m.Meditation.FocusMode,
	})
}
