package update

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifesyncapp/lifesync/internal/auth"
	"github.com/lifesyncapp/lifesync/internal/export"
	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/views"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Settings.ConfirmingDelete {
		return m.handleDeleteConfirmKey(msg)
	}
	if m.Settings.Editing {
		return m.handleSettingsEditKey(msg)
	}

	switch msg.String() {
	case "j", "down":
		if m.Settings.Field < settingsFieldCount-1 {
			m.Settings.Field++
		}
		return m, nil
	case "k", "up":
		if m.Settings.Field > 0 {
			m.Settings.Field--
		}
		return m, nil
	case "enter":
		return m.activateSettingsField()
	case "x":
		m.exportData()
		return m, nil
	case "L":
		if err := m.deps.Registry.Logout(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.leaveSession()
		m.Status = StatusBar{Text: "logged out", IsError: false}
		return m, nil
	case "D":
		m.Settings.ConfirmingDelete = true
		m.deleteInput.SetValue("")
		m.deleteInput.Focus()
		m.Status = StatusBar{Text: "type your username to confirm account deletion", IsError: false}
		return m, nil
	}
	return m, nil
}

// activateSettingsField toggles boolean fields in place and opens the value
// editor for numeric ones.
func (m Model) activateSettingsField() (tea.Model, tea.Cmd) {
	switch m.Settings.Field {
	case SettingsFieldTheme:
		prefs := m.User.Preferences
		if prefs.Theme == "light" {
			prefs.Theme = "dark"
		} else {
			prefs.Theme = "light"
		}
		m.savePreferences(prefs)
		return m, nil
	case SettingsFieldReminders:
		m.toggleReminders()
		return m, nil
	default:
		m.Settings.Editing = true
		m.settingsInput.SetValue(m.currentSettingsValue())
		m.settingsInput.Focus()
		return m, nil
	}
}

func (m Model) handleSettingsEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Settings.Editing = false
		m.settingsInput.Blur()
		return m, nil
	case "enter":
		raw := strings.TrimSpace(m.settingsInput.Value())
		v, err := strconv.Atoi(raw)
		if err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("not a number: %s", raw), IsError: true}
			return m, nil
		}
		prefs := m.User.Preferences
		switch m.Settings.Field {
		case SettingsFieldWaterGoal:
			prefs.WaterGoalML = v
		case SettingsFieldReminderInterval:
			prefs.ReminderIntervalSec = v
		case SettingsFieldQuietStart:
			prefs.QuietHoursStart = v
		case SettingsFieldQuietEnd:
			prefs.QuietHoursEnd = v
		}
		if err := prefs.Validate(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Settings.Editing = false
		m.settingsInput.Blur()
		m.savePreferences(prefs)
		return m, nil
	}
	var cmd tea.Cmd
	m.settingsInput, cmd = m.settingsInput.Update(msg)
	return m, cmd
}

func (m Model) handleDeleteConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Settings.ConfirmingDelete = false
		m.deleteInput.SetValue("")
		m.deleteInput.Blur()
		m.Status = StatusBar{Text: "account deletion cancelled", IsError: false}
		return m, nil
	case "enter":
		err := m.deps.Registry.DeleteAccount(m.deleteInput.Value())
		if err != nil {
			var verr *auth.ValidationError
			if errors.As(err, &verr) {
				m.Status = StatusBar{Text: verr.Message, IsError: true}
			} else {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			}
			return m, nil
		}
		m.Settings.ConfirmingDelete = false
		m.deleteInput.SetValue("")
		m.deleteInput.Blur()
		m.leaveSession()
		m.Status = StatusBar{Text: "account deleted", IsError: false}
		return m, nil
	}
	var cmd tea.Cmd
	m.deleteInput, cmd = m.deleteInput.Update(msg)
	return m, cmd
}

func (m *Model) savePreferences(prefs model.Preferences) {
	updated, err := m.deps.Registry.UpdateUser(auth.UserUpdate{Preferences: &prefs})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.User = &updated
	m.Status = StatusBar{Text: "preferences saved", IsError: false}
}

func (m *Model) toggleReminders() {
	enabled := !m.Settings.ReminderEnabled
	if err := m.deps.Data.SaveReminderEnabled(m.User.ID, enabled); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Settings.ReminderEnabled = enabled
	if enabled {
		// Re-enabling checks immediately rather than waiting out the hour.
		if m.deps.Reminders != nil {
			m.deps.Reminders.ResetThrottle()
			m.deps.Reminders.CheckNow()
		}
		m.Status = StatusBar{Text: "water reminders enabled", IsError: false}
		return
	}
	m.Status = StatusBar{Text: "water reminders disabled", IsError: false}
}

func (m *Model) exportData() {
	snap, err := export.Build(m.deps.Data, m.User, m.today())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	path, err := export.WriteFile(m.cfg.ExportDir, snap, m.today())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("data exported to %s", path), IsError: false}
}

func (m Model) currentSettingsValue() string {
	prefs := m.User.Preferences
	switch m.Settings.Field {
	case SettingsFieldWaterGoal:
		return strconv.Itoa(prefs.WaterGoalML)
	case SettingsFieldReminderInterval:
		return strconv.Itoa(prefs.ReminderIntervalSec)
	case SettingsFieldQuietStart:
		return strconv.Itoa(prefs.QuietHoursStart)
	case SettingsFieldQuietEnd:
		return strconv.Itoa(prefs.QuietHoursEnd)
	default:
		return ""
	}
}

func (m Model) renderSettingsView() string {
	prefs := m.User.Preferences
	fields := []views.SettingsFieldData{
		{Label: "water goal (ml)", Value: strconv.Itoa(prefs.WaterGoalML)},
		{Label: "reminder interval (sec)", Value: strconv.Itoa(prefs.ReminderIntervalSec)},
		{Label: "quiet hours start", Value: strconv.Itoa(prefs.QuietHoursStart)},
		{Label: "quiet hours end", Value: strconv.Itoa(prefs.QuietHoursEnd)},
		{Label: "theme", Value: prefs.Theme},
		{Label: "water reminders", Value: onOff(m.Settings.ReminderEnabled)},
	}
	for i := range fields {
		fields[i].Selected = SettingsField(i) == m.Settings.Field
	}

	editView := ""
	if m.Settings.Editing {
		editView = m.settingsInput.View()
	}
	confirmView := ""
	if m.Settings.ConfirmingDelete {
		confirmView = m.deleteInput.View()
	}
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Fields:            fields,
		EditView:          editView,
		DeleteConfirmView: confirmView,
	})
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
