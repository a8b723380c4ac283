package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lifesyncapp/lifesync/internal/journal"
	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/views"
)

var mindfulnessPrompts = []string{
	"What are you grateful for today?",
	"What made you smile today?",
	"What challenged you today and how did you handle it?",
	"What is one thing you learned about yourself today?",
	"How did you practice kindness today?",
}

var moodCycle = map[model.Mood]model.Mood{
	model.MoodNone:     model.MoodHappy,
	model.MoodHappy:    model.MoodCalm,
	model.MoodCalm:     model.MoodSad,
	model.MoodSad:      model.MoodAnxious,
	model.MoodAnxious:  model.MoodStressed,
	model.MoodStressed: model.MoodNone,
}

func (m Model) handleJournalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Journal.Editing {
		return m.handleJournalEditorKey(msg)
	}

	switch msg.String() {
	case "n":
		m.openEditor("", "", "", "", model.MoodNone)
		return m, nil
	case "e":
		m.editSelected()
		return m, nil
	case "tab":
		m.Journal.ShowDrafts = !m.Journal.ShowDrafts
		m.Journal.Cursor = 0
		return m, nil
	case "j", "down":
		m.Journal.Cursor = clampCursor(m.Journal.Cursor+1, m.journalListLen())
		return m, nil
	case "k", "up":
		m.Journal.Cursor = clampCursor(m.Journal.Cursor-1, m.journalListLen())
		return m, nil
	case "d":
		m.deleteSelected()
		return m, nil
	}
	return m, nil
}

func (m Model) handleJournalEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Keep whatever the debounce already saved; flush once more so no
		// keystrokes are lost, then close.
		m.handleAutosaveDue()
		m.closeEditor()
		m.Status = StatusBar{Text: "editor closed, draft kept", IsError: false}
		return m, nil
	case "ctrl+s":
		m.publishEntry()
		return m, nil
	case "ctrl+d":
		m.flushDraft()
		return m, nil
	case "ctrl+u":
		m.Journal.Mood = moodCycle[m.Journal.Mood]
		m.scheduleAutosave()
		return m, nil
	case "tab":
		if m.Journal.FocusField == 0 {
			m.Journal.FocusField = 1
			m.titleInput.Blur()
			m.contentArea.Focus()
		} else {
			m.Journal.FocusField = 0
			m.contentArea.Blur()
			m.titleInput.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.Journal.FocusField == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.contentArea, cmd = m.contentArea.Update(msg)
	}
	m.scheduleAutosave()
	return m, cmd
}

func (m *Model) scheduleAutosave() {
	ch := m.autosaveCh
	m.autosaver.Trigger(func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
}

// handleAutosaveDue persists the open editor as a draft. The draft ID is
// assigned on the first save and reused afterwards, so repeated autosaves
// never fan out into duplicate drafts.
func (m *Model) handleAutosaveDue() {
	if !m.loggedIn() || !m.Journal.Editing {
		return
	}
	if strings.TrimSpace(m.titleInput.Value()) == "" && strings.TrimSpace(m.contentArea.Value()) == "" {
		return
	}
	m.flushDraft()
}

func (m *Model) flushDraft() {
	if !m.loggedIn() || !m.Journal.Editing {
		return
	}
	draft, err := m.deps.Book.SaveDraft(m.User.ID, m.Journal.DraftID, m.titleInput.Value(), m.contentArea.Value(), m.Journal.Mood)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Journal.DraftID = draft.ID
	m.reloadJournal()
	m.Status = StatusBar{Text: fmt.Sprintf("draft saved at %s", draft.LastSaved.Format("15:04:05")), IsError: false}
}

func (m *Model) publishEntry() {
	entry, err := m.deps.Book.Publish(m.User.ID, m.Journal.EntryID, m.Journal.DraftID, m.titleInput.Value(), m.contentArea.Value(), m.Journal.Mood)
	if err != nil {
		if errors.Is(err, journal.ErrEmptyContent) {
			m.Status = StatusBar{Text: "cannot publish an empty entry", IsError: true}
		} else {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		return
	}
	if m.Journal.EntryID == "" {
		m.bumpStats(func(s *model.Stats) { s.TotalJournalEntries++ })
	}
	m.closeEditor()
	m.reloadJournal()
	m.syncDailyProgress()
	m.Status = StatusBar{Text: fmt.Sprintf("published: %s", entry.Title), IsError: false}
}

func (m *Model) openEditor(entryID, draftID, title, content string, mood model.Mood) {
	m.Journal.Editing = true
	m.Journal.EntryID = entryID
	m.Journal.DraftID = draftID
	m.Journal.Mood = mood
	m.Journal.FocusField = 1
	m.titleInput.SetValue(title)
	m.titleInput.Blur()
	m.contentArea.SetValue(content)
	m.contentArea.Focus()
}

func (m *Model) closeEditor() {
	m.autosaver.Stop()
	m.Journal.Editing = false
	m.Journal.EntryID = ""
	m.Journal.DraftID = ""
	m.Journal.Mood = model.MoodNone
	m.titleInput.SetValue("")
	m.contentArea.SetValue("")
	m.contentArea.Blur()
}

func (m *Model) editSelected() {
	if m.Journal.ShowDrafts {
		if m.Journal.Cursor >= len(m.Journal.Drafts) {
			return
		}
		d := m.Journal.Drafts[m.Journal.Cursor]
		m.openEditor("", d.ID, d.Title, d.Content, d.Mood)
		return
	}
	if m.Journal.Cursor >= len(m.Journal.Entries) {
		return
	}
	e := m.Journal.Entries[m.Journal.Cursor]
	m.openEditor(e.ID, "", e.Title, e.Content, e.Mood)
}

func (m *Model) deleteSelected() {
	if m.Journal.ShowDrafts {
		if m.Journal.Cursor >= len(m.Journal.Drafts) {
			return
		}
		d := m.Journal.Drafts[m.Journal.Cursor]
		if err := m.deps.Book.DeleteDraft(m.User.ID, d.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return
		}
		m.Status = StatusBar{Text: "draft deleted", IsError: false}
	} else {
		if m.Journal.Cursor >= len(m.Journal.Entries) {
			return
		}
		e := m.Journal.Entries[m.Journal.Cursor]
		if err := m.deps.Book.DeleteEntry(m.User.ID, e.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return
		}
		m.Status = StatusBar{Text: "entry deleted", IsError: false}
	}
	m.reloadJournal()
	m.Journal.Cursor = clampCursor(m.Journal.Cursor, m.journalListLen())
	m.syncDailyProgress()
}

func (m *Model) reloadJournal() {
	entries, err := m.deps.Book.Entries(m.User.ID)
	if err != nil {
		m.deps.Logger.Warn("reload journal entries failed", zap.Error(err))
		return
	}
	drafts, err := m.deps.Book.Drafts(m.User.ID)
	if err != nil {
		m.deps.Logger.Warn("reload journal drafts failed", zap.Error(err))
		return
	}
	m.Journal.Entries = entries
	m.Journal.Drafts = drafts
}

func (m Model) mindfulnessPrompt() string {
	day := m.deps.Now().YearDay()
	return mindfulnessPrompts[day%len(mindfulnessPrompts)]
}

func (m Model) journalListLen() int {
	if m.Journal.ShowDrafts {
		return len(m.Journal.Drafts)
	}
	return len(m.Journal.Entries)
}

func (m Model) renderJournalView() string {
	if m.Journal.Editing {
		mode := "new entry"
		if m.Journal.EntryID != "" {
			mode = "editing entry"
		} else if m.Journal.DraftID != "" {
			mode = "editing draft"
		}
		return views.RenderJournalEditor(views.JournalEditorData{
			Mode:        mode,
			Prompt:      m.mindfulnessPrompt(),
			TitleView:   m.titleInput.View(),
			ContentView: m.contentArea.View(),
			Mood:        string(m.Journal.Mood),
		})
	}

	items := make([]views.JournalItemData, 0, m.journalListLen())
	if m.Journal.ShowDrafts {
		for i, d := range m.Journal.Drafts {
			items = append(items, views.JournalItemData{
				Title:    d.Title,
				Date:     model.FormatDate(d.LastSaved),
				Mood:     string(d.Mood),
				Selected: i == m.Journal.Cursor,
			})
		}
	} else {
		for i, e := range m.Journal.Entries {
			items = append(items, views.JournalItemData{
				Title:    e.Title,
				Date:     e.Date,
				Mood:     string(e.Mood),
				Selected: i == m.Journal.Cursor,
			})
		}
	}
	return views.RenderJournalPanel(views.JournalPanelData{
		ShowingDrafts: m.Journal.ShowDrafts,
		Items:         items,
	})
}

func (m Model) renderJournalSidePane() string {
	if m.Journal.Editing || m.Journal.ShowDrafts {
		return ""
	}
	if m.Journal.Cursor >= len(m.Journal.Entries) {
		return ""
	}
	e := m.Journal.Entries[m.Journal.Cursor]
	vp := m.previewViewport
	vp.SetContent(views.RenderMarkdown("# " + e.Title + "\n\n" + e.Content))
	return "preview:\n" + vp.View()
}
