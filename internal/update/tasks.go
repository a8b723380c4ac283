package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/views"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Tasks.Adding {
		switch msg.String() {
		case "esc":
			m.Tasks.Adding = false
			m.quickAddInput.SetValue("")
			m.quickAddInput.Blur()
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.quickAddInput.Value())
			if text == "" {
				m.Status = StatusBar{Text: "task text is empty", IsError: true}
				return m, nil
			}
			m.addTask(text, model.PriorityMedium)
			m.quickAddInput.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "a":
		m.Tasks.Adding = true
		m.quickAddInput.Focus()
		return m, nil
	case "f":
		m.cycleTaskFilter()
		return m, nil
	case "j", "down":
		m.Tasks.Cursor = clampCursor(m.Tasks.Cursor+1, len(m.visibleTasks()))
		return m, nil
	case "k", "up":
		m.Tasks.Cursor = clampCursor(m.Tasks.Cursor-1, len(m.visibleTasks()))
		return m, nil
	case " ":
		m.toggleTask()
		return m, nil
	case "p":
		m.cycleTaskPriority()
		return m, nil
	case "d":
		m.deleteTask()
		return m, nil
	}
	return m, nil
}

// visibleTasks returns indices into Tasks.Tasks matching the active filter.
// The cursor always addresses this view, not the raw slice.
func (m Model) visibleTasks() []int {
	visible := make([]int, 0, len(m.Tasks.Tasks))
	for i, t := range m.Tasks.Tasks {
		switch m.Tasks.Filter {
		case TaskFilterPending:
			if t.Completed {
				continue
			}
		case TaskFilterCompleted:
			if !t.Completed {
				continue
			}
		}
		visible = append(visible, i)
	}
	return visible
}

func (m Model) selectedTaskIndex() (int, bool) {
	visible := m.visibleTasks()
	if len(visible) == 0 || m.Tasks.Cursor >= len(visible) {
		return 0, false
	}
	return visible[m.Tasks.Cursor], true
}

var taskFilterCycle = map[TaskFilter]TaskFilter{
	TaskFilterAll:       TaskFilterPending,
	TaskFilterPending:   TaskFilterCompleted,
	TaskFilterCompleted: TaskFilterAll,
}

func (m *Model) cycleTaskFilter() {
	m.Tasks.Filter = taskFilterCycle[m.Tasks.Filter]
	if m.Tasks.Filter == "" {
		m.Tasks.Filter = TaskFilterAll
	}
	m.Tasks.Cursor = clampCursor(m.Tasks.Cursor, len(m.visibleTasks()))
	m.Status = StatusBar{Text: fmt.Sprintf("showing %s tasks", m.Tasks.Filter), IsError: false}
}

func (m *Model) addTask(text string, priority model.Priority) {
	task := model.Task{
		ID:        uuid.NewString(),
		Text:      text,
		Priority:  priority,
		CreatedAt: m.today(),
	}
	m.Tasks.Tasks = append([]model.Task{task}, m.Tasks.Tasks...)
	m.Tasks.Cursor = 0
	m.persistTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("task added: %s", text), IsError: false}
}

func (m *Model) toggleTask() {
	i, ok := m.selectedTaskIndex()
	if !ok {
		return
	}
	m.Tasks.Tasks[i].Completed = !m.Tasks.Tasks[i].Completed
	if m.Tasks.Tasks[i].Completed {
		m.bumpStats(func(s *model.Stats) { s.TotalTasksCompleted++ })
		m.Status = StatusBar{Text: "task completed", IsError: false}
	} else {
		m.Status = StatusBar{Text: "task reopened", IsError: false}
	}
	m.persistTasks()
}

var priorityCycle = map[model.Priority]model.Priority{
	model.PriorityLow:    model.PriorityMedium,
	model.PriorityMedium: model.PriorityHigh,
	model.PriorityHigh:   model.PriorityLow,
}

func (m *Model) cycleTaskPriority() {
	i, ok := m.selectedTaskIndex()
	if !ok {
		return
	}
	m.Tasks.Tasks[i].Priority = priorityCycle[m.Tasks.Tasks[i].Priority]
	m.persistTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("priority: %s", m.Tasks.Tasks[i].Priority), IsError: false}
}

func (m *Model) deleteTask() {
	i, ok := m.selectedTaskIndex()
	if !ok {
		return
	}
	removed := m.Tasks.Tasks[i]
	m.Tasks.Tasks = append(m.Tasks.Tasks[:i], m.Tasks.Tasks[i+1:]...)
	m.Tasks.Cursor = clampCursor(m.Tasks.Cursor, len(m.visibleTasks()))
	m.persistTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("task deleted: %s", removed.Text), IsError: false}
}

func (m Model) renderTasksView() string {
	visible := m.visibleTasks()
	items := make([]views.TaskItemData, 0, len(visible))
	for pos, i := range visible {
		t := m.Tasks.Tasks[i]
		items = append(items, views.TaskItemData{
			Text:      t.Text,
			Completed: t.Completed,
			Priority:  string(t.Priority),
			Selected:  pos == m.Tasks.Cursor,
		})
	}
	quickAdd := ""
	if m.Tasks.Adding {
		quickAdd = m.quickAddInput.View()
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		Items:        items,
		Filter:       string(m.Tasks.Filter),
		QuickAddView: quickAdd,
	})
}
