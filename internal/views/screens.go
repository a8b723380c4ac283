package views

import (
	"fmt"
	"strings"
)

type AuthPanelData struct {
	Signup       bool
	UsernameView string
	PasswordView string
	ConfirmView  string
	NameView     string
	ErrorText    string
}

type DashboardPanelData struct {
	Greeting       string
	Name           string
	Quote          string
	TasksDone      int
	TasksTotal     int
	WaterML        int
	WaterGoalML    int
	WaterStreak    int
	Pomodoros      int
	CurrentStreak  int
	LongestStreak  int
	JournalEntries int
}

type TaskItemData struct {
	Text      string
	Completed bool
	Priority  string
	Selected  bool
}

type TasksPanelData struct {
	Items        []TaskItemData
	Filter       string
	QuickAddView string
}

type PomodoroPanelData struct {
	Mode          string
	Timer         string
	Running       bool
	Session       int
	SessionsCycle int
	SessionsToday int
	ProgressView  string
	ProgressPct   int
}

type WaterPanelData struct {
	TodayML      int
	GoalML       int
	Glasses      int
	Streak       int
	ProgressView string
	ProgressPct  int
	GoalReached  bool
	InputView    string
}

type JournalItemData struct {
	Title    string
	Date     string
	Mood     string
	Selected bool
}

type JournalPanelData struct {
	ShowingDrafts bool
	Items         []JournalItemData
}

type JournalEditorData struct {
	Mode        string
	Prompt      string
	TitleView   string
	ContentView string
	Mood        string
}

type ProgressPanelData struct {
	TableView   string
	DaysTracked int
	WindowDays  int
	ActivityRow string
}

type MeditationSoundData struct {
	Name     string
	Playing  bool
	Selected bool
}

type MeditationPanelData struct {
	Affirmation  string
	Sounds       []MeditationSoundData
	TimerMinutes int
	FocusMode    bool
}

type SettingsFieldData struct {
	Label    string
	Value    string
	Selected bool
}

type SettingsPanelData struct {
	Fields            []SettingsFieldData
	EditView          string
	DeleteConfirmView string
}

type HelpPanelData struct {
	CurrentScreen string
	Bindings      []string
}

func RenderAuthPanel(data AuthPanelData) string {
	var b strings.Builder
	if data.Signup {
		b.WriteString("sign up:\n")
	} else {
		b.WriteString("log in:\n")
	}
	b.WriteString(data.UsernameView + "\n")
	b.WriteString(data.PasswordView + "\n")
	if data.Signup {
		b.WriteString(data.ConfirmView + "\n")
		b.WriteString(data.NameView + "\n")
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	if data.Signup {
		b.WriteString("actions: [tab]field [enter]create account [ctrl+s]to login")
	} else {
		b.WriteString("actions: [tab]field [enter]log in [ctrl+s]to signup")
	}
	return strings.TrimSpace(b.String())
}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s, %s\n", data.Greeting, data.Name))
	b.WriteString(fmt.Sprintf("\"%s\"\n\n", data.Quote))
	b.WriteString(fmt.Sprintf("tasks: %d/%d done\n", data.TasksDone, data.TasksTotal))
	b.WriteString(fmt.Sprintf("water: %d/%dml (streak %d)\n", data.WaterML, data.WaterGoalML, data.WaterStreak))
	b.WriteString(fmt.Sprintf("pomodoros today: %d\n", data.Pomodoros))
	b.WriteString(fmt.Sprintf("journal entries: %d\n", data.JournalEntries))
	b.WriteString(fmt.Sprintf("activity streak: %d (best %d)\n", data.CurrentStreak, data.LongestStreak))
	b.WriteString("actions: [g]quick glass of water [2-8]open screens")
	return strings.TrimSpace(b.String())
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.QuickAddView != "" {
		b.WriteString(data.QuickAddView + "\n")
	}
	b.WriteString("actions: [a]add [space]toggle [p]priority [f]filter [d]delete [j/k]move\n")
	if data.Filter != "" {
		b.WriteString(fmt.Sprintf("filter: %s\n", data.Filter))
	}
	if len(data.Items) == 0 {
		b.WriteString("(no tasks here)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", cursor, check, priorityBadge(item.Priority), item.Text))
	}
	return strings.TrimSpace(b.String())
}

func RenderPomodoroPanel(data PomodoroPanelData) string {
	var b strings.Builder
	b.WriteString("pomodoro:\n")
	b.WriteString(fmt.Sprintf("mode: %s\n", data.Mode))
	b.WriteString(fmt.Sprintf("timer: %s", data.Timer))
	if data.Running {
		b.WriteString(" (running)")
	} else {
		b.WriteString(" (paused)")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("session %d of %d | completed today: %d\n", data.Session, data.SessionsCycle, data.SessionsToday))
	b.WriteString("actions: [space]start/pause [r]reset [m]mode")
	return strings.TrimSpace(b.String())
}

func RenderWaterPanel(data WaterPanelData) string {
	var b strings.Builder
	b.WriteString("water:\n")
	b.WriteString(fmt.Sprintf("today: %dml of %dml (%d glasses)\n", data.TodayML, data.GoalML, data.Glasses))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("streak: %d day(s)\n", data.Streak))
	if data.GoalReached {
		b.WriteString("goal reached, nicely done!\n")
	}
	if data.InputView != "" {
		b.WriteString(data.InputView + "\n")
	}
	b.WriteString("actions: [g]glass +250ml [c]custom [R]reset")
	return strings.TrimSpace(b.String())
}

func RenderJournalPanel(data JournalPanelData) string {
	var b strings.Builder
	if data.ShowingDrafts {
		b.WriteString("journal drafts:\n")
	} else {
		b.WriteString("journal:\n")
	}
	b.WriteString("actions: [n]new [e]edit [d]delete [tab]entries/drafts [j/k]move\n")
	if len(data.Items) == 0 {
		b.WriteString("(nothing here yet)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		mood := ""
		if item.Mood != "" {
			mood = " [" + item.Mood + "]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s%s\n", cursor, item.Date, item.Title, mood))
	}
	return strings.TrimSpace(b.String())
}

func RenderJournalEditor(data JournalEditorData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("journal editor (%s):\n", data.Mode))
	if data.Prompt != "" {
		b.WriteString("prompt: " + data.Prompt + "\n")
	}
	b.WriteString(data.TitleView + "\n")
	b.WriteString(data.ContentView + "\n")
	mood := data.Mood
	if mood == "" {
		mood = "(none)"
	}
	b.WriteString(fmt.Sprintf("mood: %s\n", mood))
	b.WriteString("actions: [tab]title/content [ctrl+u]mood [ctrl+d]save draft [ctrl+s]publish [esc]close")
	return strings.TrimSpace(b.String())
}

func RenderProgressPanel(data ProgressPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("daily progress, last %d days:\n", data.WindowDays))
	b.WriteString("actions: [w]7/30 day window [j/k]move\n")
	b.WriteString(fmt.Sprintf("days tracked: %d\n", data.DaysTracked))
	if data.ActivityRow != "" {
		b.WriteString(fmt.Sprintf("activity: %s\n", data.ActivityRow))
	}
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderMeditationPanel(data MeditationPanelData) string {
	if data.FocusMode {
		var b strings.Builder
		b.WriteString("focus mode\n\n")
		b.WriteString(data.Affirmation + "\n\n")
		b.WriteString("press any key to exit")
		return strings.TrimSpace(b.String())
	}

	var b strings.Builder
	b.WriteString("meditation and sound hub:\n")
	b.WriteString(fmt.Sprintf("\"%s\"\n", data.Affirmation))
	b.WriteString("actions: [j/k]move [space]play/pause [S]stop all [f]focus mode [+/-]timer\n")
	b.WriteString(fmt.Sprintf("timer: %d minutes\n", data.TimerMinutes))
	active := 0
	for _, s := range data.Sounds {
		cursor := " "
		if s.Selected {
			cursor = ">"
		}
		state := "paused"
		if s.Playing {
			state = "playing"
			active++
		}
		b.WriteString(fmt.Sprintf("%s %-8s %s\n", cursor, s.Name, state))
	}
	if active > 0 {
		b.WriteString(fmt.Sprintf("active sounds: %d\n", active))
	}
	return strings.TrimSpace(b.String())
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("actions: [j/k]field [enter]edit/toggle [x]export [L]logout [D]delete account\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, f.Label, f.Value))
	}
	if data.EditView != "" {
		b.WriteString("\n" + data.EditView + " ([enter]save [esc]cancel)\n")
	}
	if data.DeleteConfirmView != "" {
		b.WriteString("\ndelete account? this cannot be undone.\n")
		b.WriteString(data.DeleteConfirmView + " ([enter]confirm [esc]cancel)\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(strings.ToLower(data.CurrentScreen) + " keys:\n")
	for _, binding := range data.Bindings {
		b.WriteString("- " + binding + "\n")
	}
	return strings.TrimSpace(b.String())
}

func priorityBadge(priority string) string {
	switch priority {
	case "high":
		return "[HIGH]"
	case "low":
		return "[LOW ]"
	default:
		return "[MED ]"
	}
}
