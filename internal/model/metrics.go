package model

import "errors"

// WaterLog is one record per user, overwritten in place each day.
type WaterLog struct {
	TodayML int    `json:"today"`
	Date    string `json:"date"`
	Streak  int    `json:"streak"`
}

func (w WaterLog) Validate() error {
	if w.TodayML < 0 {
		return errors.New("model: water intake must not be negative")
	}
	if w.Date == "" {
		return errors.New("model: water log date is required")
	}
	return nil
}

type PomodoroStats struct {
	SessionsToday int    `json:"sessionsToday"`
	Date          string `json:"date"`
}

type DailyProgress struct {
	Date             string `json:"date"`
	TasksCompleted   int    `json:"tasksCompleted"`
	TasksTotal       int    `json:"tasksTotal"`
	PomodoroSessions int    `json:"pomodoroSessions"`
	WaterIntake      int    `json:"waterIntake"`
	WaterGoal        int    `json:"waterGoal"`
	JournalEntries   int    `json:"journalEntries"`
}
