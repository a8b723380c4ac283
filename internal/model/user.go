package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidQuietHour = errors.New("model: quiet hour must be in 0..23")
	ErrInvalidStreak    = errors.New("model: current streak exceeds longest streak")
)

const DateLayout = "2006-01-02"

// FormatDate renders a calendar date the way every stored date field uses it.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

type Preferences struct {
	WaterGoalML         int    `json:"waterGoal"`
	ReminderIntervalSec int    `json:"reminderInterval"`
	QuietHoursStart     int    `json:"quietHoursStart"`
	QuietHoursEnd       int    `json:"quietHoursEnd"`
	Theme               string `json:"theme"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		WaterGoalML:         2000,
		ReminderIntervalSec: 3600,
		QuietHoursStart:     22,
		QuietHoursEnd:       8,
		Theme:               "light",
	}
}

func (p Preferences) Validate() error {
	if p.QuietHoursStart < 0 || p.QuietHoursStart > 23 {
		return fmt.Errorf("%w: start=%d", ErrInvalidQuietHour, p.QuietHoursStart)
	}
	if p.QuietHoursEnd < 0 || p.QuietHoursEnd > 23 {
		return fmt.Errorf("%w: end=%d", ErrInvalidQuietHour, p.QuietHoursEnd)
	}
	if p.WaterGoalML <= 0 {
		return errors.New("model: water goal must be positive")
	}
	return nil
}

type Stats struct {
	DaysActive            []string `json:"daysActive"`
	CurrentStreak         int      `json:"currentStreak"`
	LongestStreak         int      `json:"longestStreak"`
	TotalTasksCompleted   int      `json:"totalTasksCompleted"`
	TotalPomodoroSessions int      `json:"totalPomodoroSessions"`
	TotalJournalEntries   int      `json:"totalJournalEntries"`
}

func (s Stats) Validate() error {
	if s.CurrentStreak > s.LongestStreak {
		return fmt.Errorf("%w: current=%d longest=%d", ErrInvalidStreak, s.CurrentStreak, s.LongestStreak)
	}
	if !sort.StringsAreSorted(s.DaysActive) {
		return errors.New("model: days active must be sorted ascending")
	}
	for i := 1; i < len(s.DaysActive); i++ {
		if s.DaysActive[i] == s.DaysActive[i-1] {
			return fmt.Errorf("model: duplicate active day %s", s.DaysActive[i])
		}
	}
	return nil
}

// HasDay reports whether the given ISO date is already recorded.
func (s Stats) HasDay(date string) bool {
	for _, d := range s.DaysActive {
		if d == date {
			return true
		}
	}
	return false
}

type User struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	CreatedAt   string      `json:"createdAt"`
	Preferences Preferences `json:"preferences"`
	Stats       Stats       `json:"stats"`
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return errors.New("model: user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("model: username is required")
	}
	if err := u.Preferences.Validate(); err != nil {
		return err
	}
	return u.Stats.Validate()
}
