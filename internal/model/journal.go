package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMood = errors.New("model: invalid journal mood")

type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodCalm     Mood = "calm"
	MoodSad      Mood = "sad"
	MoodAnxious  Mood = "anxious"
	MoodStressed Mood = "stressed"
	MoodNone     Mood = ""
)

func (m Mood) IsValid() bool {
	switch m {
	case MoodHappy, MoodCalm, MoodSad, MoodAnxious, MoodStressed, MoodNone:
		return true
	default:
		return false
	}
}

const (
	EntryStatusPublished = "published"
	EntryStatusDraft     = "draft"

	// DefaultEntryTitle is used when a draft or entry is saved without one.
	DefaultEntryTitle = "Untitled Entry"
)

type JournalEntry struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Mood    Mood   `json:"mood"`
	Status  string `json:"status"`
}

func (e JournalEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: journal entry id is required")
	}
	if strings.TrimSpace(e.Content) == "" {
		return errors.New("model: journal entry content is required")
	}
	if !e.Mood.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMood, e.Mood)
	}
	if e.Status != EntryStatusPublished {
		return fmt.Errorf("model: journal entry status must be %q", EntryStatusPublished)
	}
	return nil
}

type JournalDraft struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"mood"`
	Status    string    `json:"status"`
	LastSaved time.Time `json:"lastSaved"`
	Created   time.Time `json:"created"`
}

func (d JournalDraft) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("model: journal draft id is required")
	}
	if !d.Mood.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMood, d.Mood)
	}
	if d.Status != EntryStatusDraft {
		return fmt.Errorf("model: journal draft status must be %q", EntryStatusDraft)
	}
	return nil
}
