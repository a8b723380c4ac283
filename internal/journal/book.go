package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/storage"
)

var (
	ErrEmptyContent  = errors.New("journal: entry content is empty")
	ErrDraftNotFound = errors.New("journal: draft not found")
	ErrEntryNotFound = errors.New("journal: entry not found")
)

// Book owns journal entries and their drafts for the data store.
type Book struct {
	data *storage.Data
	now  func() time.Time
}

func NewBook(data *storage.Data) *Book {
	return NewBookAt(data, time.Now)
}

func NewBookAt(data *storage.Data, now func() time.Time) *Book {
	if now == nil {
		now = time.Now
	}
	return &Book{data: data, now: now}
}

func (b *Book) Entries(userID string) ([]model.JournalEntry, error) {
	return b.data.JournalEntries(userID)
}

func (b *Book) Drafts(userID string) ([]model.JournalDraft, error) {
	return b.data.JournalDrafts(userID)
}

// SaveDraft creates or updates the autosaved draft. An empty draftID starts a
// new identity; a known one is updated in place with its creation time
// preserved, so one editing session keeps one stable draft.
func (b *Book) SaveDraft(userID, draftID, title, content string, mood model.Mood) (model.JournalDraft, error) {
	drafts, err := b.data.JournalDrafts(userID)
	if err != nil {
		return model.JournalDraft{}, err
	}

	now := b.now()
	draft := model.JournalDraft{
		ID:        draftID,
		UserID:    userID,
		Title:     title,
		Content:   content,
		Mood:      mood,
		Status:    model.EntryStatusDraft,
		LastSaved: now,
		Created:   now,
	}
	if strings.TrimSpace(draft.Title) == "" {
		draft.Title = model.DefaultEntryTitle
	}

	if draftID == "" {
		draft.ID = "draft_" + uuid.NewString()
		drafts = append([]model.JournalDraft{draft}, drafts...)
	} else {
		updated := false
		for i, d := range drafts {
			if d.ID == draftID {
				draft.Created = d.Created
				drafts[i] = draft
				updated = true
				break
			}
		}
		if !updated {
			return model.JournalDraft{}, fmt.Errorf("%w: %s", ErrDraftNotFound, draftID)
		}
	}

	if err := b.data.SaveJournalDrafts(userID, drafts); err != nil {
		return model.JournalDraft{}, err
	}
	return draft, nil
}

func (b *Book) DeleteDraft(userID, draftID string) error {
	drafts, err := b.data.JournalDrafts(userID)
	if err != nil {
		return err
	}
	kept := make([]model.JournalDraft, 0, len(drafts))
	for _, d := range drafts {
		if d.ID != draftID {
			kept = append(kept, d)
		}
	}
	return b.data.SaveJournalDrafts(userID, kept)
}

// Publish promotes the edited content to a published entry dated today. A
// non-empty entryID updates that entry in place; otherwise a new entry is
// prepended. The in-flight draft, if any, is deleted so its content is not
// readable twice.
func (b *Book) Publish(userID, entryID, draftID, title, content string, mood model.Mood) (model.JournalEntry, error) {
	if strings.TrimSpace(content) == "" {
		return model.JournalEntry{}, ErrEmptyContent
	}

	entries, err := b.data.JournalEntries(userID)
	if err != nil {
		return model.JournalEntry{}, err
	}

	if strings.TrimSpace(title) == "" {
		title = model.DefaultEntryTitle
	}
	entry := model.JournalEntry{
		ID:      entryID,
		Date:    model.FormatDate(b.now()),
		Title:   title,
		Content: content,
		Mood:    mood,
		Status:  model.EntryStatusPublished,
	}

	if entryID == "" {
		entry.ID = uuid.NewString()
		entries = append([]model.JournalEntry{entry}, entries...)
	} else {
		updated := false
		for i, e := range entries {
			if e.ID == entryID {
				entries[i] = entry
				updated = true
				break
			}
		}
		if !updated {
			return model.JournalEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
		}
	}

	if err := b.data.SaveJournalEntries(userID, entries); err != nil {
		return model.JournalEntry{}, err
	}
	if draftID != "" {
		if err := b.DeleteDraft(userID, draftID); err != nil {
			return model.JournalEntry{}, err
		}
	}
	return entry, nil
}

func (b *Book) DeleteEntry(userID, entryID string) error {
	entries, err := b.data.JournalEntries(userID)
	if err != nil {
		return err
	}
	kept := make([]model.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	return b.data.SaveJournalEntries(userID, kept)
}
