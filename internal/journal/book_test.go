package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/storage"
)

func newTestBook(t *testing.T, day string) (*Book, *storage.Data) {
	t.Helper()
	parsed, err := time.Parse(model.DateLayout, day)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	data := storage.NewData(storage.NewMemoryStore(nil))
	return NewBookAt(data, func() time.Time { return parsed }), data
}

func TestSaveDraftCreatesStableIdentity(t *testing.T) {
	book, _ := newTestBook(t, "2026-08-29")

	first, err := book.SaveDraft("u1", "", "", "half a thought", model.MoodCalm)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated draft id")
	}
	if first.Title != model.DefaultEntryTitle {
		t.Fatalf("expected default title, got %q", first.Title)
	}

	second, err := book.SaveDraft("u1", first.ID, "Evening notes", "a fuller thought", model.MoodCalm)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("draft identity must be stable: %q vs %q", second.ID, first.ID)
	}
	if !second.Created.Equal(first.Created) {
		t.Fatalf("created time must be preserved: %v vs %v", second.Created, first.Created)
	}

	drafts, err := book.Drafts("u1")
	if err != nil {
		t.Fatalf("drafts: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Content != "a fuller thought" {
		t.Fatalf("expected one updated draft, got: %+v", drafts)
	}
}

func TestSaveDraftUnknownID(t *testing.T) {
	book, _ := newTestBook(t, "2026-08-29")
	_, err := book.SaveDraft("u1", "draft_missing", "t", "c", model.MoodNone)
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got: %v", err)
	}
}

func TestPublishNewEntryDeletesDraft(t *testing.T) {
	book, _ := newTestBook(t, "2026-08-29")
	draft, err := book.SaveDraft("u1", "", "Morning", "gratitude list", model.MoodHappy)
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}

	entry, err := book.Publish("u1", "", draft.ID, "Morning", "gratitude list", model.MoodHappy)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if entry.ID == "" || entry.Date != "2026-08-29" || entry.Status != model.EntryStatusPublished {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	drafts, err := book.Drafts("u1")
	if err != nil {
		t.Fatalf("drafts: %v", err)
	}
	if len(drafts) != 0 {
		t.Fatalf("expected draft removed after publish, got: %+v", drafts)
	}
	entries, err := book.Entries("u1")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
}

func TestPublishEditsEntryInPlace(t *testing.T) {
	book, _ := newTestBook(t, "2026-08-29")
	entry, err := book.Publish("u1", "", "", "First", "original text", model.MoodCalm)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	edited, err := book.Publish("u1", entry.ID, "", "First revised", "edited text", model.MoodSad)
	if err != nil {
		t.Fatalf("edit publish: %v", err)
	}
	if edited.ID != entry.ID {
		t.Fatalf("editing must not mint a new id: %q vs %q", edited.ID, entry.ID)
	}

	entries, err := book.Entries("u1")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "edited text" || entries[0].Mood != model.MoodSad {
		t.Fatalf("expected in-place update, got: %+v", entries)
	}
}

func TestPublishRejectsEmptyContent(t *testing.T) {
	book, _ := newTestBook(t, "2026-08-29")
	if _, err := book.Publish("u1", "", "", "Title", "   ", model.MoodNone); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got: %v", err)
	}
}

func TestDeleteDraftAndEntry(t *testing.T) {
	book, _ := newTestBook(t, "2026-08-29")
	draft, err := book.SaveDraft("u1", "", "", "will be dropped", model.MoodNone)
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}
	entry, err := book.Publish("u1", "", "", "", "keeper", model.MoodNone)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if err := book.DeleteDraft("u1", draft.ID); err != nil {
		t.Fatalf("delete draft: %v", err)
	}
	if err := book.DeleteEntry("u1", entry.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}

	drafts, _ := book.Drafts("u1")
	entries, _ := book.Entries("u1")
	if len(drafts) != 0 || len(entries) != 0 {
		t.Fatalf("expected everything deleted, got drafts=%d entries=%d", len(drafts), len(entries))
	}
}
