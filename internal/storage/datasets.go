package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lifesyncapp/lifesync/internal/model"
)

// Data wraps a Store with the typed datasets every component reads and
// writes. Missing keys decode to each dataset's zero-day default so callers
// never special-case first use.
type Data struct {
	store Store
}

func NewData(store Store) *Data {
	return &Data{store: store}
}

func (d *Data) Store() Store {
	return d.store
}

func (d *Data) get(key string, out any) (bool, error) {
	raw, err := d.store.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (d *Data) set(key string, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return d.store.Set(key, raw)
}

func (d *Data) Tasks(userID string) ([]model.Task, error) {
	out := make([]model.Task, 0)
	if _, err := d.get(Key(userID, DatasetTasks), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Data) SaveTasks(userID string, tasks []model.Task) error {
	return d.set(Key(userID, DatasetTasks), tasks)
}

func (d *Data) JournalEntries(userID string) ([]model.JournalEntry, error) {
	out := make([]model.JournalEntry, 0)
	if _, err := d.get(Key(userID, DatasetJournalEntries), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Data) SaveJournalEntries(userID string, entries []model.JournalEntry) error {
	return d.set(Key(userID, DatasetJournalEntries), entries)
}

func (d *Data) JournalDrafts(userID string) ([]model.JournalDraft, error) {
	out := make([]model.JournalDraft, 0)
	if _, err := d.get(Key(userID, DatasetJournalDrafts), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Data) SaveJournalDrafts(userID string, drafts []model.JournalDraft) error {
	return d.set(Key(userID, DatasetJournalDrafts), drafts)
}

// WaterLog returns the stored log or a fresh zeroed record dated today.
func (d *Data) WaterLog(userID, today string) (model.WaterLog, error) {
	out := model.WaterLog{TodayML: 0, Date: today, Streak: 0}
	if _, err := d.get(Key(userID, DatasetWaterLog), &out); err != nil {
		return model.WaterLog{}, err
	}
	return out, nil
}

func (d *Data) SaveWaterLog(userID string, log model.WaterLog) error {
	return d.set(Key(userID, DatasetWaterLog), log)
}

func (d *Data) PomodoroStats(userID, today string) (model.PomodoroStats, error) {
	out := model.PomodoroStats{SessionsToday: 0, Date: today}
	if _, err := d.get(Key(userID, DatasetPomodoroStats), &out); err != nil {
		return model.PomodoroStats{}, err
	}
	return out, nil
}

func (d *Data) SavePomodoroStats(userID string, stats model.PomodoroStats) error {
	return d.set(Key(userID, DatasetPomodoroStats), stats)
}

func (d *Data) DailyProgress(userID string) ([]model.DailyProgress, error) {
	out := make([]model.DailyProgress, 0)
	if _, err := d.get(Key(userID, DatasetDailyProgress), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Data) SaveDailyProgress(userID string, progress []model.DailyProgress) error {
	return d.set(Key(userID, DatasetDailyProgress), progress)
}

// ReminderEnabled defaults to true for users who never touched the toggle.
func (d *Data) ReminderEnabled(userID string) (bool, error) {
	enabled := true
	if _, err := d.get(Key(userID, DatasetReminderEnabled), &enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

func (d *Data) SaveReminderEnabled(userID string, enabled bool) error {
	return d.set(Key(userID, DatasetReminderEnabled), enabled)
}

func (d *Data) Users() ([]model.User, error) {
	out := make([]model.User, 0)
	if _, err := d.get(KeyUsers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Data) SaveUsers(users []model.User) error {
	return d.set(KeyUsers, users)
}

// CurrentUser returns nil when no session is active.
func (d *Data) CurrentUser() (*model.User, error) {
	var out *model.User
	found, err := d.get(KeyCurrentUser, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return out, nil
}

func (d *Data) SaveCurrentUser(user *model.User) error {
	return d.set(KeyCurrentUser, user)
}

func (d *Data) ClearCurrentUser() error {
	return d.store.Delete(KeyCurrentUser)
}

// PurgeUser removes every key namespaced to the user. Substring match on the
// namespace fragment keeps it compatible with keys written by older exports.
func (d *Data) PurgeUser(userID string) error {
	keys, err := d.store.Keys()
	if err != nil {
		return err
	}
	ns := UserNamespace(userID)
	for _, key := range keys {
		if !strings.Contains(key, ns) {
			continue
		}
		if err := d.store.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
