package storage

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("storage: not found")

// Store is the persistence substrate shared by every component. Values are
// opaque JSON-encoded blobs addressed by namespaced string keys.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Dataset names mirror the key suffixes of any previously exported data, so
// they must not change.
const (
	DatasetTasks           = "tasks"
	DatasetJournalEntries  = "journalEntries"
	DatasetJournalDrafts   = "journalDrafts"
	DatasetWaterLog        = "waterLog"
	DatasetPomodoroStats   = "pomodoroStats"
	DatasetDailyProgress   = "dailyProgress"
	DatasetReminderEnabled = "reminderEnabled"
)

const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
)

// Key builds the per-user namespaced key for a dataset. An empty user id maps
// to the guest namespace.
func Key(userID, dataset string) string {
	if strings.TrimSpace(userID) == "" {
		return "guest_" + dataset
	}
	return "user_" + userID + "_" + dataset
}

// UserNamespace is the fragment shared by every key owned by a user. Purge
// matches on it as a substring.
func UserNamespace(userID string) string {
	return "user_" + userID
}
