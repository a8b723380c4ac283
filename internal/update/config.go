package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DBPath         string
	LogPath        string
	ExportDir      string
	ReminderBuffer int
	AutosaveSecs   int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:         "",
		LogPath:        "lifesync.log",
		ExportDir:      ".",
		ReminderBuffer: 8,
		AutosaveSecs:   30,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("LIFESYNC_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("LIFESYNC_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString("LIFESYNC_EXPORT_DIR"); ok {
		cfg.ExportDir = v
	}
	if v, ok := getEnvInt("LIFESYNC_REMINDER_BUFFER"); ok && v > 0 {
		cfg.ReminderBuffer = v
	}
	if v, ok := getEnvInt("LIFESYNC_AUTOSAVE_SECONDS"); ok && v > 0 {
		cfg.AutosaveSecs = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
