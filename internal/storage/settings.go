package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// ─────────────────────────────────────────────────────────────
// App Settings
// ─────────────────────────────────────────────────────────────
//
// Window size and the last directory chosen in a project dialog, kept as
// key/value rows in app_settings. Projects themselves live in their own
// blockly.json files, never here.

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"
	settingLastDir      = "last_dir"

	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 800
	minWindowWidth      = 800
	minWindowHeight     = 600
)

// SettingsStore reads and writes app_settings.
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a SettingsStore. A nil db yields defaults and
// rejects writes.
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// WindowSize returns the saved window dimensions, or defaults when nothing
// usable is stored.
func (s *SettingsStore) WindowSize() WindowSize {
	size := WindowSize{Width: DefaultWindowWidth, Height: DefaultWindowHeight}
	if s.db == nil {
		return size
	}
	if w, err := s.getInt(settingWindowWidth); err == nil && w >= minWindowWidth {
		size.Width = w
	}
	if h, err := s.getInt(settingWindowHeight); err == nil && h >= minWindowHeight {
		size.Height = h
	}
	return size
}

// SaveWindowSize persists the current window dimensions.
func (s *SettingsStore) SaveWindowSize(width, height int) error {
	if err := s.set(settingWindowWidth, strconv.Itoa(width)); err != nil {
		return err
	}
	return s.set(settingWindowHeight, strconv.Itoa(height))
}

// LastDir returns the directory last used in a project dialog, or "".
func (s *SettingsStore) LastDir() string {
	if s.db == nil {
		return ""
	}
	v, _ := s.get(settingLastDir)
	return v
}

// SaveLastDir records dir for the next project dialog.
func (s *SettingsStore) SaveLastDir(dir string) error {
	return s.set(settingLastDir, dir)
}

func (s *SettingsStore) get(key string) (string, error) {
	var v string
	err := s.db.Conn().QueryRow(`SELECT value FROM app_settings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

func (s *SettingsStore) getInt(key string) (int, error) {
	v, err := s.get(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

func (s *SettingsStore) set(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("settings: no db")
	}
	_, err := s.db.Conn().Exec(
		`INSERT INTO app_settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}
