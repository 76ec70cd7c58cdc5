package config

import (
	"sync"
	"time"

	"github.com/alexisbeaulieu97/barbar/internal/debounce"
	"github.com/alexisbeaulieu97/barbar/internal/logger"
)

// SaveDebounceDelay is how long settings must stay unchanged before they are written.
const SaveDebounceDelay = 1000 * time.Millisecond

// SettingsStore holds the live settings and persists changes with a debounce,
// so a burst of edits produces a single write of the final state.
type SettingsStore struct {
	path string
	log  *logger.Logger

	mu       sync.RWMutex
	settings Settings
	saver    *debounce.Debouncer
	lastErr  error
}

// NewSettingsStore wraps already loaded settings that persist to path.
func NewSettingsStore(path string, settings Settings, delay time.Duration, log *logger.Logger) *SettingsStore {
	if delay <= 0 {
		delay = SaveDebounceDelay
	}
	return &SettingsStore{
		path:     path,
		log:      log.Component("settings"),
		settings: settings,
		saver:    debounce.New(delay),
	}
}

// Path returns the file the store writes to.
func (s *SettingsStore) Path() string {
	return s.path
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to the settings and schedules a save.
func (s *SettingsStore) Update(fn func(*Settings)) {
	s.mu.Lock()
	fn(&s.settings)
	s.mu.Unlock()

	s.saver.Trigger(s.save)
}

// Pending reports whether a write is scheduled.
func (s *SettingsStore) Pending() bool {
	return s.saver.Pending()
}

// Flush writes any scheduled change immediately and returns the last save error.
func (s *SettingsStore) Flush() error {
	s.saver.Flush()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Close flushes pending changes and stops accepting new ones.
func (s *SettingsStore) Close() error {
	err := s.Flush()
	s.saver.Stop()
	return err
}

func (s *SettingsStore) save() {
	snapshot := s.Settings()
	err := SaveSettings(s.path, snapshot)

	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.log.Error(err, "failed to save settings")
		return
	}
	s.log.WithFields(map[string]any{"path": s.path}).Debug("saved settings")
}
