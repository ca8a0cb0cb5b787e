// Package storage persists the small amount of durable state the system
// needs: user settings (guideline source URL, refresh interval) and the raw
// text of the last successfully fetched guideline document.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultRefreshMinutes applies when no interval has been configured.
const DefaultRefreshMinutes = 60

const (
	settingsFile  = "config.yaml"
	cacheDir      = "cache"
	guidelineFile = "guideline.json"
)

// Settings are the user-configurable knobs. Zero values mean "use default":
// an empty SourceURL selects the bundled guideline document, a zero
// RefreshMinutes selects DefaultRefreshMinutes.
type Settings struct {
	SourceURL      string `yaml:"source_url,omitempty"`
	RefreshMinutes int    `yaml:"refresh_minutes,omitempty"`
}

// Store handles all file system persistence.
type Store struct {
	rootPath string
	mu       sync.RWMutex
}

// NewStore creates a store rooted at rootPath, defaulting to ~/.promptforge.
func NewStore(rootPath string) (*Store, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".promptforge")
	}

	if err := os.MkdirAll(filepath.Join(rootPath, cacheDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &Store{rootPath: rootPath}, nil
}

// BaseDir returns the root path of the store.
func (s *Store) BaseDir() string {
	return s.rootPath
}

// Settings reads the settings file. A missing file yields zero-value
// settings, not an error; defaults are applied by the accessors below.
func (s *Store) Settings() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var settings Settings
	data, err := os.ReadFile(filepath.Join(s.rootPath, settingsFile))
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// SaveSettings writes the settings file.
func (s *Store) SaveSettings(settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(filepath.Join(s.rootPath, settingsFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// SourceURL returns the configured guideline source URL, "" when the bundled
// document should be used. Settings read failures degrade to the default with
// a warning rather than blocking resolution.
func (s *Store) SourceURL() string {
	settings, err := s.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return ""
	}
	return settings.SourceURL
}

// RefreshMinutes returns the configured refresh interval, applying the
// default when unset or invalid.
func (s *Store) RefreshMinutes() int {
	settings, err := s.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return DefaultRefreshMinutes
	}
	if settings.RefreshMinutes <= 0 {
		return DefaultRefreshMinutes
	}
	return settings.RefreshMinutes
}

// CachedGuideline returns the raw text of the last persisted guideline
// document, or ok=false when none has ever been saved.
func (s *Store) CachedGuideline() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(filepath.Join(s.rootPath, cacheDir, guidelineFile))
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read cached guideline: %v\n", err)
		}
		return nil, false
	}
	return raw, true
}

// SaveGuideline persists the raw document text so a future resolution
// failure has a fallback.
func (s *Store) SaveGuideline(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.rootPath, cacheDir, guidelineFile)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write cached guideline: %w", err)
	}
	return nil
}
