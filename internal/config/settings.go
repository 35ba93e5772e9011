package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const settingsFile = "settings.json"

// LangSettings holds the per-language review selection.
type LangSettings struct {
	FilterEnabled bool     `json:"filter_enabled"`
	Topics        []string `json:"topics,omitempty"`
}

// Settings is the persisted user state that is not learner progress:
// active language, training direction, and the review topic filter.
type Settings struct {
	ActiveLang string                  `json:"active_lang,omitempty"`
	Direction  string                  `json:"direction,omitempty"`
	Review     map[string]LangSettings `json:"review,omitempty"`
}

// DefaultSettings returns the first-run settings.
func DefaultSettings() *Settings {
	return &Settings{
		ActiveLang: "en",
		Direction:  "front_to_back",
		Review:     map[string]LangSettings{},
	}
}

// LoadSettings reads settings.json from dir, returning defaults when the
// file does not exist yet.
func LoadSettings(dir string) (*Settings, error) {
	data, err := os.ReadFile(filepath.Join(dir, settingsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	s := DefaultSettings()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if s.Review == nil {
		s.Review = map[string]LangSettings{}
	}
	return s, nil
}

// Save writes the settings to dir.
func (s *Settings) Save(dir string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, settingsFile), data, 0o644); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ReviewFilter returns the review topic selection for lang.
func (s *Settings) ReviewFilter(lang string) (enabled bool, topics []string) {
	ls := s.Review[lang]
	return ls.FilterEnabled, ls.Topics
}

// SetReviewFilter replaces the review topic selection for lang.
func (s *Settings) SetReviewFilter(lang string, enabled bool, topics []string) {
	if s.Review == nil {
		s.Review = map[string]LangSettings{}
	}
	s.Review[lang] = LangSettings{FilterEnabled: enabled, Topics: topics}
}
