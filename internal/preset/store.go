package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/odget-downloader/odget/internal/config"
	"github.com/odget-downloader/odget/internal/utils"
)

// Store is the name-to-preset mapping backed by one JSON file. Presets are
// created or overwritten on explicit save and never auto-deleted.
type Store struct {
	path    string
	presets map[string]Preset
}

// GetPresetsPath returns the path to the presets JSON document.
func GetPresetsPath() string {
	return filepath.Join(config.GetOdgetDir(), "presets.json")
}

// Load reads the preset document from its default location. Any read or
// decode failure degrades to an empty store: presets are a convenience, not
// something worth refusing to start over.
func Load() *Store {
	return LoadFrom(GetPresetsPath())
}

// LoadFrom reads the preset document at path.
func LoadFrom(path string) *Store {
	s := &Store{path: path, presets: make(map[string]Preset)}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.Debug("preset: read failed, starting empty: %v", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.presets); err != nil {
		utils.Debug("preset: decode failed, starting empty: %v", err)
		s.presets = make(map[string]Preset)
	}
	return s
}

// Names returns all preset names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a preset by name.
func (s *Store) Get(name string) (Preset, bool) {
	p, ok := s.presets[name]
	return p, ok
}

// Set stores a preset under name, overwriting any existing one. The change is
// not persisted until Save.
func (s *Store) Set(name string, p Preset) {
	s.presets[name] = p
}

// Delete removes a preset by name. The change is not persisted until Save.
func (s *Store) Delete(name string) {
	delete(s.presets, name)
}

// Len returns the number of stored presets.
func (s *Store) Len() int {
	return len(s.presets)
}

// Save writes the whole document atomically. Legacy single-URL presets that
// were upgraded on load are written back in list form here.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}

	data, err := json.MarshalIndent(s.presets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets: %w", err)
	}
	return os.Rename(tempPath, s.path)
}
