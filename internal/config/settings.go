package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Settings holds all user-configurable application settings organized by category.
type Settings struct {
	General GeneralSettings `json:"general"`
	Scan    ScanSettings    `json:"scan"`
	Tool    ToolSettings    `json:"tool"`
}

// GeneralSettings contains application behavior settings.
type GeneralSettings struct {
	DefaultDestDir    string `json:"default_dest_dir"`
	Theme             int    `json:"theme"`
	LogRetentionCount int    `json:"log_retention_count"`
}

const (
	ThemeAdaptive = 0
	ThemeLight    = 1
	ThemeDark     = 2
)

// ScanSettings controls how directory listings are fetched during a search.
type ScanSettings struct {
	UserAgent string        `json:"user_agent"`
	Timeout   time.Duration `json:"timeout"`
}

// ToolSettings configures the external downloader invocation.
type ToolSettings struct {
	// WgetPath overrides PATH lookup of the wget executable. Empty means
	// resolve from PATH at launch time.
	WgetPath string `json:"wget_path"`
	// BatchItemTimeout bounds each sequential batch download.
	BatchItemTimeout time.Duration `json:"batch_item_timeout"`
}

// DefaultSettings returns a new Settings instance with sensible defaults.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()

	return &Settings{
		General: GeneralSettings{
			DefaultDestDir:    filepath.Join(homeDir, "Downloads"),
			Theme:             ThemeAdaptive,
			LogRetentionCount: 5,
		},
		Scan: ScanSettings{
			UserAgent: "Mozilla/5.0",
			Timeout:   10 * time.Second,
		},
		Tool: ToolSettings{
			WgetPath:         "",
			BatchItemTimeout: 5 * time.Minute,
		},
	}
}

// GetSettingsPath returns the path to the settings JSON file.
func GetSettingsPath() string {
	return filepath.Join(GetOdgetDir(), "settings.json")
}

// LoadSettings loads settings from disk. Returns defaults if file doesn't exist.
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings() // Start with defaults to fill any missing fields
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// SaveSettings saves settings to disk atomically.
func SaveSettings(s *Settings) error {
	path := GetSettingsPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: write to temp file, then rename
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tempPath, path)
}
