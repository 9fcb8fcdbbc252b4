package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("ODGET_CONFIG_DIR", t.TempDir())

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Scan.Timeout != 10*time.Second {
		t.Errorf("default scan timeout = %v, want 10s", s.Scan.Timeout)
	}
	if s.Scan.UserAgent != "Mozilla/5.0" {
		t.Errorf("default user agent = %q", s.Scan.UserAgent)
	}
	if s.Tool.BatchItemTimeout != 5*time.Minute {
		t.Errorf("default batch timeout = %v, want 5m", s.Tool.BatchItemTimeout)
	}
}

func TestSaveAndLoadSettings(t *testing.T) {
	t.Setenv("ODGET_CONFIG_DIR", t.TempDir())

	s := DefaultSettings()
	s.General.DefaultDestDir = "/data/downloads"
	s.General.Theme = ThemeDark
	s.Tool.WgetPath = "/opt/bin/wget"

	if err := SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	loaded, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if loaded.General.DefaultDestDir != "/data/downloads" {
		t.Errorf("dest dir = %q", loaded.General.DefaultDestDir)
	}
	if loaded.General.Theme != ThemeDark {
		t.Errorf("theme = %d, want %d", loaded.General.Theme, ThemeDark)
	}
	if loaded.Tool.WgetPath != "/opt/bin/wget" {
		t.Errorf("wget path = %q", loaded.Tool.WgetPath)
	}
}

func TestLoadSettingsPartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ODGET_CONFIG_DIR", dir)

	partial := `{"general": {"default_dest_dir": "/mnt/dl"}}`
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.General.DefaultDestDir != "/mnt/dl" {
		t.Errorf("dest dir = %q, want /mnt/dl", s.General.DefaultDestDir)
	}
	if s.Scan.Timeout != 10*time.Second {
		t.Errorf("missing scan section should keep defaults, got %v", s.Scan.Timeout)
	}
}

func TestGetOdgetDirEnvOverride(t *testing.T) {
	t.Setenv("ODGET_CONFIG_DIR", "/custom/odget")
	if got := GetOdgetDir(); got != "/custom/odget" {
		t.Errorf("GetOdgetDir() = %q, want /custom/odget", got)
	}
}
