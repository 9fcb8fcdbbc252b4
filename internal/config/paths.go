package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetOdgetDir returns the per-user config root based on OS conventions.
// Override with ODGET_CONFIG_DIR (used by tests).
func GetOdgetDir() string {
	if dir := os.Getenv("ODGET_CONFIG_DIR"); dir != "" {
		return dir
	}
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(appData, "odget")
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "odget")
	default:
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, _ := os.UserHomeDir()
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, "odget")
	}
}

// GetStateDir returns the directory for persistent state (history DB).
func GetStateDir() string {
	return filepath.Join(GetOdgetDir(), "state")
}

// GetLogsDir returns the directory for debug logs.
func GetLogsDir() string {
	return filepath.Join(GetOdgetDir(), "logs")
}

// GetRuntimeDir returns the directory for runtime files (instance lock).
// Linux: $XDG_RUNTIME_DIR/odget or fallback to GetStateDir() if unset
// macOS: $TMPDIR/odget-runtime
// Windows: %TEMP%/odget
func GetRuntimeDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.TempDir(), "odget")
	case "darwin":
		return filepath.Join(os.TempDir(), "odget-runtime")
	default:
		runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
		if runtimeDir != "" {
			return filepath.Join(runtimeDir, "odget")
		}
		return GetStateDir()
	}
}

// EnsureDirs creates all required directories.
func EnsureDirs() error {
	dirs := []string{GetOdgetDir(), GetStateDir(), GetLogsDir(), GetRuntimeDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// EnsureAbsPath normalizes a path for consistent working-directory handling.
func EnsureAbsPath(path string) string {
	if path == "" {
		path = "."
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
