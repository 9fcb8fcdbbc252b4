package cmd

import (
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/odget-downloader/odget/internal/config"
)

var instanceLock *flock.Flock

// AcquireLock takes the single-instance lock. Two interactive sessions would
// race on the preset file and fight over the running wget process, so only
// one TUI may run at a time. Returns false when another instance holds it.
func AcquireLock() (bool, error) {
	lockPath := filepath.Join(config.GetRuntimeDir(), "odget.lock")
	instanceLock = flock.New(lockPath)
	return instanceLock.TryLock()
}

// ReleaseLock releases the single-instance lock.
func ReleaseLock() error {
	if instanceLock == nil {
		return nil
	}
	return instanceLock.Unlock()
}
