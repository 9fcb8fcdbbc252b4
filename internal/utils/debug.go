package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

var (
	debugMu   sync.Mutex
	debugFile *os.File
	debugDir  string
)

// ConfigureDebug directs debug output to a timestamped file under dir.
// Before configuration, Debug is a no-op.
func ConfigureDebug(dir string) {
	debugMu.Lock()
	defer debugMu.Unlock()

	debugDir = dir
	name := fmt.Sprintf("odget-%s.log", time.Now().Format("20060102-150405"))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return
	}
	if debugFile != nil {
		_ = debugFile.Close()
	}
	debugFile = f
}

// Debug writes a timestamped message to the debug log file.
func Debug(format string, args ...any) {
	debugMu.Lock()
	defer debugMu.Unlock()

	if debugFile == nil {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(debugFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
	_ = debugFile.Sync() // Flush immediately
}

// CleanupLogs removes old log files from the configured log directory,
// keeping the most recent `keep` files.
func CleanupLogs(keep int) {
	debugMu.Lock()
	dir := debugDir
	debugMu.Unlock()

	if dir == "" || keep <= 0 {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".log" {
			logs = append(logs, e.Name())
		}
	}
	if len(logs) <= keep {
		return
	}
	// Timestamped names sort chronologically.
	sort.Strings(logs)
	for _, name := range logs[:len(logs)-keep] {
		_ = os.Remove(filepath.Join(dir, name))
	}
}
