// Package events defines the messages exchanged between the subprocess
// runner, the listing scanner, and their consumers (TUI or headless stdout).
package events

import (
	"time"

	"github.com/odget-downloader/odget/internal/scanner"
)

// LogLineMsg carries one line of wget output or an application log line.
// RunID is empty for application-level lines.
type LogLineMsg struct {
	RunID string
	Line  string
}

// ProgressMsg is emitted when a wget output line contains a parseable
// progress indication.
type ProgressMsg struct {
	RunID   string
	Percent int
	Speed   string // as printed by wget, e.g. "23.0KB/s"
	ETA     string // as printed by wget, e.g. "00:12"
	Raw     string
}

// RunStartedMsg signals that a wget subprocess was launched.
type RunStartedMsg struct {
	RunID   string
	URL     string
	Command string // shell-quoted preview of the argument vector
}

// RunFinishedMsg signals that a wget subprocess exited.
type RunFinishedMsg struct {
	RunID    string
	URL      string
	ExitCode int
	Err      error
	Elapsed  time.Duration
}

// BatchItemMsg marks the start of one item in a sequential batch run.
type BatchItemMsg struct {
	RunID string
	Index int
	Total int
	URL   string
}

// BatchDoneMsg signals the end of a batch run.
type BatchDoneMsg struct {
	Total  int
	Failed int
}

// ScanSourceMsg marks the start of one source fetch during a search pass.
type ScanSourceMsg struct {
	Index  int
	Total  int
	Source string
}

// ScanDoneMsg delivers the aggregated search results.
type ScanDoneMsg struct {
	Term  string
	Links []scanner.Link
}
