package wget

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/odget-downloader/odget/internal/events"
	"github.com/odget-downloader/odget/internal/utils"
)

// Output line patterns, e.g.
//
//	12% [=======>        ]  1,234,567  23.0KB/s  eta 00:12
var (
	progressPctRe = regexp.MustCompile(`(\d{1,3})%`)
	speedETARe    = regexp.MustCompile(`(?i)([\d.,]+[KMG]?B?/s).+?eta\s+(\d{2}:\d{2}(?::\d{2})?)`)
)

// ParseProgress extracts progress information from one wget output line.
// ok is false when the line carries no percentage.
func ParseProgress(line string) (percent int, speed, eta string, ok bool) {
	m := progressPctRe.FindStringSubmatch(line)
	if m == nil {
		return 0, "", "", false
	}
	percent, err := strconv.Atoi(m[1])
	if err != nil || percent > 100 {
		return 0, "", "", false
	}
	if m2 := speedETARe.FindStringSubmatch(line); m2 != nil {
		speed, eta = m2[1], m2[2]
	}
	return percent, speed, eta, true
}

// Runner supervises a single asynchronous wget subprocess. Output lines and
// the final exit status are delivered as events; Stop is terminate-and-await.
// At most one process runs at a time.
type Runner struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	done   chan struct{}
	events chan<- any
}

// NewRunner returns a Runner that publishes to the given event channel.
func NewRunner(eventCh chan<- any) *Runner {
	return &Runner{events: eventCh}
}

// Running reports whether a subprocess is currently active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cmd != nil
}

// Start launches bin with args, working directory workDir, and streams merged
// stdout/stderr back as LogLineMsg and ProgressMsg events, followed by one
// RunFinishedMsg. It returns immediately after the process starts; the
// returned channel receives the final event exactly once for callers that
// need to block on completion.
func (r *Runner) Start(runID, bin string, args []string, workDir, url string) (<-chan events.RunFinishedMsg, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return nil, errors.New("a download is already running")
	}

	cmd := exec.Command(bin, args...)
	cmd.Dir = workDir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", bin, err)
	}

	r.cmd = cmd
	r.done = make(chan struct{})
	finishedCh := make(chan events.RunFinishedMsg, 1)
	started := time.Now()

	r.events <- events.RunStartedMsg{
		RunID:   runID,
		URL:     url,
		Command: QuoteCommand(append([]string{bin}, args...)),
	}
	utils.Debug("runner: started %s (pid %d, cwd %s)", bin, cmd.Process.Pid, workDir)

	go func() {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		// wget redraws progress with carriage returns; split on both.
		scanner.Split(scanCRLFLines)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			r.events <- events.LogLineMsg{RunID: runID, Line: line}
			if pct, speed, eta, ok := ParseProgress(line); ok {
				r.events <- events.ProgressMsg{
					RunID:   runID,
					Percent: pct,
					Speed:   speed,
					ETA:     eta,
					Raw:     line,
				}
			}
		}

		err := cmd.Wait()
		exitCode := 0
		if err != nil {
			exitCode = -1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			}
		}
		utils.Debug("runner: finished (exit %d, err %v)", exitCode, err)

		r.mu.Lock()
		r.cmd = nil
		done := r.done
		r.done = nil
		r.mu.Unlock()

		finished := events.RunFinishedMsg{
			RunID:    runID,
			URL:      url,
			ExitCode: exitCode,
			Err:      err,
			Elapsed:  time.Since(started),
		}
		r.events <- finished
		finishedCh <- finished
		close(done)
	}()

	return finishedCh, nil
}

// Stop kills the running subprocess and waits for its exit event to be
// published. It is a no-op when nothing is running.
func (r *Runner) Stop() {
	r.mu.Lock()
	cmd := r.cmd
	done := r.done
	r.mu.Unlock()

	if cmd == nil {
		return
	}
	_ = cmd.Process.Kill()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		utils.Debug("runner: timed out waiting for killed process")
	}
}

// scanCRLFLines is a bufio.SplitFunc that treats both \n and \r as line
// terminators, so wget's in-place progress updates arrive as separate lines.
func scanCRLFLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for i, b := range data {
		if b == '\n' || b == '\r' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// BatchResult summarizes one item of a sequential batch run.
type BatchResult struct {
	RunID    string
	URL      string
	Command  string
	ExitCode int
	Err      error
	Started  time.Time
	Elapsed  time.Duration
}

// RunBatch fetches urls one at a time into dest using the minimal single-file
// argument vector. Each item is bounded by itemTimeout; a non-zero exit or
// timeout is reported and the batch continues. Results are returned in input
// order and also published as events.
func RunBatch(ctx context.Context, eventCh chan<- any, bin, dest string, resume bool, urls []string, itemTimeout time.Duration) []BatchResult {
	results := make([]BatchResult, 0, len(urls))
	failed := 0

	for i, url := range urls {
		if ctx.Err() != nil {
			break
		}

		runID := uuid.New().String()
		args := FetchArgs(dest, resume, url)
		eventCh <- events.BatchItemMsg{RunID: runID, Index: i, Total: len(urls), URL: url}

		res := runOne(ctx, eventCh, runID, bin, args, dest, url, itemTimeout)
		if res.ExitCode != 0 {
			failed++
		}
		results = append(results, res)
	}

	eventCh <- events.BatchDoneMsg{Total: len(results), Failed: failed}
	return results
}

func runOne(ctx context.Context, eventCh chan<- any, runID, bin string, args []string, dest, url string, itemTimeout time.Duration) BatchResult {
	itemCtx := ctx
	if itemTimeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, itemTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(itemCtx, bin, args...)
	cmd.Dir = dest

	started := time.Now()
	out, err := cmd.CombinedOutput()

	for _, line := range splitOutputLines(out) {
		eventCh <- events.LogLineMsg{RunID: runID, Line: line}
	}

	exitCode := 0
	if err != nil {
		exitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if errors.Is(itemCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timeout downloading %s", url)
		}
		eventCh <- events.LogLineMsg{RunID: runID, Line: fmt.Sprintf("Failed to download: %s (%v)", url, err)}
	} else {
		eventCh <- events.LogLineMsg{RunID: runID, Line: "Successfully downloaded: " + utils.FileNameFromURL(url)}
	}

	return BatchResult{
		RunID:    runID,
		URL:      url,
		Command:  QuoteCommand(append([]string{bin}, args...)),
		ExitCode: exitCode,
		Err:      err,
		Started:  started,
		Elapsed:  time.Since(started),
	}
}

func splitOutputLines(out []byte) []string {
	var lines []string
	start := 0
	for i, b := range out {
		if b == '\n' || b == '\r' {
			if i > start {
				lines = append(lines, string(out[start:i]))
			}
			start = i + 1
		}
	}
	if start < len(out) {
		lines = append(lines, string(out[start:]))
	}
	return lines
}
