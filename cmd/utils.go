package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odget-downloader/odget/internal/events"
	"github.com/odget-downloader/odget/internal/wget"
)

// readURLsFromFile reads URLs from a file, one per line. Blank lines and
// #-comments are skipped.
func readURLsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	scanner := bufio.NewScanner(file)

	// Increase buffer size for long URLs (default is 64KB, increase to 1MB)
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return urls, nil
}

// dedupeURLs keeps the first occurrence of each URL, preserving order.
func dedupeURLs(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// addOptionFlags registers the full wget option set on a command. The same
// set backs `get` and `preset save` so presets capture exactly what a run
// would use.
func addOptionFlags(cmd *cobra.Command) {
	defaults := wget.DefaultOptions()
	cmd.Flags().BoolP("recursive", "r", defaults.Recursive, "Recursive retrieval (-r)")
	cmd.Flags().Bool("no-parent", defaults.NoParent, "Never ascend to the parent directory (-np)")
	cmd.Flags().BoolP("mirror", "m", defaults.Mirror, "Mirror mode (-m, implies -r -N -l inf)")
	cmd.Flags().IntP("depth", "l", defaults.Depth, "Recursion depth (-l), 0 leaves wget's default")
	cmd.Flags().Int("cut-dirs", defaults.CutDirs, "Number of directory components to strip (--cut-dirs)")
	cmd.Flags().Bool("no-host-dir", defaults.NoHostDir, "Do not create host directories (-nH)")
	cmd.Flags().BoolP("timestamping", "N", defaults.Timestamp, "Only fetch files newer than local copies (-N)")
	cmd.Flags().BoolP("continue", "c", defaults.Continue, "Resume partially downloaded files (-c)")
	cmd.Flags().Bool("no-clobber", defaults.DoNotClobber, "Skip files that already exist (-nc)")
	cmd.Flags().String("limit-rate", defaults.LimitRate, "Rate limit, e.g. 50k or 1m (--limit-rate)")
	cmd.Flags().IntP("tries", "t", defaults.Tries, "Max retries (--tries), 0 omits the flag")
	cmd.Flags().IntP("timeout", "T", defaults.Timeout, "Network timeout seconds (--timeout), 0 omits the flag")
	cmd.Flags().StringP("accept", "A", defaults.Accept, "Comma-separated accepted suffixes (--accept)")
	cmd.Flags().StringP("reject", "R", defaults.Reject, "Comma-separated rejected suffixes (--reject)")
	cmd.Flags().String("reject-regex", defaults.RejectRegex, "URL reject regex (--reject-regex)")
	cmd.Flags().StringP("user-agent", "U", defaults.UserAgent, "User-Agent header (--user-agent)")
	cmd.Flags().BoolP("span-hosts", "H", defaults.SpanHosts, "Span to foreign hosts (-H)")
	cmd.Flags().BoolP("follow-ftp", "F", defaults.FollowFTP, "Follow FTP links (-F)")
}

// optionsFromFlags assembles an option record from the flags registered by
// addOptionFlags.
func optionsFromFlags(cmd *cobra.Command) wget.Options {
	var opts wget.Options
	opts.Recursive, _ = cmd.Flags().GetBool("recursive")
	opts.NoParent, _ = cmd.Flags().GetBool("no-parent")
	opts.Mirror, _ = cmd.Flags().GetBool("mirror")
	opts.Depth, _ = cmd.Flags().GetInt("depth")
	opts.CutDirs, _ = cmd.Flags().GetInt("cut-dirs")
	opts.NoHostDir, _ = cmd.Flags().GetBool("no-host-dir")
	opts.Timestamp, _ = cmd.Flags().GetBool("timestamping")
	opts.Continue, _ = cmd.Flags().GetBool("continue")
	opts.DoNotClobber, _ = cmd.Flags().GetBool("no-clobber")
	opts.LimitRate, _ = cmd.Flags().GetString("limit-rate")
	opts.Tries, _ = cmd.Flags().GetInt("tries")
	opts.Timeout, _ = cmd.Flags().GetInt("timeout")
	opts.Accept, _ = cmd.Flags().GetString("accept")
	opts.Reject, _ = cmd.Flags().GetString("reject")
	opts.RejectRegex, _ = cmd.Flags().GetString("reject-regex")
	opts.UserAgent, _ = cmd.Flags().GetString("user-agent")
	opts.SpanHosts, _ = cmd.Flags().GetBool("span-hosts")
	opts.FollowFTP, _ = cmd.Flags().GetBool("follow-ftp")
	return opts
}

// startHeadlessConsumer prints runner events to stdout for non-TUI commands.
// It returns a function that waits for the consumer to drain after the event
// channel is closed.
func startHeadlessConsumer(eventCh chan any) (wait func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range eventCh {
			switch m := msg.(type) {
			case events.RunStartedMsg:
				fmt.Printf("Starting: %s\n", m.Command)
			case events.LogLineMsg:
				fmt.Println(m.Line)
			case events.RunFinishedMsg:
				if m.ExitCode == 0 {
					fmt.Printf("Download completed successfully (in %s).\n", m.Elapsed.Round(timeRound))
				} else {
					fmt.Printf("wget finished with exit code %d.\n", m.ExitCode)
				}
			case events.BatchItemMsg:
				fmt.Printf("\nDownloading %d/%d: %s\n", m.Index+1, m.Total, m.URL)
			case events.BatchDoneMsg:
				fmt.Printf("\nAll downloads completed (%d total, %d failed).\n", m.Total, m.Failed)
			case events.ScanSourceMsg:
				fmt.Printf("Searching %d/%d: %s\n", m.Index+1, m.Total, m.Source)
			}
		}
	}()
	return func() { <-done }
}
