package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/odget-downloader/odget/internal/config"
	"github.com/odget-downloader/odget/internal/events"
	"github.com/odget-downloader/odget/internal/history"
	"github.com/odget-downloader/odget/internal/wget"
)

const timeRound = 100 * time.Millisecond

var getCmd = &cobra.Command{
	Use:   "get [url]...",
	Short: "Download one or more directory URLs with wget (headless)",
	Long: `get compiles the option flags into a wget command and runs it for each
URL in turn, streaming wget's output to stdout. With --dry-run the compiled
command line is printed without executing anything.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		initializeGlobalState()
		settings := loadSettingsOrDefaults()

		urls := append([]string{}, args...)
		if batchFile, _ := cmd.Flags().GetString("batch"); batchFile != "" {
			fileURLs, err := readURLsFromFile(batchFile)
			if err != nil {
				return fmt.Errorf("error reading batch file: %w", err)
			}
			urls = append(urls, fileURLs...)
		}
		urls = dedupeURLs(urls)
		if len(urls) == 0 {
			return fmt.Errorf("no URLs given: pass them as arguments or via --batch")
		}

		opts := optionsFromFlags(cmd)
		dest, _ := cmd.Flags().GetString("path")
		if dest == "" {
			dest = settings.General.DefaultDestDir
		}
		dest = config.EnsureAbsPath(dest)

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if dryRun {
			for _, url := range urls {
				argv := append([]string{"wget"}, wget.BuildArgs(opts, dest, url)...)
				fmt.Println(wget.QuoteCommand(argv))
			}
			return nil
		}

		bin, err := resolveWget(settings)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dest, 0755); err != nil {
			return fmt.Errorf("failed to create destination folder: %w", err)
		}

		eventCh := make(chan any, 100)
		wait := startHeadlessConsumer(eventCh)
		runner := wget.NewRunner(eventCh)

		// Sequential execution, one completed process at a time.
		failures := 0
		for _, url := range urls {
			runID := uuid.New().String()
			argv := wget.BuildArgs(opts, dest, url)

			started := time.Now()
			finishedCh, err := runner.Start(runID, bin, argv, dest, url)
			if err != nil {
				eventCh <- events.LogLineMsg{Line: fmt.Sprintf("Error launching wget for %s: %v", url, err)}
				failures++
				continue
			}
			finished := <-finishedCh
			if finished.ExitCode != 0 {
				failures++
			}
			history.Record(history.Entry{
				ID:         runID,
				URL:        url,
				Command:    wget.QuoteCommand(append([]string{bin}, argv...)),
				ExitCode:   finished.ExitCode,
				StartedAt:  started,
				FinishedAt: time.Now(),
			})
		}

		close(eventCh)
		wait()

		if failures > 0 {
			return fmt.Errorf("%d of %d downloads failed", failures, len(urls))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringP("path", "p", "", "Destination folder (default: settings default_dest_dir)")
	getCmd.Flags().StringP("batch", "b", "", "File containing URLs to download (one per line)")
	getCmd.Flags().Bool("dry-run", false, "Print the compiled wget command(s) without running")
	addOptionFlags(getCmd)
}
