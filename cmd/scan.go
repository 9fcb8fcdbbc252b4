package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odget-downloader/odget/internal/config"
	"github.com/odget-downloader/odget/internal/history"
	"github.com/odget-downloader/odget/internal/preset"
	"github.com/odget-downloader/odget/internal/scanner"
	"github.com/odget-downloader/odget/internal/wget"
)

var scanCmd = &cobra.Command{
	Use:   "scan <term> [source-url]...",
	Short: "Search directory listings for files matching a term",
	Long: `scan fetches every source listing page, extracts its file links and prints
the ones whose filename contains the term (case-insensitive). Sources come
from the arguments, a --preset, or both. With --download every match is
fetched sequentially with wget.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		initializeGlobalState()
		settings := loadSettingsOrDefaults()

		term := args[0]
		sources := append([]string{}, args[1:]...)

		if presetName, _ := cmd.Flags().GetString("preset"); presetName != "" {
			store := preset.Load()
			p, ok := store.Get(presetName)
			if !ok {
				return fmt.Errorf("preset %q not found", presetName)
			}
			sources = append(sources, p.URLs...)
		}
		sources = dedupeURLs(sources)
		if len(sources) == 0 {
			return fmt.Errorf("no sources given: pass listing URLs or --preset")
		}

		s := scanner.New(settings.Scan.Timeout, settings.Scan.UserAgent)
		s.Log = func(line string) { fmt.Fprintln(os.Stderr, line) }
		s.OnSource = func(i, total int, src string) {
			fmt.Fprintf(os.Stderr, "Searching %d/%d: %s\n", i+1, total, src)
		}

		links := s.Scan(cmd.Context(), sources, term)
		if len(links) == 0 {
			fmt.Printf("No files matching %q were found.\n", term)
			return nil
		}

		fmt.Printf("Found %d matching files:\n", len(links))
		for _, l := range links {
			if l.MIME != "" {
				fmt.Printf("  %s  [%s]\n", l.URL, l.MIME)
			} else {
				fmt.Printf("  %s\n", l.URL)
			}
		}

		download, _ := cmd.Flags().GetBool("download")
		if !download {
			return nil
		}

		dest, _ := cmd.Flags().GetString("path")
		if dest == "" {
			dest = settings.General.DefaultDestDir
		}
		dest = config.EnsureAbsPath(dest)

		bin, err := resolveWget(settings)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dest, 0755); err != nil {
			return fmt.Errorf("failed to create destination folder: %w", err)
		}

		resume, _ := cmd.Flags().GetBool("continue")
		urls := make([]string, len(links))
		for i, l := range links {
			urls[i] = l.URL
		}

		eventCh := make(chan any, 100)
		wait := startHeadlessConsumer(eventCh)
		results := wget.RunBatch(cmd.Context(), eventCh, bin, dest, resume, urls, settings.Tool.BatchItemTimeout)
		close(eventCh)
		wait()

		failed := 0
		for _, res := range results {
			if res.ExitCode != 0 {
				failed++
			}
			history.Record(history.Entry{
				ID:         res.RunID,
				URL:        res.URL,
				Command:    res.Command,
				ExitCode:   res.ExitCode,
				StartedAt:  res.Started,
				FinishedAt: res.Started.Add(res.Elapsed),
			})
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d downloads failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("preset", "", "Take source URLs from a saved preset")
	scanCmd.Flags().Bool("download", false, "Download every match sequentially")
	scanCmd.Flags().StringP("path", "p", "", "Destination folder for --download")
	scanCmd.Flags().BoolP("continue", "c", true, "Resume partial files when downloading (-c)")
}
