package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odget-downloader/odget/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent wget runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		initializeGlobalState()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := history.Recent(limit)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		for _, e := range entries {
			id := e.ID
			if len(id) > 8 {
				id = id[:8]
			}
			status := "ok"
			if e.ExitCode != 0 {
				status = fmt.Sprintf("exit %d", e.ExitCode)
			}
			fmt.Printf("%s  [%s]  %-8s  %s\n",
				e.StartedAt.Format("2006-01-02 15:04:05"), id, status, e.URL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
}
