package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/odget-downloader/odget/internal/config"
	"github.com/odget-downloader/odget/internal/history"
	"github.com/odget-downloader/odget/internal/tui"
	"github.com/odget-downloader/odget/internal/utils"
	"github.com/odget-downloader/odget/internal/wget"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "odget",
	Short: "A terminal front-end for wget specialized for open directory listings",
	Long: `odget builds wget commands from structured options, runs wget with live
output, and searches open directory listings for files to download.
Running odget without a subcommand starts the interactive TUI.`,
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		initializeGlobalState()

		isMaster, err := AcquireLock()
		if err != nil {
			fmt.Printf("Error acquiring lock: %v\n", err)
			os.Exit(1)
		}
		if !isMaster {
			fmt.Fprintln(os.Stderr, "Error: odget is already running.")
			fmt.Fprintln(os.Stderr, "Use 'odget get <url>' for a one-shot headless download.")
			os.Exit(1)
		}
		defer func() {
			if err := ReleaseLock(); err != nil {
				utils.Debug("Error releasing lock: %v", err)
			}
		}()

		settings := loadSettingsOrDefaults()

		outputDir, _ := cmd.Flags().GetString("output")
		if outputDir != "" {
			settings.General.DefaultDestDir = outputDir
		}

		eventCh := make(chan any, 100)
		m := tui.InitialRootModel(settings, Version, eventCh)

		p := tea.NewProgram(m, tea.WithAltScreen())

		// Background listener for runner/scanner events
		go func() {
			for msg := range eventCh {
				p.Send(msg)
			}
		}()

		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running program: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("output", "o", "", "Default destination directory")
	rootCmd.SetVersionTemplate("odget version {{.Version}}\n")
}

// initializeGlobalState sets up directories, the history DB and debug logging.
func initializeGlobalState() {
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create config directories: %v\n", err)
	}

	history.Configure(filepath.Join(config.GetStateDir(), "odget.db"))
	utils.ConfigureDebug(config.GetLogsDir())

	settings := loadSettingsOrDefaults()
	utils.CleanupLogs(settings.General.LogRetentionCount)
}

func loadSettingsOrDefaults() *config.Settings {
	settings, err := config.LoadSettings()
	if err != nil {
		utils.Debug("settings load failed, using defaults: %v", err)
		return config.DefaultSettings()
	}
	return settings
}

// resolveWget locates the wget executable, honoring the settings override.
// The warning for a missing tool is surfaced before any launch attempt.
func resolveWget(settings *config.Settings) (string, error) {
	bin, err := wget.LookPath(settings.Tool.WgetPath)
	if err != nil {
		return "", fmt.Errorf("wget not found in PATH. Install it and try again")
	}
	return bin, nil
}
