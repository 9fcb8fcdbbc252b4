package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odget-downloader/odget/internal/preset"
	"github.com/odget-downloader/odget/internal/wget"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved download presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	Run: func(cmd *cobra.Command, args []string) {
		store := preset.Load()
		names := store.Names()
		if len(names) == 0 {
			fmt.Println("No presets saved.")
			return
		}
		for _, name := range names {
			p, _ := store.Get(name)
			fmt.Printf("%-20s %d source(s)\n", name, len(p.URLs))
		}
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a preset's sources and compiled command",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := preset.Load()
		p, ok := store.Get(args[0])
		if !ok {
			return fmt.Errorf("preset %q not found", args[0])
		}

		fmt.Printf("Preset: %s\n", args[0])
		fmt.Printf("Destination: %s\n", p.Dest)
		fmt.Println("Sources:")
		for _, u := range p.URLs {
			fmt.Printf("  %s\n", u)
		}
		fmt.Println("Command preview:")
		for _, u := range p.URLs {
			argv := append([]string{"wget"}, wget.BuildArgs(p.Options, p.Dest, u)...)
			fmt.Printf("  %s\n", wget.QuoteCommand(argv))
		}
		return nil
	},
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name> [source-url]...",
	Short: "Save a preset from the given sources and option flags",
	Long: `save records the source URLs, destination and all option flags under the
given name. Saving over an existing name overwrites it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		p := preset.New()
		p.Options = optionsFromFlags(cmd)
		p.Dest, _ = cmd.Flags().GetString("path")
		for _, u := range args[1:] {
			p.AddURL(u)
		}

		store := preset.Load()
		store.Set(name, p)
		if err := store.Save(); err != nil {
			return fmt.Errorf("failed to save presets: %w", err)
		}
		fmt.Printf("Preset '%s' saved.\n", name)
		return nil
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := preset.Load()
		if _, ok := store.Get(args[0]); !ok {
			return fmt.Errorf("preset %q not found", args[0])
		}
		store.Delete(args[0])
		if err := store.Save(); err != nil {
			return fmt.Errorf("failed to save presets: %w", err)
		}
		fmt.Printf("Preset '%s' deleted.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetShowCmd)
	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetDeleteCmd)

	presetSaveCmd.Flags().StringP("path", "p", "", "Destination folder stored in the preset")
	addOptionFlags(presetSaveCmd)
}
