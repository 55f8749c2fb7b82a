package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"vaultshot/internal/settings"
	"vaultshot/pkg/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the vault's screenshot settings",
	Args:  cobra.NoArgs,
	Run:   runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting (" + strings.Join(settings.Keys, ", ") + ")",
	Args:  cobra.ExactArgs(2),
	Run:   runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()
	printSettings(a.settings, a.settingsPath)
}

func runSettingsSet(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	s := a.settings
	if err := settings.Set(&s, args[0], args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.exit(1)
	}
	if err := settings.Save(a.settingsPath, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
		a.exit(1)
	}
	printSettings(s, a.settingsPath)
}

func printSettings(s models.Settings, path string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(path)
	t.AppendHeader(table.Row{"Key", "Value", "Description"})
	t.AppendRows([]table.Row{
		{"folder", s.OutputFolder, "Folder where screenshots are saved (relative to vault root)"},
		{"format", s.Format, "File format: png, jpg or pdf"},
		{"timestamp", s.IncludeTimestamp, "Add a timestamp to file names to avoid overwriting"},
		{"auto-insert", s.AutoInsert, "Insert screenshots into the active note"},
	})
	t.Render()
}
