package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"vaultshot/internal/picker"
	"vaultshot/pkg/screencapture"
)

var (
	copyLink   bool
	jsonOutput bool
	immediate  bool
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Click a window to capture it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runCapture(cmd, screencapture.ModeWindow)
	},
}

var areaCmd = &cobra.Command{
	Use:     "area",
	Aliases: []string{"interactive"},
	Short:   "Drag to select an area to capture",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runCapture(cmd, screencapture.ModeArea)
	},
}

var fullscreenCmd = &cobra.Command{
	Use:   "fullscreen",
	Short: "Capture the entire screen (1 second delay)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		mode := screencapture.ModeFullscreen
		if immediate {
			mode = screencapture.ModeFullscreenImmediate
		}
		runCapture(cmd, mode)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show all screenshot options",
	Args:  cobra.NoArgs,
	Run:   runMenu,
}

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Select an area and copy it to the clipboard without saving",
	Args:  cobra.NoArgs,
	Run:   runClipboard,
}

func addCaptureFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&copyLink, "copy", false, "Also copy the markdown image reference to the clipboard")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the capture record as JSON")
}

func init() {
	fullscreenCmd.Flags().BoolVar(&immediate, "immediate", false, "Capture without the 1 second delay")
	for _, c := range []*cobra.Command{windowCmd, areaCmd, fullscreenCmd, menuCmd} {
		addCaptureFlags(c)
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(clipboardCmd)
}

func runCapture(cmd *cobra.Command, mode screencapture.Mode) {
	a := mustOpenApp()
	defer a.Close()

	result := a.service(copyLink).Take(cmd.Context(), mode)

	if jsonOutput {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			a.exit(1)
		}
	}
}

func runMenu(cmd *cobra.Command, args []string) {
	mode, ok, err := picker.Run(cmd.Context(), os.Stdin, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		return
	}
	runCapture(cmd, mode)
}

func runClipboard(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	// Failures are already reported to the user.
	a.service(false).ToClipboard(cmd.Context())
}
