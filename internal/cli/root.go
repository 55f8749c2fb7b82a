package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"vaultshot/pkg/screencapture"
)

var (
	vaultDir      string
	logLevel      string
	logFormat     string
	desktopNotify bool
)

var rootCmd = &cobra.Command{
	Use:   "vaultshot [mode]",
	Short: "Capture macOS screenshots straight into your notes",
	Long: `vaultshot drives the macOS screencapture utility, saves the image inside a markdown vault and
links it into the note you are working on. Run without arguments to capture a window, or name a
mode: window, area, fullscreen, fullscreen-immediate.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mode := screencapture.ModeWindow
		if len(args) == 1 {
			m, err := screencapture.ParseMode(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			mode = m
		}
		runCapture(cmd, mode)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vaultDir, "vault", "", "Vault root (default $VAULTSHOT_VAULT, then the current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&desktopNotify, "desktop-notify", false, "Also show status messages as macOS notifications")
	addCaptureFlags(rootCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
