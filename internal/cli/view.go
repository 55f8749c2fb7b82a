package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [id]",
	Short: "Open a captured screenshot in the default viewer",
	Args:  cobra.ExactArgs(1),
	Run:   runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid ID: %v\n", err)
		os.Exit(1)
	}

	a := mustOpenApp()
	defer a.Close()

	rel, err := a.store.GetCapturePath(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.exit(1)
	}

	ok, err := a.vault.Exists(rel)
	if err != nil || !ok {
		fmt.Fprintf(os.Stderr, "File no longer exists: %s\n", rel)
		fmt.Println("Tip: Run 'vaultshot cleanup' to remove stale records.")
		a.exit(1)
	}

	path, err := a.vault.AbsPath(rel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.exit(1)
	}

	fmt.Printf("Opening %s...\n", path)
	if err := exec.Command("open", path).Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening viewer: %v\n", err)
		a.exit(1)
	}
}
