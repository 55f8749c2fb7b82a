package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var pruneUnsaved bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove history records for screenshots that no longer exist",
	Args:  cobra.NoArgs,
	Run:   runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVar(&pruneUnsaved, "unsaved", false, "Also remove cancelled and failed attempts")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	paths, err := a.store.ListSavedPaths()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing paths: %v\n", err)
		a.exit(1)
	}

	ids := make([]int64, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	deletedCount := 0
	for _, id := range ids {
		path := paths[id]
		ok, err := a.vault.Exists(path)
		if err != nil || ok {
			continue
		}
		fmt.Printf("Removing record for missing file: %s (ID: %d)\n", path, id)
		if err := a.store.DeleteCapture(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting record %d: %v\n", id, err)
		} else {
			deletedCount++
		}
	}

	if pruneUnsaved {
		n, err := a.store.DeleteUnsaved()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error removing unsaved attempts: %v\n", err)
			a.exit(1)
		}
		deletedCount += int(n)
	}

	if deletedCount == 0 {
		fmt.Println("History is clean. No missing files found.")
	} else {
		fmt.Printf("Cleaned up %d records.\n", deletedCount)
	}
}
