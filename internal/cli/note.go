package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"vaultshot/internal/db"
	"vaultshot/internal/editor"
	"vaultshot/internal/vault"
	"vaultshot/pkg/models"
)

var (
	cursorLine int
	cursorCh   int
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage the active note that captures are inserted into",
}

var noteOpenCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Make a note the active document",
	Long:  `Make a note the active document. Without --line the cursor is placed at the end of the note.`,
	Args:  cobra.ExactArgs(1),
	Run:   runNoteOpen,
}

var noteShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active note and cursor",
	Args:  cobra.NoArgs,
	Run:   runNoteShow,
}

var noteCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Clear the active note",
	Args:  cobra.NoArgs,
	Run:   runNoteClose,
}

func init() {
	noteOpenCmd.Flags().IntVar(&cursorLine, "line", -1, "Zero-based cursor line (-1 for end of note)")
	noteOpenCmd.Flags().IntVar(&cursorCh, "ch", 0, "Zero-based cursor column")
	noteCmd.AddCommand(noteOpenCmd, noteShowCmd, noteCloseCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteOpen(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	rel, err := resolveNotePath(a, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.exit(1)
	}

	data, err := a.vault.ReadFile(rel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading note: %v\n", err)
		a.exit(1)
	}

	pos := models.Position{Line: cursorLine, Ch: cursorCh}
	if cursorLine < 0 {
		pos = editor.End(string(data))
	}
	if err := a.store.SetActiveNote(rel, pos); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.exit(1)
	}
	fmt.Printf("Active note: %s (line %d, ch %d)\n", rel, pos.Line, pos.Ch)
}

// resolveNotePath accepts either a path on disk inside the vault or a
// vault-relative path.
func resolveNotePath(a *app, p string) (string, error) {
	if _, err := os.Stat(p); err == nil {
		return a.vault.Rel(p)
	}
	ok, err := a.vault.Exists(p)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("note %s not found in vault %s", p, a.vault.Root)
	}
	return vault.Clean(p)
}

func runNoteShow(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	path, pos, err := a.store.ActiveNote()
	if errors.Is(err, db.ErrNoActiveNote) {
		fmt.Println("No active note.")
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.exit(1)
	}
	fmt.Printf("%s (line %d, ch %d)\n", path, pos.Line, pos.Ch)
}

func runNoteClose(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	if err := a.store.ClearActiveNote(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.exit(1)
	}
}
