package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"vaultshot/pkg/models"
)

var (
	statusFilter string
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent captures",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func init() {
	listCmd.Flags().StringVar(&statusFilter, "status", "", "Only show captures with this status (saved, cancelled, permission_denied, failed)")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum number of captures to show")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	captures, err := a.store.ListCaptures(listLimit, models.Status(statusFilter))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing captures: %v\n", err)
		a.exit(1)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Time", "Mode", "Status", "Note", "File"})
	for _, c := range captures {
		note := c.NotePath
		if !c.Inserted {
			note = "-"
		}
		t.AppendRow(table.Row{
			c.ID,
			c.CapturedAt.Local().Format("2006-01-02 15:04:05"),
			c.Mode,
			c.Status,
			note,
			c.FilePath,
		})
	}
	t.Render()
}
