package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/internal/ui"
	"github.com/MatheusDosSantosR/tasktracker/todo"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the todo collection",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

// statsReport is the JSON shape of tt stats.
type statsReport struct {
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	Open       int            `json:"open"`
	Overdue    int            `json:"overdue"`
	Columns    map[string]int `json:"columns"`
	OverdueIDs []todo.ID      `json:"overdueIds,omitempty"`
}

func runStats(cmd *cobra.Command, args []string) error {
	gw, err := loadedGateway(cmd, todo.Filter{})
	if err != nil {
		return err
	}

	now := time.Now()
	stats := gw.Collection().Stats()
	overdue := gw.Collection().Overdue(now)
	board := gw.Board()

	if statsJSON {
		report := statsReport{
			Total:     stats.Total,
			Completed: stats.Completed,
			Open:      stats.Open,
			Overdue:   len(overdue),
			Columns:   map[string]int{},
		}
		for _, col := range todo.Columns() {
			report.Columns[string(col)] = board.ColumnLen(col)
		}
		for _, item := range overdue {
			report.OverdueIDs = append(report.OverdueIDs, item.ID)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Total:     %d\n", stats.Total)
	fmt.Printf("Completed: %d\n", stats.Completed)
	fmt.Printf("Open:      %d\n", stats.Open)
	fmt.Println()
	for _, col := range todo.Columns() {
		fmt.Printf("%-12s %d\n", col.Title()+":", board.ColumnLen(col))
	}

	if len(overdue) > 0 {
		fmt.Printf("\n%s\n", ui.Alert(fmt.Sprintf("%d overdue:", len(overdue))))
		for _, item := range overdue {
			fmt.Printf("  %s %s (due %s)\n",
				ui.HighlightID(item.ID),
				ui.TruncateTableCell(item.Title),
				item.DueDate.Format("2006-01-02"))
		}
	}
	return nil
}
