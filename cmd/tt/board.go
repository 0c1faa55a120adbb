package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/internal/ui"
	"github.com/MatheusDosSantosR/tasktracker/todo"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the kanban board",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

var boardMoveCmd = &cobra.Command{
	Use:   "move <id> <column> [index]",
	Short: "Move a todo to a column position",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runBoardMove,
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.AddCommand(boardMoveCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	gw, err := loadedGateway(cmd, todo.Filter{})
	if err != nil {
		return err
	}

	board := gw.Board()
	now := time.Now()
	for i, col := range todo.Columns() {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%d)\n", col.Title(), board.ColumnLen(col))

		items := board.Column(col)
		if len(items) == 0 {
			fmt.Println("  (empty)")
			continue
		}
		for _, item := range items {
			line := fmt.Sprintf("  %s %s %s %s",
				ui.CompletedMark(item.IsCompleted),
				ui.HighlightID(item.ID),
				ui.PriorityBadge(item.Priority),
				ui.TruncateTableCell(item.Title))
			if item.IsOverdue(now) {
				line += " " + ui.Alert("overdue")
			}
			fmt.Println(line)
		}
	}
	return nil
}

func runBoardMove(cmd *cobra.Command, args []string) error {
	dest, err := todo.ParseColumn(args[1])
	if err != nil {
		return err
	}

	gw, err := loadedGateway(cmd, todo.Filter{})
	if err != nil {
		return err
	}

	board := gw.Board()
	index := board.ColumnLen(dest)
	if len(args) == 3 {
		index, err = strconv.Atoi(args[2])
		if err != nil || index < 0 {
			return fmt.Errorf("invalid index %q", args[2])
		}
	}

	id := todo.ID(args[0])
	from, _, ok := board.Locate(id)
	if !ok {
		return fmt.Errorf("todo %s: %w", id, todo.ErrTodoNotFound)
	}

	if err := gw.Move(cmd.Context(), board, id, dest, index); err != nil {
		return err
	}

	fmt.Printf("Moved %s to %s\n", id, dest.Title())
	if from != dest && !gw.PersistsMoves() {
		fmt.Println("Note: the move was not saved to the server (enable board.persist-moves in tasktracker.toml).")
	}
	return nil
}
