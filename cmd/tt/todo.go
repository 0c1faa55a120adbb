package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/gateway"
	"github.com/MatheusDosSantosR/tasktracker/internal/editor"
	"github.com/MatheusDosSantosR/tasktracker/internal/richtext"
	"github.com/MatheusDosSantosR/tasktracker/internal/ui"
	"github.com/MatheusDosSantosR/tasktracker/todo"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage todos",
}

// todo list
var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Args:  cobra.NoArgs,
	RunE:  runTodoList,
}

var (
	todoListPriority string
	todoListStatus   string
	todoListJSON     bool
)

// todo add
var todoAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a new todo",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTodoAdd,
}

var (
	todoAddDescription string
	todoAddPriority    string
	todoAddStatus      string
	todoAddDue         string
	todoAddEdit        bool
)

// todo update
var todoUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoUpdate,
}

var (
	todoUpdateTitle       string
	todoUpdateDescription string
	todoUpdatePriority    string
	todoUpdateStatus      string
	todoUpdateDue         string
	todoUpdateCompleted   bool
	todoUpdateEdit        bool
)

// todo done
var todoDoneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark todos as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoDone,
}

// todo reopen
var todoReopenCmd = &cobra.Command{
	Use:   "reopen <id>...",
	Short: "Mark completed todos as pending again",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoReopen,
}

// todo delete
var todoDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoDelete,
}

// todo show
var todoShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoShow,
}

var todoShowJSON bool

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoListCmd, todoAddCmd, todoUpdateCmd, todoDoneCmd,
		todoReopenCmd, todoDeleteCmd, todoShowCmd)

	todoListCmd.Flags().StringVarP(&todoListPriority, "priority", "p", "", "Filter by priority (low, medium, high)")
	todoListCmd.Flags().StringVarP(&todoListStatus, "status", "s", "", "Filter by status (pending, inProgress, completed)")
	todoListCmd.Flags().BoolVar(&todoListJSON, "json", false, "Output as JSON")

	todoAddCmd.Flags().StringVarP(&todoAddDescription, "description", "d", "", "Description (markdown)")
	todoAddCmd.Flags().StringVarP(&todoAddPriority, "priority", "p", "", "Priority (low, medium, high)")
	todoAddCmd.Flags().StringVarP(&todoAddStatus, "status", "s", "", "Status (pending, inProgress, completed)")
	todoAddCmd.Flags().StringVar(&todoAddDue, "due", "", "Due date (YYYY-MM-DD)")
	todoAddCmd.Flags().BoolVarP(&todoAddEdit, "edit", "e", false, "Compose in $EDITOR")

	todoUpdateCmd.Flags().StringVar(&todoUpdateTitle, "title", "", "New title")
	todoUpdateCmd.Flags().StringVarP(&todoUpdateDescription, "description", "d", "", "New description")
	todoUpdateCmd.Flags().StringVarP(&todoUpdatePriority, "priority", "p", "", "New priority (low, medium, high)")
	todoUpdateCmd.Flags().StringVarP(&todoUpdateStatus, "status", "s", "", "New status (pending, inProgress, completed)")
	todoUpdateCmd.Flags().StringVar(&todoUpdateDue, "due", "", "New due date (YYYY-MM-DD, empty clears)")
	todoUpdateCmd.Flags().BoolVar(&todoUpdateCompleted, "completed", false, "Completion flag")
	todoUpdateCmd.Flags().BoolVarP(&todoUpdateEdit, "edit", "e", false, "Edit in $EDITOR")

	todoShowCmd.Flags().BoolVar(&todoShowJSON, "json", false, "Output as JSON")
}

// parseFilter builds a remote list filter from --priority and --status.
func parseFilter(priorityFlag, statusFlag string) (todo.Filter, error) {
	var filter todo.Filter
	if priorityFlag != "" {
		priority, err := todo.ParsePriority(priorityFlag)
		if err != nil {
			return filter, err
		}
		filter.Priority = &priority
	}
	if statusFlag != "" {
		status, err := todo.ParseStatus(statusFlag)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// loadedGateway builds a gateway and loads the collection from the server.
func loadedGateway(cmd *cobra.Command, filter todo.Filter) (*gateway.Gateway, error) {
	gw, _, err := newGateway()
	if err != nil {
		return nil, err
	}
	if err := gw.Load(cmd.Context(), filter); err != nil {
		return nil, err
	}
	return gw, nil
}

// lookupTodo returns the loaded todo with the given ID.
func lookupTodo(gw *gateway.Gateway, id string) (todo.Todo, error) {
	item, ok := gw.Collection().Get(todo.ID(id))
	if !ok {
		return todo.Todo{}, fmt.Errorf("todo %s: %w", id, todo.ErrTodoNotFound)
	}
	return item, nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	filter, err := parseFilter(todoListPriority, todoListStatus)
	if err != nil {
		return err
	}

	gw, err := loadedGateway(cmd, filter)
	if err != nil {
		return err
	}

	todos := gw.Collection().Todos()

	if todoListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(todos)
	}

	printTodoTable(todos)
	return nil
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	gw, _, err := newGateway()
	if err != nil {
		return err
	}

	var form *gateway.Form
	if todoAddEdit {
		data := editor.DefaultCreateData()
		if len(args) > 0 {
			data.Title = args[0]
		}
		if todoAddDescription != "" {
			data.Description = todoAddDescription
		}
		form, err = editor.EditTodoWithData(data)
		if err != nil {
			return err
		}
	} else {
		if len(args) == 0 {
			return fmt.Errorf("a title is required (or pass --edit to compose in $EDITOR)")
		}
		form = &gateway.Form{
			Title:       args[0],
			Description: todoAddDescription,
		}
		if todoAddPriority != "" {
			if form.Priority, err = todo.ParsePriority(todoAddPriority); err != nil {
				return err
			}
		}
		if todoAddStatus != "" {
			if form.Status, err = todo.ParseStatus(todoAddStatus); err != nil {
				return err
			}
			form.IsCompleted = form.Status == todo.StatusCompleted
		}
		if form.DueDate, err = parseDue(todoAddDue); err != nil {
			return err
		}
	}

	created, err := gw.Submit(cmd.Context(), *form, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Created todo %s: %s\n", created.ID, created.Title)
	return nil
}

func runTodoUpdate(cmd *cobra.Command, args []string) error {
	gw, err := loadedGateway(cmd, todo.Filter{})
	if err != nil {
		return err
	}

	existing, err := lookupTodo(gw, args[0])
	if err != nil {
		return err
	}

	var form *gateway.Form
	if todoUpdateEdit {
		form, err = editor.EditTodo(&existing)
		if err != nil {
			return err
		}
	} else {
		built := formFromTodo(existing)
		if cmd.Flags().Changed("title") {
			built.Title = todoUpdateTitle
		}
		if cmd.Flags().Changed("description") {
			built.Description = todoUpdateDescription
		}
		if cmd.Flags().Changed("priority") {
			if built.Priority, err = todo.ParsePriority(todoUpdatePriority); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("status") {
			if built.Status, err = todo.ParseStatus(todoUpdateStatus); err != nil {
				return err
			}
			built.IsCompleted = built.Status == todo.StatusCompleted
		}
		if cmd.Flags().Changed("completed") {
			built.IsCompleted = todoUpdateCompleted
			if built.IsCompleted {
				built.Status = todo.StatusCompleted
			} else if built.Status == todo.StatusCompleted {
				built.Status = todo.StatusPending
			}
		}
		if cmd.Flags().Changed("due") {
			if built.DueDate, err = parseDue(todoUpdateDue); err != nil {
				return err
			}
		}
		form = &built
	}

	updated, err := gw.Submit(cmd.Context(), *form, &existing)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s: %s\n", updated.ID, updated.Title)
	return nil
}

func runTodoDone(cmd *cobra.Command, args []string) error {
	return setCompleted(cmd, args, true)
}

func runTodoReopen(cmd *cobra.Command, args []string) error {
	return setCompleted(cmd, args, false)
}

func setCompleted(cmd *cobra.Command, ids []string, completed bool) error {
	gw, err := loadedGateway(cmd, todo.Filter{})
	if err != nil {
		return err
	}

	for _, id := range ids {
		item, err := lookupTodo(gw, id)
		if err != nil {
			return err
		}
		if item.IsCompleted == completed {
			fmt.Printf("%s is already %s\n", item.ID, completionWord(completed))
			continue
		}

		toggled, err := gw.ToggleComplete(cmd.Context(), item)
		if err != nil {
			return err
		}
		if toggled.IsCompleted {
			fmt.Printf("Completed %s: %s\n", toggled.ID, toggled.Title)
		} else {
			fmt.Printf("Reopened %s: %s\n", toggled.ID, toggled.Title)
		}
	}
	return nil
}

func completionWord(completed bool) string {
	if completed {
		return "completed"
	}
	return "open"
}

func runTodoDelete(cmd *cobra.Command, args []string) error {
	gw, err := loadedGateway(cmd, todo.Filter{})
	if err != nil {
		return err
	}

	for _, id := range args {
		item, err := lookupTodo(gw, id)
		if err != nil {
			return err
		}
		if err := gw.Delete(cmd.Context(), item.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %s: %s\n", item.ID, item.Title)
	}
	return nil
}

func runTodoShow(cmd *cobra.Command, args []string) error {
	gw, err := loadedGateway(cmd, todo.Filter{})
	if err != nil {
		return err
	}

	var todos []todo.Todo
	for _, id := range args {
		item, err := lookupTodo(gw, id)
		if err != nil {
			return err
		}
		todos = append(todos, item)
	}

	if todoShowJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(todos)
	}

	for i, item := range todos {
		if i > 0 {
			fmt.Println("---")
		}
		printTodoDetail(item)
	}
	return nil
}

// parseDue parses a YYYY-MM-DD due date. An empty value means no due date.
func parseDue(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	due, err := time.Parse(editor.DueDateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q: expected YYYY-MM-DD", value)
	}
	return &due, nil
}

// formFromTodo seeds a submit form with a todo's current fields.
func formFromTodo(item todo.Todo) gateway.Form {
	return gateway.Form{
		Title:       item.Title,
		Description: item.Description,
		IsCompleted: item.IsCompleted,
		Priority:    item.Priority,
		Status:      item.Status,
		DueDate:     item.DueDate,
		Subtasks:    item.Subtasks,
	}
}

// printTodoTable prints todos in a table format.
func printTodoTable(todos []todo.Todo) {
	if len(todos) == 0 {
		fmt.Println("No todos found.")
		return
	}

	now := time.Now()
	builder := ui.NewTableBuilder([]string{"ID", "DONE", "PRIORITY", "STATUS", "DUE", "TITLE"}, len(todos))
	for _, item := range todos {
		builder.AddRow([]string{
			ui.HighlightID(item.ID),
			ui.CompletedMark(item.IsCompleted),
			ui.PriorityBadge(item.Priority),
			ui.StatusBadge(item),
			ui.FormatDue(item.DueDate, item.IsCompleted, now),
			ui.TruncateTableCell(item.Title),
		})
	}
	fmt.Print(builder.String())
}

// printTodoDetail prints detailed information about a todo.
func printTodoDetail(item todo.Todo) {
	now := time.Now()

	fmt.Printf("ID:        %s\n", ui.HighlightID(item.ID))
	fmt.Printf("Title:     %s\n", item.Title)
	fmt.Printf("Column:    %s\n", todo.ColumnFor(item).Title())
	fmt.Printf("Priority:  %s\n", ui.PriorityBadge(item.Priority))
	fmt.Printf("Completed: %s\n", ui.CompletedMark(item.IsCompleted))
	fmt.Printf("Due:       %s\n", ui.FormatDue(item.DueDate, item.IsCompleted, now))
	if !item.CreatedAt.IsZero() {
		fmt.Printf("Created:   %s (%s)\n", item.CreatedAt.Format("2006-01-02 15:04"), ui.FormatTimeAgo(item.CreatedAt, now))
	}
	if !item.UpdatedAt.IsZero() {
		fmt.Printf("Updated:   %s (%s)\n", item.UpdatedAt.Format("2006-01-02 15:04"), ui.FormatTimeAgo(item.UpdatedAt, now))
	}

	if len(item.Subtasks) > 0 {
		done, total := item.SubtaskProgress()
		fmt.Printf("\nSubtasks (%d/%d):\n", done, total)
		for _, subtask := range item.Subtasks {
			fmt.Printf("  %s %s\n", ui.CompletedMark(subtask.IsCompleted), subtask.Title)
		}
	}

	if item.Description != "" {
		rendered := richtext.Render(78, 2, []byte(item.Description))
		if len(rendered) > 0 {
			fmt.Printf("\nDescription:\n%s\n", rendered)
		}
	}
}
