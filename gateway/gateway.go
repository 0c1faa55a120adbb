// Package gateway sequences user intents into remote calls and local
// collection updates.
//
// Every operation follows the same shape: call the API, and only on success
// touch the in-memory collection. Failures leave local state exactly as it
// was — stale data beats a blanked list — and are surfaced to the caller for
// display. Nothing here retries; the user re-triggers the action.
package gateway

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/MatheusDosSantosR/tasktracker/todo"
	"github.com/charmbracelet/log"
)

// Remote is the slice of the API client the gateway drives.
type Remote interface {
	ListTodos(ctx context.Context, filter todo.Filter) ([]todo.Todo, error)
	CreateTodo(ctx context.Context, draft todo.Todo) (*todo.Todo, error)
	UpdateTodo(ctx context.Context, id todo.ID, item todo.Todo) error
	SetCompleted(ctx context.Context, id todo.ID, completed bool) error
	DeleteTodo(ctx context.Context, id todo.ID) error
}

// Options configures a Gateway.
type Options struct {
	// PersistMoves controls whether a cross-column board move also issues
	// a remote update deriving the new status. When false, moves stay
	// local display state.
	PersistMoves bool

	// Logger receives operation-level debug logging. If nil, logging is
	// discarded.
	Logger *log.Logger
}

// Gateway owns the local todo collection and reconciles it with the remote
// store.
type Gateway struct {
	remote       Remote
	collection   *todo.Collection
	persistMoves bool
	log          *log.Logger

	// Load sequencing: a reload that finishes after a newer reload began
	// must not overwrite the newer result.
	issuedSeq  atomic.Uint64
	appliedSeq atomic.Uint64
}

// New creates a gateway with an empty collection.
func New(remote Remote, opts Options) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Gateway{
		remote:       remote,
		collection:   todo.NewCollection(),
		persistMoves: opts.PersistMoves,
		log:          logger,
	}
}

// Collection returns the gateway's backing collection.
func (g *Gateway) Collection() *todo.Collection {
	return g.collection
}

// Board returns a fresh three-column projection of the collection.
func (g *Gateway) Board() *todo.Board {
	return todo.NewBoard(g.collection.Todos())
}

// BeginLoad reserves a sequence number for a reload that will complete
// asynchronously. Pass the number to ApplyLoad with the fetched todos.
func (g *Gateway) BeginLoad() uint64 {
	return g.issuedSeq.Add(1)
}

// Fetch lists todos from the remote store without touching the collection.
// Asynchronous callers pair it with BeginLoad and ApplyLoad.
func (g *Gateway) Fetch(ctx context.Context, filter todo.Filter) ([]todo.Todo, error) {
	return g.remote.ListTodos(ctx, filter)
}

// ApplyLoad replaces the collection with a reload result, unless a newer
// reload has already been applied. Returns false when the result was stale
// and discarded.
func (g *Gateway) ApplyLoad(seq uint64, todos []todo.Todo) bool {
	if seq <= g.appliedSeq.Load() {
		g.log.Debug("discarding stale load", "seq", seq, "applied", g.appliedSeq.Load())
		return false
	}
	g.appliedSeq.Store(seq)
	g.collection.Replace(todos)
	return true
}

// Load replaces the collection with a remote fetch, forwarding the filter as
// query parameters. On failure the previous collection is retained and the
// *api.FetchError is returned for display.
func (g *Gateway) Load(ctx context.Context, filter todo.Filter) error {
	seq := g.BeginLoad()
	todos, err := g.remote.ListTodos(ctx, filter)
	if err != nil {
		return err
	}
	g.ApplyLoad(seq, todos)
	return nil
}

// Form carries the editor fields for a create or update.
type Form struct {
	Title       string
	Description string
	IsCompleted bool
	Priority    todo.Priority
	Status      todo.Status
	DueDate     *time.Time
	Subtasks    []todo.Subtask
}

// Submit handles both create and update through one entry point: when
// existing is non-nil the form is merged over it and an update is issued,
// otherwise a create is issued and the server-assigned ID is combined with
// the submitted data. On success the result is upserted into the collection
// and returned; on failure the collection is unchanged.
func (g *Gateway) Submit(ctx context.Context, form Form, existing *todo.Todo) (*todo.Todo, error) {
	if form.Priority == "" {
		form.Priority = todo.PriorityMedium
	}

	record := todo.Todo{
		Title:       form.Title,
		Description: form.Description,
		IsCompleted: form.IsCompleted,
		Priority:    form.Priority,
		Status:      form.Status,
		DueDate:     form.DueDate,
		Subtasks:    form.Subtasks,
	}
	if existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	}
	if err := todo.ValidateTodo(&record); err != nil {
		return nil, err
	}

	if existing != nil {
		if err := g.remote.UpdateTodo(ctx, existing.ID, record); err != nil {
			return nil, err
		}
		g.collection.Upsert(record)
		g.log.Debug("updated todo", "id", record.ID)
		return &record, nil
	}

	created, err := g.remote.CreateTodo(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = created.ID
	if !created.CreatedAt.IsZero() {
		record.CreatedAt = created.CreatedAt
		record.UpdatedAt = created.UpdatedAt
	}
	g.collection.Upsert(record)
	g.log.Debug("created todo", "id", record.ID)
	return &record, nil
}

// Delete removes a todo remotely, then locally. On failure the collection
// still contains the todo.
func (g *Gateway) Delete(ctx context.Context, id todo.ID) error {
	if id == "" {
		return todo.ErrMissingID
	}
	if err := g.remote.DeleteTodo(ctx, id); err != nil {
		return err
	}
	g.collection.Remove(id)
	g.log.Debug("deleted todo", "id", id)
	return nil
}

// ToggleComplete flips the completion flag with a status-only update and
// upserts the result. It bypasses the full submit path since it does not go
// through the editor.
func (g *Gateway) ToggleComplete(ctx context.Context, item todo.Todo) (*todo.Todo, error) {
	if item.ID == "" {
		return nil, todo.ErrMissingID
	}

	flipped := item
	flipped.IsCompleted = !item.IsCompleted
	if err := g.remote.SetCompleted(ctx, item.ID, flipped.IsCompleted); err != nil {
		return nil, err
	}
	g.collection.Upsert(flipped)
	g.log.Debug("toggled todo", "id", item.ID, "completed", flipped.IsCompleted)
	return &flipped, nil
}

// PersistsMoves reports whether cross-column moves are written back to the
// server.
func (g *Gateway) PersistsMoves() bool {
	return g.persistMoves
}

// MoveLocal rearranges the board and writes the flattened order back to the
// collection, without any remote call. It reports whether the todo changed
// columns, which callers use to decide about PersistMove.
func (g *Gateway) MoveLocal(board *todo.Board, id todo.ID, dest todo.Column, index int) (crossedColumn bool, err error) {
	source, _, ok := board.Locate(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", todo.ErrTodoNotFound, id)
	}

	if err := board.Move(id, dest, index); err != nil {
		return false, err
	}
	g.collection.Replace(board.Todos())
	return source != dest, nil
}

// PersistMove issues the remote update pairing a cross-column move with its
// derived status. On failure the local move is kept and the error returned
// for display.
func (g *Gateway) PersistMove(ctx context.Context, id todo.ID, dest todo.Column) error {
	item, ok := g.collection.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", todo.ErrTodoNotFound, id)
	}
	updated := todo.ApplyColumn(item, dest)
	if err := g.remote.UpdateTodo(ctx, id, updated); err != nil {
		return err
	}
	g.collection.Upsert(updated)
	g.log.Debug("persisted move", "id", id, "to", dest)
	return nil
}

// Move rearranges the board and, when PersistMoves is set and the todo
// changed columns, issues the remote update as an explicit, separate step.
func (g *Gateway) Move(ctx context.Context, board *todo.Board, id todo.ID, dest todo.Column, index int) error {
	crossed, err := g.MoveLocal(board, id, dest, index)
	if err != nil {
		return err
	}
	if !g.persistMoves || !crossed {
		return nil
	}
	return g.PersistMove(ctx, id, dest)
}
