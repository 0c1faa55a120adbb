// Package boardtui is the interactive terminal UI: a card list view and a
// three-column kanban view over the same collection, with a modal editor for
// creating and updating todos.
package boardtui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MatheusDosSantosR/tasktracker/gateway"
	"github.com/MatheusDosSantosR/tasktracker/todo"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type viewKind int

const (
	viewCards viewKind = iota
	viewBoard
)

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEditor
	modalConfirmDelete
	modalHelp
)

// Options configures the UI.
type Options struct {
	// DefaultView selects the opening view, "cards" (default) or "board".
	DefaultView string
}

type model struct {
	ctx    context.Context
	gw     *gateway.Gateway
	width  int
	height int

	view   viewKind
	focus  focusPane
	modal  modalKind
	filter todo.Filter

	cardList list.Model
	detail   cardDetailModel
	board    boardModel
	editor   editorModel
	spinner  spinner.Model

	confirmDeleteID todo.ID
	confirmSelected int

	selectedID  todo.ID
	loading     bool
	status      string
	statusLevel statusLevel
}

// Run starts the interactive UI and blocks until the user quits.
func Run(ctx context.Context, gw *gateway.Gateway, opts Options) error {
	if gw == nil {
		return fmt.Errorf("gateway is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, gw, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, gw *gateway.Gateway, opts Options) model {
	cardList := list.New(nil, newCardItemDelegate(), 0, 0)
	cardList.Title = "Todos"
	cardList.SetShowStatusBar(false)
	cardList.SetFilteringEnabled(false)
	cardList.SetShowHelp(false)
	cardList.SetShowPagination(false)

	loadSpinner := spinner.New()
	loadSpinner.Spinner = spinner.Dot

	view := viewCards
	if opts.DefaultView == "board" {
		view = viewBoard
	}

	return model{
		ctx:      ctx,
		gw:       gw,
		view:     view,
		focus:    focusList,
		modal:    modalNone,
		cardList: cardList,
		detail:   newCardDetailModel(),
		board:    newBoardModel(),
		spinner:  loadSpinner,
		loading:  true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case todosLoadedMsg:
		return m.handleTodosLoaded(msg)
	case todoSavedMsg:
		return m.handleTodoSaved(msg)
	case todoDeletedMsg:
		return m.handleTodoDeleted(msg)
	case todoToggledMsg:
		return m.handleTodoToggled(msg)
	case movePersistedMsg:
		return m.handleMovePersisted(msg)
	}

	switch m.modal {
	case modalEditor:
		return m.updateEditor(msg)
	case modalConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modalHelp:
		return m.updateHelp(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		if updated, cmd, handled := m.handleKey(key); handled {
			return updated, cmd
		}
	}

	var cmd tea.Cmd
	if m.view == viewCards {
		if m.focus == focusDetail {
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		m.cardList, cmd = m.cardList.Update(msg)
		m.syncCardSelection()
	}
	return m, cmd
}

func (m model) handleKey(key tea.KeyMsg) (model, tea.Cmd, bool) {
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "?":
		m.modal = modalHelp
		return m, nil, true
	case "tab", "1", "2", "[", "]":
		return m.switchView(key.String()), nil, true
	case "r":
		return m.startLoad()
	case "p":
		m.filter.Priority = cyclePriority(m.filter.Priority)
		return m.startLoad()
	case "f":
		m.filter.Status = cycleStatus(m.filter.Status)
		return m.startLoad()
	case "c", "n":
		m.editor.OpenNew()
		m.editor.SetWidth(m.modalWidth())
		m.modal = modalEditor
		return m, nil, true
	case "enter", "e":
		if m.view == viewCards && m.focus == focusList && key.String() == "enter" {
			m.focus = focusDetail
			return m, nil, true
		}
		if item, ok := m.currentTodo(); ok {
			m.editor.OpenFor(item)
			m.editor.SetWidth(m.modalWidth())
			m.modal = modalEditor
		}
		return m, nil, true
	case "esc":
		if m.focus == focusDetail {
			m.focus = focusList
		}
		return m, nil, true
	case "d":
		if item, ok := m.currentTodo(); ok {
			m.confirmDeleteID = item.ID
			m.confirmSelected = 1
			m.modal = modalConfirmDelete
		}
		return m, nil, true
	case "x", " ", "space":
		if item, ok := m.currentTodo(); ok {
			return m, m.toggleCmd(item), true
		}
		return m, nil, true
	}

	if m.view == viewBoard {
		return m.handleBoardKey(key.String())
	}
	return m, nil, false
}

func (m model) handleBoardKey(key string) (model, tea.Cmd, bool) {
	switch key {
	case "h", "left":
		m.board.MoveCursor(-1, 0)
		return m, nil, true
	case "l", "right":
		m.board.MoveCursor(1, 0)
		return m, nil, true
	case "k", "up":
		m.board.MoveCursor(0, -1)
		return m, nil, true
	case "j", "down":
		m.board.MoveCursor(0, 1)
		return m, nil, true
	case "H", "shift+left":
		return m.moveSelection(-1, 0)
	case "L", "shift+right":
		return m.moveSelection(1, 0)
	case "K", "shift+up":
		return m.moveSelection(0, -1)
	case "J", "shift+down":
		return m.moveSelection(0, 1)
	}
	return m, nil, false
}

func (m model) moveSelection(dcol, drow int) (model, tea.Cmd, bool) {
	req, ok := m.board.MoveSelection(dcol, drow)
	if !ok {
		return m, nil, true
	}

	crossed, err := m.gw.MoveLocal(m.board.board, req.id, req.dest, req.index)
	if err != nil {
		m.setStatus(fmt.Sprintf("Move failed: %v", err), statusError)
		return m, nil, true
	}
	m.board.SelectTodo(req.id)
	m.refreshCards()

	if crossed && m.gw.PersistsMoves() {
		return m, m.persistMoveCmd(req.id, req.dest), true
	}
	return m, nil, true
}

func (m model) switchView(key string) model {
	switch key {
	case "1":
		m.view = viewCards
	case "2":
		m.view = viewBoard
	default:
		if m.view == viewCards {
			m.view = viewBoard
		} else {
			m.view = viewCards
		}
	}
	m.focus = focusList
	return m
}

func (m model) startLoad() (model, tea.Cmd, bool) {
	m.loading = true
	return m, tea.Batch(m.loadCmd(), m.spinner.Tick), true
}

func (m model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.editor.Close()
			m.modal = modalNone
			m.setStatus("Edit cancelled", statusInfo)
			return m, nil
		case "ctrl+d":
			if m.editor.state == editorEditing {
				m.confirmDeleteID = m.editor.editingID
				m.confirmSelected = 1
				m.modal = modalConfirmDelete
				return m, nil
			}
		}
	}

	updated, cmd, saveRequested := m.editor.Update(msg)
	m.editor = updated
	if !saveRequested {
		return m, cmd
	}

	form, err := m.editor.BuildForm()
	if err != nil {
		m.editor.SaveFailed(err)
		return m, cmd
	}
	m.editor.saving = true
	m.editor.errText = ""

	var existing *todo.Todo
	if m.editor.state == editorEditing {
		original := m.editor.original
		existing = &original
	}
	return m, tea.Batch(cmd, m.saveCmd(form, existing))
}

func (m model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "left", "right", "tab", "shift+tab", "backtab":
		if m.confirmSelected == 0 {
			m.confirmSelected = 1
		} else {
			m.confirmSelected = 0
		}
		return m, nil
	case "enter":
		confirmed := m.confirmSelected == 0
		id := m.confirmDeleteID
		m.confirmDeleteID = ""
		m.restoreModalAfterConfirm()
		if confirmed && id != "" {
			return m, m.deleteCmd(id)
		}
		return m, nil
	case "esc":
		m.confirmDeleteID = ""
		m.restoreModalAfterConfirm()
		return m, nil
	}
	return m, nil
}

// restoreModalAfterConfirm returns to the editor when the confirm dialog was
// opened from it, otherwise closes all modals.
func (m *model) restoreModalAfterConfirm() {
	if m.editor.IsOpen() {
		m.modal = modalEditor
		return
	}
	m.modal = modalNone
}

func (m model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "?", "esc":
		m.modal = modalNone
		return m, nil
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleTodosLoaded(msg todosLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		// The previous collection stays on screen.
		m.setStatus(fmt.Sprintf("Load failed: %v", msg.err), statusError)
		return m, nil
	}
	if !m.gw.ApplyLoad(msg.seq, msg.todos) {
		return m, nil
	}
	m.refreshAll()
	m.setStatus(fmt.Sprintf("Loaded %d todos%s", m.gw.Collection().Len(), m.filterSummary()), statusInfo)
	return m, nil
}

func (m model) handleTodoSaved(msg todoSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// A failed save never closes the editor or drops input.
		m.editor.SaveFailed(msg.err)
		return m, nil
	}
	m.editor.Close()
	m.modal = modalNone
	m.selectedID = msg.todo.ID
	m.refreshAll()
	m.setStatus(fmt.Sprintf("Saved %q", msg.todo.Title), statusInfo)
	return m, nil
}

func (m model) handleTodoDeleted(msg todoDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.editor.IsOpen() {
			m.modal = modalEditor
			m.editor.SaveFailed(msg.err)
		} else {
			m.setStatus(fmt.Sprintf("Delete failed: %v", msg.err), statusError)
		}
		return m, nil
	}
	if m.editor.IsOpen() && m.editor.editingID == msg.id {
		m.editor.Close()
		m.modal = modalNone
	}
	if m.selectedID == msg.id {
		m.selectedID = ""
	}
	m.refreshAll()
	m.setStatus("Todo deleted", statusInfo)
	return m, nil
}

func (m model) handleTodoToggled(msg todoToggledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Toggle failed: %v", msg.err), statusError)
		return m, nil
	}
	m.selectedID = msg.todo.ID
	m.refreshAll()
	return m, nil
}

func (m model) handleMovePersisted(msg movePersistedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The local move is kept; the user can retry or reload.
		m.setStatus(fmt.Sprintf("Move not saved: %v", msg.err), statusError)
		return m, nil
	}
	m.refreshCards()
	return m, nil
}

func (m *model) refreshAll() {
	m.board.SetBoard(m.gw.Board())
	if m.selectedID != "" {
		m.board.SelectTodo(m.selectedID)
	}
	m.refreshCards()
}

func (m *model) refreshCards() {
	todos := m.gw.Collection().Todos()
	items := make([]list.Item, 0, len(todos))
	selectedIndex := -1
	for i, item := range todos {
		if item.ID == m.selectedID {
			selectedIndex = i
		}
		items = append(items, cardItem{todo: item})
	}
	m.cardList.SetItems(items)
	if selectedIndex >= 0 {
		m.cardList.Select(selectedIndex)
	} else if len(items) > 0 && m.cardList.Index() < 0 {
		m.cardList.Select(0)
	}
	m.syncCardSelection()
}

func (m *model) syncCardSelection() {
	item := m.cardList.SelectedItem()
	if item == nil {
		m.detail.SetTodo(todo.Todo{}, false)
		return
	}
	card, ok := item.(cardItem)
	if !ok {
		return
	}
	if m.view == viewCards {
		m.selectedID = card.todo.ID
	}
	m.detail.SetTodo(card.todo, true)
}

func (m model) currentTodo() (todo.Todo, bool) {
	if m.view == viewBoard {
		return m.board.Selected()
	}
	item := m.cardList.SelectedItem()
	if item == nil {
		return todo.Todo{}, false
	}
	card, ok := item.(cardItem)
	if !ok {
		return todo.Todo{}, false
	}
	return card.todo, true
}

func (m *model) resize() {
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, rightWidth := splitWidths(m.width)
	listHeight := contentHeight - 2
	if listHeight < 1 {
		listHeight = 1
	}
	listWidth := leftWidth - 4
	if listWidth < 1 {
		listWidth = 1
	}
	detailWidth := rightWidth - 4
	if detailWidth < 1 {
		detailWidth = 1
	}
	m.cardList.SetSize(listWidth, listHeight)
	m.detail.SetSize(detailWidth, contentHeight-2)
	m.board.SetSize(m.width, contentHeight)
	m.editor.SetWidth(m.modalWidth())
}

func (m model) modalWidth() int {
	width := m.width - 10
	if width < 30 {
		width = 30
	}
	if width > 80 {
		width = 80
	}
	return width
}

func splitWidths(width int) (int, int) {
	left := width / 3
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string
	if m.view == viewBoard {
		content = m.board.View()
	} else {
		contentHeight := m.height - 3
		if contentHeight < 1 {
			contentHeight = 1
		}
		leftWidth, rightWidth := splitWidths(m.width)
		listPane := m.renderPane(m.cardList.View(), leftWidth, contentHeight, m.focus == focusList)
		detailPane := m.renderPane(m.detail.View(), rightWidth, contentHeight, m.focus == focusDetail)
		content = lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
	}

	view := strings.Join([]string{m.renderTabs(), m.renderHelpLine(), content, m.renderStatusLine()}, "\n")

	switch m.modal {
	case modalEditor:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.editor.View())
	case modalConfirmDelete:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirmDeleteView())
	case modalHelp:
		modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(m.helpContent()))
	}
	return view
}

func (m model) renderTabs() string {
	labels := []string{"[1] Cards", "[2] Board"}
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := tabInactiveStyle
		if (i == 0 && m.view == viewCards) || (i == 1 && m.view == viewBoard) {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	hint := valueMuted.Render(m.filterSummary() + " Press ? for help")
	spacerWidth := m.width - lipgloss.Width(content) - lipgloss.Width(hint)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	return tabBarStyle.Width(m.width).Render(content + strings.Repeat(" ", spacerWidth) + hint)
}

func (m model) renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return style.Width(width).Height(height).Render(content)
}

func (m model) renderHelpLine() string {
	text := m.helpSummary()
	return helpBarStyle.Width(m.width).Render(truncateText(text, m.width))
}

func (m model) helpSummary() string {
	if m.view == viewBoard {
		return "Keys: h/j/k/l move cursor | H/J/K/L move card | enter edit | c new | x toggle | d delete | p/f filter | r reload | ? help | q quit"
	}
	return "Keys: up/down move | enter detail | e edit | c new | x toggle | d delete | p/f filter | r reload | tab board | ? help | q quit"
}

func (m model) renderStatusLine() string {
	if m.loading {
		return m.spinner.View() + valueMuted.Render(" loading...")
	}
	if strings.TrimSpace(m.status) == "" {
		return ""
	}
	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	text := m.status
	if m.width > 0 {
		text = truncate.StringWithTail(text, uint(m.width), "...")
	}
	return style.Render(text)
}

func (m model) filterSummary() string {
	parts := make([]string, 0, 2)
	if m.filter.Priority != nil {
		parts = append(parts, "priority="+string(*m.filter.Priority))
	}
	if m.filter.Status != nil {
		parts = append(parts, "status="+string(*m.filter.Status))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, " ") + "]"
}

func (m model) confirmDeleteView() string {
	options := []string{"Delete", "Cancel"}
	buttons := make([]string, 0, len(options))
	for i, option := range options {
		style := valueMuted
		if i == m.confirmSelected {
			style = selectedBorder
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	message := fmt.Sprintf("Delete todo %s?", m.confirmDeleteID)
	content := strings.Join([]string{message, "", strings.Join(buttons, " ")}, "\n")
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	return modalStyle.Render(content)
}

func (m model) helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit",
		"tab / 1 / 2: switch views",
		"r: reload from server",
		"p: cycle priority filter",
		"f: cycle status filter",
		"?: toggle help",
		"",
		labelStyle.Render("Cards"),
		"up/down or j/k: move selection",
		"enter: focus detail pane",
		"e: edit selected todo",
		"",
		labelStyle.Render("Board"),
		"h/j/k/l: move cursor",
		"H/J/K/L or shift+arrows: move card",
		"",
		labelStyle.Render("Todos"),
		"c or n: new todo",
		"x or space: toggle complete",
		"d: delete (with confirmation)",
		"",
		labelStyle.Render("Editor"),
		"ctrl+s: save | tab: next field | esc: cancel | ctrl+d: delete",
		"",
		labelStyle.Render("Help"),
		"press ? or esc to close",
	}
	return strings.Join(sections, "\n")
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) loadCmd() tea.Cmd {
	seq := m.gw.BeginLoad()
	ctx, gw, filter := m.ctx, m.gw, m.filter
	return func() tea.Msg {
		todos, err := gw.Fetch(ctx, filter)
		return todosLoadedMsg{seq: seq, todos: todos, err: err}
	}
}

func (m model) saveCmd(form gateway.Form, existing *todo.Todo) tea.Cmd {
	ctx, gw := m.ctx, m.gw
	return func() tea.Msg {
		saved, err := gw.Submit(ctx, form, existing)
		if err != nil {
			return todoSavedMsg{err: err}
		}
		return todoSavedMsg{todo: *saved}
	}
}

func (m model) deleteCmd(id todo.ID) tea.Cmd {
	ctx, gw := m.ctx, m.gw
	return func() tea.Msg {
		return todoDeletedMsg{id: id, err: gw.Delete(ctx, id)}
	}
}

func (m model) toggleCmd(item todo.Todo) tea.Cmd {
	ctx, gw := m.ctx, m.gw
	return func() tea.Msg {
		toggled, err := gw.ToggleComplete(ctx, item)
		if err != nil {
			return todoToggledMsg{err: err}
		}
		return todoToggledMsg{todo: *toggled}
	}
}

func (m model) persistMoveCmd(id todo.ID, dest todo.Column) tea.Cmd {
	ctx, gw := m.ctx, m.gw
	return func() tea.Msg {
		return movePersistedMsg{err: gw.PersistMove(ctx, id, dest)}
	}
}

func cyclePriority(current *todo.Priority) *todo.Priority {
	order := todo.ValidPriorities()
	if current == nil {
		return &order[0]
	}
	for i, priority := range order {
		if priority == *current {
			if i == len(order)-1 {
				return nil
			}
			return &order[i+1]
		}
	}
	return nil
}

func cycleStatus(current *todo.Status) *todo.Status {
	order := todo.ValidStatuses()
	if current == nil {
		return &order[0]
	}
	for i, status := range order {
		if status == *current {
			if i == len(order)-1 {
				return nil
			}
			return &order[i+1]
		}
	}
	return nil
}

type todosLoadedMsg struct {
	seq   uint64
	todos []todo.Todo
	err   error
}

type todoSavedMsg struct {
	todo todo.Todo
	err  error
}

type todoDeletedMsg struct {
	id  todo.ID
	err error
}

type todoToggledMsg struct {
	todo todo.Todo
	err  error
}

type movePersistedMsg struct {
	err error
}
