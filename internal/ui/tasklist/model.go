package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/logging"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/internal/theme"
	"github.com/nhle/todo/internal/ui"
	helpview "github.com/nhle/todo/internal/ui/help"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures the browser.
type Options struct {
	TimeFormat string
	Color      bool
	Logger     *log.Logger
}

// Model is the Bubble Tea model of the interactive task browser. It calls
// Storage synchronously from Update, so the storage is only ever touched
// from the program's event loop.
type Model struct {
	list     list.Model
	storage  *store.Storage
	keys     *keys.KeyMap
	help     helpview.Model
	layout   ui.Layout
	logger   *log.Logger
	showHelp bool
	status   string
	err      error
}

// New creates a browser over the given storage.
func New(s *store.Storage, k *keys.KeyMap, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	delegate := ItemDelegate{
		palette:    theme.NewPalette(opts.Color),
		timeFormat: opts.TimeFormat,
	}

	layout := ui.NewLayout(defaultWidth, defaultHeight)
	l := list.New(nil, delegate, layout.Width, layout.ContentHeight())
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")

	m := Model{
		list:    l,
		storage: s,
		keys:    k,
		help:    helpview.New(k, layout.Width, layout.ContentHeight()),
		layout:  layout,
		logger:  logger,
	}
	m.refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles window resizes and key input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.list.SetSize(msg.Width, m.layout.ContentHeight())
		m.help.SetSize(msg.Width, m.layout.ContentHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case m.showHelp:
		// Any other key closes the overlay.
		m.showHelp = false
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		m.completeSelected()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) completeSelected() {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return
	}

	ok, err := m.storage.Complete(item.Position)
	m.report(ok, err, "Task marked as completed!")
	m.logger.Debug("complete from browser", "position", item.Position, "found", ok, "err", err)
}

func (m *Model) deleteSelected() {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return
	}

	ok, err := m.storage.Delete(item.Position)
	m.report(ok, err, "Task deleted successfully!")
	m.logger.Debug("delete from browser", "position", item.Position, "found", ok, "err", err)
}

// report records the outcome in the status bar and reloads the list.
func (m *Model) report(found bool, err error, success string) {
	m.err = err
	switch {
	case err != nil:
		m.status = ""
	case found:
		m.status = success
	default:
		m.status = "Task not found!"
	}
	m.refresh()
}

// refresh reloads the items from storage, keeping the cursor in range.
func (m *Model) refresh() {
	tasks := m.storage.List()
	items := make([]list.Item, len(tasks))
	for i, task := range tasks {
		items[i] = TaskItem{Task: task, Position: i}
	}

	idx := m.list.Index()
	m.list.SetItems(items)
	if len(items) > 0 && idx >= len(items) {
		m.list.Select(len(items) - 1)
	}
}

// Status returns the last action message shown in the status bar.
func (m Model) Status() string {
	return m.status
}

// Err returns the last storage error, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the browser.
func (m Model) View() string {
	header := m.layout.RenderHeader("todo", m.summary())

	var content string
	switch {
	case m.showHelp:
		content = m.help.View()
	case len(m.list.Items()) == 0:
		content = lipgloss.NewStyle().
			Width(m.layout.Width).
			Height(m.layout.ContentHeight()).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No tasks found.\n\nAdd one with: todo add <title>")
	default:
		content = m.list.View()
	}

	var statusText string
	switch {
	case m.err != nil:
		statusText = theme.ErrorStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		statusText = m.status
	default:
		statusText = theme.HelpStyle.Render(m.help.ShortView())
	}

	return m.layout.RenderWithFrame(header, content, m.layout.RenderStatusBar(statusText))
}

func (m Model) summary() string {
	tasks := m.storage.List()
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d tasks, %d done", len(tasks), done)
}

// Tasks returns the tasks currently shown, in list order.
func (m Model) Tasks() []model.Task {
	items := m.list.Items()
	tasks := make([]model.Task, 0, len(items))
	for _, it := range items {
		if ti, ok := it.(TaskItem); ok {
			tasks = append(tasks, ti.Task)
		}
	}
	return tasks
}

// Run starts the browser as a full-screen Bubble Tea program.
func Run(s *store.Storage, opts Options, progOpts ...tea.ProgramOption) error {
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)
	p := tea.NewProgram(New(s, keys.DefaultKeyMap(), opts), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running task browser: %w", err)
	}
	return nil
}
