package tasklist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

// TaskItem wraps a model.Task and its position so it can be used in a
// bubbles/list.
type TaskItem struct {
	Task     model.Task
	Position int
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct {
	palette    theme.Palette
	timeFormat string
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	line := fmt.Sprintf(
		"%d. %s %s  %s",
		ti.Position+1,
		d.palette.Marker(ti.Task.Completed),
		d.palette.Title(ti.Task.Title, ti.Task.Completed),
		d.palette.Timestamp(ti.Task.CreatedAt.Format(d.timeFormat)),
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
