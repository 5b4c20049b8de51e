package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorStyle renders failures in the status bar.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Bold(true)

// PanelStyle wraps overlay content such as the full help view.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle fades completed tasks.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// Palette renders the pieces of the printed task list. With color
// disabled it returns text untouched.
type Palette struct {
	color     bool
	header    lipgloss.Style
	open      lipgloss.Style
	completed lipgloss.Style
	done      lipgloss.Style
	timestamp lipgloss.Style
}

// NewPalette returns the list palette.
func NewPalette(color bool) Palette {
	return Palette{
		color:     color,
		header:    lipgloss.NewStyle().Bold(true),
		open:      lipgloss.NewStyle().Bold(true).Foreground(ColorBlue),
		completed: lipgloss.NewStyle().Bold(true).Foreground(ColorGreen),
		done:      DimmedStyle,
		timestamp: lipgloss.NewStyle().Foreground(ColorGray),
	}
}

func (p Palette) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Heading renders a section heading.
func (p Palette) Heading(s string) string {
	return p.render(p.header, s)
}

// Marker returns the status marker for a task.
func (p Palette) Marker(completed bool) string {
	if completed {
		return p.render(p.completed, "[x]")
	}
	return p.render(p.open, "[ ]")
}

// Title returns the task title, dimmed once the task is completed.
func (p Palette) Title(title string, completed bool) string {
	if completed {
		return p.render(p.done, title)
	}
	return title
}

// Timestamp renders a formatted creation time.
func (p Palette) Timestamp(s string) string {
	return p.render(p.timestamp, s)
}
