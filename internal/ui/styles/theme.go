package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the terminal client
type Theme struct {
	Name string

	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	Primary lipgloss.Color
	Accent  lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary: lipgloss.Color("#7aa2f7"),
	Accent:  lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
}

// Current holds the active theme
var Current = TokyoNight

// MaxWidth caps the content width on wide terminals
const MaxWidth = 80

// ContentWidth returns min(terminal width, MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth <= 0 || terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView centers content horizontally when the terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds the pre-computed styles for the UI
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Completed   lipgloss.Style
	Pending     lipgloss.Style

	Help      lipgloss.Style
	StatusOK  lipgloss.Style
	StatusErr lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Width(12),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		MetricLabel: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Width(22),

		MetricValue: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		Completed: lipgloss.NewStyle().
			Foreground(t.Success),

		Pending: lipgloss.NewStyle().
			Foreground(t.Warning),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 0, 0, 0),

		StatusOK: lipgloss.NewStyle().
			Foreground(t.Success),

		StatusErr: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),
	}
}
