package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fastygo/progress/internal/ui/styles"
)

type field struct {
	label string
	input textinput.Model
}

// form is a vertical stack of labelled text inputs with one focused field.
type form struct {
	fields []field
	focus  int
}

func newForm(specs ...[2]string) *form {
	f := &form{}
	for _, spec := range specs {
		in := textinput.New()
		in.Placeholder = spec[1]
		in.CharLimit = 200
		in.Width = 40
		f.fields = append(f.fields, field{label: spec[0], input: in})
	}
	f.fields[0].input.Focus()
	return f
}

func (f *form) masked(i int) *form {
	f.fields[i].input.EchoMode = textinput.EchoPassword
	f.fields[i].input.EchoCharacter = '•'
	return f
}

func (f *form) setFocus(i int) tea.Cmd {
	n := len(f.fields)
	f.focus = ((i % n) + n) % n
	for j := range f.fields {
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	return textinput.Blink
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

func (f *form) onLast() bool { return f.focus == len(f.fields)-1 }

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
	}
	f.setFocus(0)
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view(s *styles.Styles) string {
	rows := make([]string, 0, len(f.fields))
	for i, fl := range f.fields {
		box := s.Input
		if i == f.focus {
			box = s.InputFocused
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, s.Label.Render(fl.label), box.Render(fl.input.View())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
