package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/takaishi/rgjump/search"
)

// promptModel asks for a search query
type promptModel struct {
	input     textinput.Model
	notices   []search.Notice
	submitted bool
	cancelled bool
}

func newPrompt(notices []search.Notice) *promptModel {
	ti := textinput.New()
	ti.Placeholder = "Please input search word."
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return &promptModel{input: ti, notices: notices}
}

// Query returns the submitted query and whether the user submitted one
func (m *promptModel) Query() (string, bool) {
	return m.input.Value(), m.submitted
}

func (m *promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 12
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.submitted = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *promptModel) View() string {
	if m.submitted || m.cancelled {
		// leave nothing behind on the terminal
		return ""
	}

	var lines []string
	for _, n := range m.notices {
		lines = append(lines, renderNotice(n))
	}
	lines = append(lines,
		searchIconStyle.Render("rg")+" "+m.input.View(),
		helpStyle.Render("flags like -i or --type=go pass through to ripgrep  enter search  esc cancel"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// promptValue trims the line ending a paste may leave behind
func promptValue(s string) string {
	return strings.TrimRight(s, "\r\n")
}
