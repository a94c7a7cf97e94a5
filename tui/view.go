package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/takaishi/rgjump/search"
)

var (
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	searchIconStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedResultStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("25"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	previewHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Bold(true)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	hitLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("25"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))
)

const labelWidth = 28

// renderView renders the picker
func renderView(m *Model) string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	sections := []string{
		renderHeader(m),
		renderResults(m),
	}
	if p := renderPreview(m); p != "" {
		sections = append(sections, p)
	}
	sections = append(sections, helpStyle.Render("↑/↓ move  enter open  esc cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the filter input and match count
func renderHeader(m *Model) string {
	line := searchIconStyle.Render(">") + " " + m.filterInput.View()
	status := statusStyle.Render(statusText(len(m.filtered), len(m.results), m.results, m.filtered))
	return headerStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, line, status))
}

// renderResults renders the visible slice of the filtered list
func renderResults(m *Model) string {
	if len(m.filtered) == 0 {
		return statusStyle.Render("No results match the filter")
	}

	visible := m.visibleResults()
	end := m.resultsOffset + visible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	width := m.width - 2
	lines := make([]string, 0, visible)
	for pos := m.resultsOffset; pos < end; pos++ {
		r := m.results[m.filtered[pos]]
		line := formatResult(r, m.filterInput.Value(), width, pos == m.selectedIndex)
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// formatResult renders one row: label column, then the match text
func formatResult(r *search.SearchResult, filter string, width int, selected bool) string {
	label := runewidth.FillRight(runewidth.Truncate(r.Label, labelWidth, "…"), labelWidth)
	textWidth := width - labelWidth - 1
	if textWidth < 10 {
		textWidth = 10
	}
	text := runewidth.Truncate(r.Description, textWidth, "…")

	if selected {
		row := runewidth.FillRight(label+" "+text, width)
		return selectedResultStyle.Render(row)
	}
	return labelStyle.Render(label) + " " + resultStyle.Render(highlightTerms(text, filter))
}

// highlightTerms highlights each filter word in text, case-insensitively
func highlightTerms(text, filter string) string {
	terms := strings.Fields(strings.ToLower(filter))
	if len(terms) == 0 {
		return text
	}

	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		// case folding changed byte offsets; don't risk splitting runes
		return text
	}

	marked := make([]bool, len(text))
	for _, term := range terms {
		for start := 0; ; {
			idx := strings.Index(lower[start:], term)
			if idx < 0 {
				break
			}
			for i := start + idx; i < start+idx+len(term); i++ {
				marked[i] = true
			}
			start += idx + len(term)
		}
	}

	var b strings.Builder
	for i := 0; i < len(text); {
		j := i
		for j < len(text) && marked[j] == marked[i] {
			j++
		}
		if marked[i] {
			b.WriteString(highlightStyle.Render(text[i:j]))
		} else {
			b.WriteString(text[i:j])
		}
		i = j
	}
	return b.String()
}

// renderPreview renders the code around the selected match
func renderPreview(m *Model) string {
	if m.previewError != nil {
		return errorStyle.Render("Error loading preview: " + m.previewError.Error())
	}
	if m.preview == nil {
		return ""
	}

	lines := []string{previewHeaderStyle.Render(m.preview.File)}
	maxLines := m.previewHeight()
	width := m.width - 14
	for i, line := range m.preview.Lines {
		if i >= maxLines {
			break
		}
		num := fmt.Sprintf("%5d", m.preview.StartLine+i)
		line = runewidth.Truncate(strings.ReplaceAll(line, "\t", "    "), width, "…")
		if i+1 == m.preview.HitLine {
			lines = append(lines, hitLineStyle.Render(num+" │ "+line))
		} else {
			lines = append(lines, lineNumberStyle.Render(num)+" │ "+line)
		}
	}

	return previewStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderNotice renders a notice carried over from the previous search
func renderNotice(n search.Notice) string {
	if n.Level == search.NoticeError {
		return errorStyle.Render("Error: " + n.Message)
	}
	return infoStyle.Render(n.Message)
}
