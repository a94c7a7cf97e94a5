package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/takaishi/rgjump/preview"
	"github.com/takaishi/rgjump/search"
)

const (
	minVisibleResults = 3
	headerHeight      = 4 // bordered filter line + status line
	footerHeight      = 1
)

// Model is the result picker. It filters results as the user types and
// previews the selected match.
type Model struct {
	root    string
	results []*search.SearchResult

	// filtered holds indexes into results; selectedIndex and resultsOffset
	// are positions in filtered
	filterInput   textinput.Model
	filtered      []int
	selectedIndex int
	resultsOffset int

	preview      *preview.Preview
	previewError error

	chosen    *search.SearchResult
	cancelled bool

	width  int
	height int
}

// NewPicker creates a picker over results; root resolves relative paths
// for the preview
func NewPicker(root string, results []*search.SearchResult) *Model {
	ti := textinput.New()
	ti.Placeholder = "filter matches..."
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.Focus()

	m := &Model{
		root:        root,
		results:     results,
		filterInput: ti,
	}
	m.applyFilter()
	return m
}

// Chosen returns the selected result, or nil when the picker was cancelled
func (m *Model) Chosen() *search.SearchResult {
	return m.chosen
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadPreview())
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filterInput.Width = msg.Width - 8
		m.adjustScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case previewLoadedMsg:
		return m.handlePreviewLoaded(msg)

	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
}

// View renders the UI
func (m *Model) View() string {
	return renderView(m)
}

// handleKey processes keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "enter":
		if r := m.selected(); r != nil {
			m.chosen = r
			return m, tea.Quit
		}
		return m, nil

	case "up", "ctrl+p", "ctrl+k":
		return m, m.moveSelection(-1)

	case "down", "ctrl+n", "ctrl+j":
		return m, m.moveSelection(1)

	case "pgup":
		return m, m.moveSelection(-m.visibleResults())

	case "pgdown":
		return m, m.moveSelection(m.visibleResults())

	case "home":
		return m, m.moveSelection(-len(m.filtered))

	case "end":
		return m, m.moveSelection(len(m.filtered))
	}

	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() == before {
		return m, cmd
	}

	m.applyFilter()
	return m, tea.Batch(cmd, m.loadPreview())
}

// applyFilter recomputes the visible results and resets the selection
func (m *Model) applyFilter() {
	m.filtered = filterResults(m.results, m.filterInput.Value())
	m.resultsOffset = 0
	m.preview = nil
	m.previewError = nil
	if len(m.filtered) == 0 {
		m.selectedIndex = -1
		return
	}
	m.selectedIndex = 0
}

// moveSelection moves the cursor by delta, clamped to the list
func (m *Model) moveSelection(delta int) tea.Cmd {
	if len(m.filtered) == 0 {
		return nil
	}
	next := m.selectedIndex + delta
	if next < 0 {
		next = 0
	}
	if next > len(m.filtered)-1 {
		next = len(m.filtered) - 1
	}
	if next == m.selectedIndex {
		return nil
	}
	m.selectedIndex = next
	m.adjustScroll()
	return m.loadPreview()
}

// selected returns the result under the cursor
func (m *Model) selected() *search.SearchResult {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.filtered) {
		return nil
	}
	return m.results[m.filtered[m.selectedIndex]]
}

// visibleResults is the list height for the current window size
func (m *Model) visibleResults() int {
	if m.height == 0 {
		return 10
	}
	rows := (m.height - headerHeight - footerHeight) / 3
	if rows < minVisibleResults {
		rows = minVisibleResults
	}
	return rows
}

// previewHeight is what remains below the list, minus the preview border
// and its header line
func (m *Model) previewHeight() int {
	rows := m.height - headerHeight - footerHeight - m.visibleResults() - 3
	if rows < 3 {
		rows = 3
	}
	return rows
}

// adjustScroll adjusts the scroll offset to keep selected item visible
func (m *Model) adjustScroll() {
	visible := m.visibleResults()

	if len(m.filtered) <= visible {
		m.resultsOffset = 0
		return
	}
	if m.selectedIndex < m.resultsOffset {
		m.resultsOffset = m.selectedIndex
	}
	if m.selectedIndex >= m.resultsOffset+visible {
		m.resultsOffset = m.selectedIndex - visible + 1
	}

	maxOffset := len(m.filtered) - visible
	if m.resultsOffset > maxOffset {
		m.resultsOffset = maxOffset
	}
	if m.resultsOffset < 0 {
		m.resultsOffset = 0
	}
}

// previewLoadedMsg is sent when a preview is loaded. index is the position
// in results the preview belongs to.
type previewLoadedMsg struct {
	index   int
	preview *preview.Preview
	err     error
}

// loadPreview loads preview for the currently selected result
func (m *Model) loadPreview() tea.Cmd {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.filtered) {
		return nil
	}

	index := m.filtered[m.selectedIndex]
	r := m.results[index]
	path := search.ResolvePath(m.root, r.File)
	return func() tea.Msg {
		p, err := preview.LoadPreview(path, r.Line)
		return previewLoadedMsg{index: index, preview: p, err: err}
	}
}

// handlePreviewLoaded stores a preview unless the selection moved on
func (m *Model) handlePreviewLoaded(msg previewLoadedMsg) (tea.Model, tea.Cmd) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.filtered) || m.filtered[m.selectedIndex] != msg.index {
		return m, nil
	}
	if msg.err != nil {
		m.preview = nil
		m.previewError = msg.err
		return m, nil
	}
	m.preview = msg.preview
	m.previewError = nil
	return m, nil
}
