package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takaishi/rgjump/search"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// project writes a small tree and returns its root and matching results
func project(t *testing.T) (string, []*search.SearchResult) {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"a/one.go": "package a\n\nfunc hello() {}\n",
		"b/two.go": "package b\n\n// goodbye world\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	results, notice := search.ParseOutput("a/one.go:3:func hello() {}\nb/two.go:3:// goodbye world\n", "")
	require.Nil(t, notice)
	return root, results
}

func TestPickerSelectsFirstByDefault(t *testing.T) {
	root, results := project(t)
	m := NewPicker(root, results)

	_, cmd := m.Update(key(tea.KeyEnter))

	assert.True(t, isQuit(cmd))
	assert.Equal(t, results[0], m.Chosen())
}

func TestPickerNavigation(t *testing.T) {
	root, results := project(t)
	m := NewPicker(root, results)

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown))
	assert.Equal(t, 1, m.selectedIndex, "selection stops at the last row")

	m.Update(key(tea.KeyCtrlP))
	assert.Equal(t, 0, m.selectedIndex)

	m.Update(key(tea.KeyCtrlN))
	m.Update(key(tea.KeyEnter))
	assert.Equal(t, results[1], m.Chosen())
}

func TestPickerFiltersOnDescription(t *testing.T) {
	root, results := project(t)
	m := NewPicker(root, results)

	m.Update(keyRunes("GOODBYE"))

	assert.Equal(t, []int{1}, m.filtered)
	m.Update(key(tea.KeyEnter))
	assert.Equal(t, results[1], m.Chosen())
}

func TestPickerFilterWithoutMatches(t *testing.T) {
	root, results := project(t)
	m := NewPicker(root, results)

	m.Update(keyRunes("zzz"))
	_, cmd := m.Update(key(tea.KeyEnter))

	assert.Empty(t, m.filtered)
	assert.False(t, isQuit(cmd))
	assert.Nil(t, m.Chosen())
}

func TestPickerCancel(t *testing.T) {
	root, results := project(t)
	m := NewPicker(root, results)

	_, cmd := m.Update(key(tea.KeyEsc))

	assert.True(t, isQuit(cmd))
	assert.True(t, m.cancelled)
	assert.Nil(t, m.Chosen())
}

func TestPickerLoadsPreview(t *testing.T) {
	root, results := project(t)
	m := NewPicker(root, results)

	msg := m.loadPreview()()
	m.Update(msg)

	require.NoError(t, m.previewError)
	require.NotNil(t, m.preview)
	assert.Equal(t, "func hello() {}", m.preview.Lines[m.preview.HitLine-1])
}

func TestPickerIgnoresStalePreview(t *testing.T) {
	root, results := project(t)
	m := NewPicker(root, results)

	stale := m.loadPreview()()
	m.Update(key(tea.KeyDown))
	m.Update(stale)

	assert.Nil(t, m.preview)
}

func TestPickerPreviewError(t *testing.T) {
	results, _ := search.ParseOutput("missing.go:1:x\n", "")
	m := NewPicker(t.TempDir(), results)

	m.Update(m.loadPreview()())

	assert.Error(t, m.previewError)
	assert.Contains(t, renderPreview(m), "Error loading preview")
}

func TestPickerScrollKeepsSelectionVisible(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 40; i++ {
		fmt.Fprintf(&b, "f.go:%d:line %d\n", i, i)
	}
	results, _ := search.ParseOutput(b.String(), "")
	m := NewPicker(t.TempDir(), results)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	visible := m.visibleResults()
	for i := 0; i < visible+2; i++ {
		m.Update(key(tea.KeyDown))
	}

	assert.GreaterOrEqual(t, m.selectedIndex, m.resultsOffset)
	assert.Less(t, m.selectedIndex, m.resultsOffset+visible)

	m.Update(key(tea.KeyEnd))
	assert.Equal(t, 39, m.selectedIndex)
	assert.Equal(t, 40-visible, m.resultsOffset)

	m.Update(key(tea.KeyHome))
	assert.Zero(t, m.selectedIndex)
	assert.Zero(t, m.resultsOffset)
}

func TestPickerView(t *testing.T) {
	root, results := project(t)
	m := NewPicker(root, results)
	assert.Equal(t, "Initializing...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()

	assert.Contains(t, view, "one.go : 3")
	assert.Contains(t, view, "goodbye world")
	assert.Contains(t, view, "2 matches in 2 files")
}
