package tui

import (
	"bytes"
	"context"
	"testing"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takaishi/rgjump/preview"
	"github.com/takaishi/rgjump/search"
)

func TestListLineEscapesTags(t *testing.T) {
	r := &search.SearchResult{File: "a.go", Line: 1, Label: "a.go : 1", Description: "x := m[red]"}

	line := listLine(r)

	assert.Contains(t, line, "a.go : 1")
	assert.Contains(t, line, tview.Escape("m[red]"))
}

func TestPreviewMarkupHighlightsHit(t *testing.T) {
	p := &preview.Preview{File: "a.go", StartLine: 9, Lines: []string{"before", "hit", "after"}, HitLine: 2}

	markup := previewMarkup(p)

	assert.Contains(t, markup, "[white:blue]  10[-:-] │ [yellow]hit[-]")
	assert.Contains(t, markup, "[gray]   9[-] │ before")
}

func TestNoticeMarkup(t *testing.T) {
	assert.Empty(t, noticeMarkup(nil))
	assert.Equal(t, "[red]Error: boom[-]\n[skyblue]done[-]", noticeMarkup([]search.Notice{
		{Level: search.NoticeError, Message: "boom"},
		{Level: search.NoticeInfo, Message: "done"},
	}))
}

func TestRunAppCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runApp(ctx, tview.NewApplication())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAppCloseFlushesNotices(t *testing.T) {
	var out bytes.Buffer
	a := &App{Out: &out}
	a.Notify(search.Notice{Level: search.NoticeInfo, Message: search.NoItemsMessage})

	require.NoError(t, a.Close())

	assert.Equal(t, "There are no items.\n", out.String())
}
