package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
	"github.com/takaishi/rgjump/preview"
	"github.com/takaishi/rgjump/search"
)

// App is the tview flavour of the pipeline's user surface. Each prompt
// runs its own tview.Application.
type App struct {
	Root string
	Out  io.Writer

	pending []search.Notice
}

// NewApp creates an App resolving preview paths against root
func NewApp(root string) *App {
	return &App{Root: root, Out: os.Stderr}
}

// PromptText shows a one-line query input
func (a *App) PromptText(ctx context.Context) (string, bool, error) {
	notices := a.pending
	a.pending = nil

	app := tview.NewApplication()
	var (
		query     string
		submitted bool
	)

	markup := noticeMarkup(notices)
	noticeHeight := 0
	if markup != "" {
		noticeHeight = strings.Count(markup, "\n") + 1
	}
	noticeText := tview.NewTextView().
		SetDynamicColors(true).
		SetText(markup)

	input := tview.NewInputField().
		SetLabel("rg ").
		SetFieldWidth(0).
		SetPlaceholder("Please input search word.").
		SetFieldBackgroundColor(tcell.ColorDefault)
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			query, submitted = input.GetText(), true
			app.Stop()
		case tcell.KeyEscape:
			app.Stop()
		}
	})

	help := tview.NewTextView().
		SetText("flags like -i or --type=go pass through to ripgrep  enter search  esc cancel").
		SetTextColor(tcell.ColorGray)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(noticeText, noticeHeight, 0, false).
		AddItem(input, 1, 0, true).
		AddItem(help, 1, 0, false).
		AddItem(nil, 0, 1, false)
	layout.SetBorder(true).SetTitle(" Search ")

	app.SetRoot(layout, true).SetFocus(input)
	if err := runApp(ctx, app); err != nil {
		return "", false, err
	}
	return promptValue(query), submitted, nil
}

// PromptSelection shows a filter field, the result list and a preview
func (a *App) PromptSelection(ctx context.Context, results []*search.SearchResult) (*search.SearchResult, bool, error) {
	app := tview.NewApplication()
	var chosen *search.SearchResult
	filtered := filterResults(results, "")

	filterInput := tview.NewInputField().
		SetLabel("Filter ").
		SetFieldWidth(0).
		SetFieldBackgroundColor(tcell.ColorDefault)

	resultsList := tview.NewList().
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorBlue).
		SetSelectedTextColor(tcell.ColorWhite).
		ShowSecondaryText(false)
	resultsList.SetBorder(true).SetTitle(" Results ")

	previewText := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(false).
		SetScrollable(true)
	previewText.SetBorder(true).SetTitle(" Preview ")

	statusLine := tview.NewTextView().SetTextAlign(tview.AlignLeft)

	showPreview := func(pos int) {
		if pos < 0 || pos >= len(filtered) {
			previewText.Clear()
			return
		}
		r := results[filtered[pos]]
		p, err := preview.LoadPreview(search.ResolvePath(a.Root, r.File), r.Line)
		if err != nil {
			previewText.SetText("[red]Error loading preview: " + tview.Escape(err.Error()))
			return
		}
		previewText.SetText(previewMarkup(p)).ScrollToBeginning()
	}

	choose := func(pos int) {
		if pos >= 0 && pos < len(filtered) {
			chosen = results[filtered[pos]]
			app.Stop()
		}
	}

	rebuild := func() {
		filtered = filterResults(results, filterInput.GetText())
		resultsList.Clear()
		for _, i := range filtered {
			resultsList.AddItem(listLine(results[i]), "", 0, nil)
		}
		statusLine.SetText(statusText(len(filtered), len(results), results, filtered))
		if len(filtered) == 0 {
			previewText.Clear()
			return
		}
		resultsList.SetCurrentItem(0)
		showPreview(0)
	}

	resultsList.SetChangedFunc(func(index int, _, _ string, _ rune) {
		showPreview(index)
	})
	resultsList.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		choose(index)
	})
	filterInput.SetChangedFunc(func(string) {
		rebuild()
	})

	// Typing goes to the filter; the arrows drive the list without moving focus
	filterInput.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		current := resultsList.GetCurrentItem()
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyCtrlP:
			if current > 0 {
				resultsList.SetCurrentItem(current - 1)
			}
			return nil
		case tcell.KeyDown, tcell.KeyCtrlN:
			if current < len(filtered)-1 {
				resultsList.SetCurrentItem(current + 1)
			}
			return nil
		case tcell.KeyPgUp, tcell.KeyPgDn:
			resultsList.InputHandler()(event, func(tview.Primitive) {})
			return nil
		case tcell.KeyEnter:
			choose(current)
			return nil
		case tcell.KeyEscape:
			app.Stop()
			return nil
		}
		return event
	})

	header := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(filterInput, 1, 0, true).
		AddItem(statusLine, 1, 0, false)
	header.SetBorder(true).SetTitle(" Find in Files ")

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 4, 0, true).
		AddItem(resultsList, 0, 1, false).
		AddItem(previewText, 0, 2, false)

	rebuild()
	app.SetRoot(layout, true).SetFocus(filterInput)
	if err := runApp(ctx, app); err != nil {
		return nil, false, err
	}
	return chosen, chosen != nil, nil
}

// Notify queues a notice for the next prompt
func (a *App) Notify(n search.Notice) {
	a.pending = append(a.pending, n)
}

// Close writes notices nobody has seen yet
func (a *App) Close() error {
	pending := a.pending
	a.pending = nil
	return writeNotices(a.Out, pending)
}

// runApp runs app until it stops or ctx is done
func runApp(ctx context.Context, app *tview.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			app.Stop()
		case <-done:
		}
	}()

	if err := app.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return ctx.Err()
}

// listLine formats a result for the tview list: label column, then text
func listLine(r *search.SearchResult) string {
	label := runewidth.FillRight(runewidth.Truncate(r.Label, labelWidth, "…"), labelWidth)
	return "[gray]" + tview.Escape(label) + "[-] " + tview.Escape(r.Description)
}

// previewMarkup renders a preview with tview color tags
func previewMarkup(p *preview.Preview) string {
	lines := []string{"[yellow::b]" + tview.Escape(p.File) + "[-::-]", ""}
	for i, line := range p.Lines {
		num := fmt.Sprintf("%4d", p.StartLine+i)
		text := tview.Escape(strings.ReplaceAll(line, "\t", "    "))
		if i+1 == p.HitLine {
			lines = append(lines, "[white:blue]"+num+"[-:-] │ [yellow]"+text+"[-]")
		} else {
			lines = append(lines, "[gray]"+num+"[-] │ "+text)
		}
	}
	return strings.Join(lines, "\n")
}

// noticeMarkup renders queued notices, one per line
func noticeMarkup(notices []search.Notice) string {
	lines := make([]string, 0, len(notices))
	for _, n := range notices {
		if n.Level == search.NoticeError {
			lines = append(lines, "[red]Error: "+tview.Escape(n.Message)+"[-]")
		} else {
			lines = append(lines, "[skyblue]"+tview.Escape(n.Message)+"[-]")
		}
	}
	return strings.Join(lines, "\n")
}
