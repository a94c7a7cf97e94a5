package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/takaishi/rgjump/search"
)

// programRunner runs a bubbletea model to completion and returns the final model
type programRunner func(ctx context.Context, model tea.Model, opts ...tea.ProgramOption) (tea.Model, error)

// Host implements the pipeline's user surface with bubbletea programs: an
// inline query prompt and a full-screen picker.
//
// Notices are shown at the top of the next query prompt. Any left when the
// host is closed are written to Out.
type Host struct {
	Root string
	Out  io.Writer

	pending []search.Notice
	run     programRunner
}

// NewHost creates a Host resolving preview paths against root
func NewHost(root string) *Host {
	return &Host{
		Root: root,
		Out:  os.Stderr,
		run:  runProgram,
	}
}

// PromptText shows the query prompt
func (h *Host) PromptText(ctx context.Context) (string, bool, error) {
	notices := h.pending
	h.pending = nil

	final, err := h.run(ctx, newPrompt(notices))
	if err != nil {
		return "", false, err
	}
	m, ok := final.(*promptModel)
	if !ok {
		return "", false, fmt.Errorf("unexpected prompt model %T", final)
	}
	q, submitted := m.Query()
	return promptValue(q), submitted, nil
}

// PromptSelection shows the picker in the alternate screen
func (h *Host) PromptSelection(ctx context.Context, results []*search.SearchResult) (*search.SearchResult, bool, error) {
	final, err := h.run(ctx, NewPicker(h.Root, results), tea.WithAltScreen())
	if err != nil {
		return nil, false, err
	}
	m, ok := final.(*Model)
	if !ok {
		return nil, false, fmt.Errorf("unexpected picker model %T", final)
	}
	if chosen := m.Chosen(); chosen != nil {
		return chosen, true, nil
	}
	return nil, false, nil
}

// Notify queues a notice for the next prompt
func (h *Host) Notify(n search.Notice) {
	h.pending = append(h.pending, n)
}

// Close writes notices nobody has seen yet
func (h *Host) Close() error {
	pending := h.pending
	h.pending = nil
	return writeNotices(h.Out, pending)
}

// writeNotices prints notices the way the plain host does
func writeNotices(w io.Writer, notices []search.Notice) error {
	for _, n := range notices {
		var err error
		if n.Level == search.NoticeError {
			_, err = fmt.Fprintf(w, "Error: %s\n", n.Message)
		} else {
			_, err = fmt.Fprintln(w, n.Message)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func runProgram(ctx context.Context, model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	final, err := p.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, fmt.Errorf("terminal ui: %w", err)
	}
	return final, nil
}
