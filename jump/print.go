package jump

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/takaishi/rgjump/search"
)

// PrintHost is a non-interactive Host. Queries are read line by line from
// In, results are printed as path:line: text and never selected.
type PrintHost struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	scanner *bufio.Scanner
}

// PromptText reads the next line from In; EOF cancels
func (h *PrintHost) PromptText(ctx context.Context) (string, bool, error) {
	if h.In == nil {
		return "", false, nil
	}
	if h.scanner == nil {
		h.scanner = bufio.NewScanner(h.In)
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if !h.scanner.Scan() {
		return "", false, h.scanner.Err()
	}
	return strings.TrimRight(h.scanner.Text(), "\r"), true, nil
}

// PromptSelection prints every result and selects none
func (h *PrintHost) PromptSelection(_ context.Context, results []*search.SearchResult) (*search.SearchResult, bool, error) {
	for _, r := range results {
		if _, err := fmt.Fprintf(h.Out, "%s:%d: %s\n", r.File, r.Line, r.Description); err != nil {
			return nil, false, err
		}
	}
	return nil, false, nil
}

// Notify writes the notice to Err
func (h *PrintHost) Notify(n search.Notice) {
	if h.Err == nil {
		return
	}
	if n.Level == search.NoticeError {
		fmt.Fprintf(h.Err, "Error: %s\n", n.Message)
		return
	}
	fmt.Fprintln(h.Err, n.Message)
}
