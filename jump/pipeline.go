// Package jump runs one search from query to editor:
//
//	prompt -> tokenize -> rg -> parse -> notify -> select -> open
//
// Every collaborator with side effects is an interface so the pipeline can
// run without a terminal.
package jump

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/takaishi/rgjump/logging"
	"github.com/takaishi/rgjump/search"
)

// ErrCancelled is returned when the user dismisses the query prompt or
// submits an empty query
var ErrCancelled = errors.New("search cancelled")

// Host is the user-facing surface
type Host interface {
	// PromptText asks for a query. ok is false when the user cancelled.
	PromptText(ctx context.Context) (query string, ok bool, err error)
	// PromptSelection lets the user pick one record. ok is false when the
	// user cancelled.
	PromptSelection(ctx context.Context, results []*search.SearchResult) (*search.SearchResult, bool, error)
	// Notify shows an error or informational message
	Notify(notice search.Notice)
}

// Runner executes the search tool for query tokens in dir
type Runner interface {
	Run(ctx context.Context, dir string, tokens []string) (search.Output, error)
}

// Navigator opens a file with the cursor on a 1-based line
type Navigator interface {
	Open(path string, line int) error
}

// Pipeline wires the stages together. Root is the directory rg runs in and
// relative result paths are resolved against.
type Pipeline struct {
	Root      string
	Host      Host
	Runner    Runner
	Navigator Navigator
	Parser    search.Parser
	Logger    *slog.Logger

	// Query, when set, is used instead of the first prompt
	Query string
	// First skips the picker and opens the first record
	First bool
	// Repeat makes Loop prompt again after each search
	Repeat bool
}

// Search tokenizes query, runs it and parses the output. Any notice is
// shown on the host before returning.
func (p *Pipeline) Search(ctx context.Context, query string) ([]*search.SearchResult, error) {
	tokens := search.Tokenize(query)
	start := time.Now()
	p.logger().Debug("running search", "root", p.root(), "tokens", tokens)

	out, err := p.Runner.Run(ctx, p.root(), tokens)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results, notice := p.Parser.Parse(out.Stdout, out.Stderr)
	p.logger().Info("search finished",
		"query", query,
		"results", len(results),
		"duration", time.Since(start))
	if notice != nil {
		p.logger().Debug("search notice", "level", notice.Level, "message", notice.Message)
		p.Host.Notify(*notice)
	}
	return results, nil
}

// RunOnce performs one full search. It returns ErrCancelled when no query
// was entered and nil when the user closes the picker.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	query, err := p.query(ctx)
	if err != nil {
		return err
	}

	results, err := p.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	selected, err := p.selectResult(ctx, results)
	if err != nil || selected == nil {
		return err
	}

	target := search.ResolvePath(p.root(), selected.File)
	p.logger().Info("opening result", "path", target, "line", selected.Line)
	if err := p.Navigator.Open(target, selected.Line); err != nil {
		return fmt.Errorf("open %s:%d: %w", target, selected.Line, err)
	}
	return nil
}

// Loop is the outermost scope. Errors and panics from a search are shown
// on the host rather than ending the process; with Repeat set it keeps
// accepting searches until the prompt is cancelled or ctx is done.
func (p *Pipeline) Loop(ctx context.Context) error {
	for {
		err := p.safeRunOnce(ctx)
		switch {
		case errors.Is(err, ErrCancelled):
			return nil
		case err != nil && ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			p.logger().Error("search failed", "error", err)
			p.Host.Notify(search.Notice{Level: search.NoticeError, Message: err.Error()})
		}

		if !p.Repeat {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (p *Pipeline) safeRunOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()
	return p.RunOnce(ctx)
}

// query returns the preset query the first time, then prompts
func (p *Pipeline) query(ctx context.Context) (string, error) {
	if p.Query != "" {
		q := p.Query
		p.Query = ""
		return q, nil
	}

	q, ok, err := p.Host.PromptText(ctx)
	if err != nil {
		return "", fmt.Errorf("query prompt: %w", err)
	}
	if !ok || strings.TrimSpace(q) == "" {
		return "", ErrCancelled
	}
	return q, nil
}

func (p *Pipeline) selectResult(ctx context.Context, results []*search.SearchResult) (*search.SearchResult, error) {
	if p.First {
		return results[0], nil
	}
	selected, ok, err := p.Host.PromptSelection(ctx, results)
	if err != nil {
		return nil, fmt.Errorf("result picker: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return selected, nil
}

func (p *Pipeline) root() string {
	if p.Root == "" {
		return "."
	}
	return p.Root
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return logging.Discard()
	}
	return p.Logger
}
