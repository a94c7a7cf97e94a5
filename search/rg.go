package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"github.com/kballard/go-shellquote"
)

const (
	// DefaultBinary is the ripgrep executable looked up on PATH
	DefaultBinary = "rg"

	// DefaultMaxBuffer caps each captured stream of a single run
	DefaultMaxBuffer int64 = 200000 * 1024
)

// ErrOutputTooLarge is returned when rg writes more than MaxBuffer bytes
// to stdout or stderr. The process is killed.
var ErrOutputTooLarge = errors.New("search output exceeds buffer limit")

// Searcher handles ripgrep execution
type Searcher struct {
	Binary    string   // defaults to DefaultBinary
	ExtraArgs []string // placed after -n, before the query tokens
	MaxBuffer int64    // defaults to DefaultMaxBuffer
}

// NewSearcher creates a Searcher running the given binary
func NewSearcher(binary string, extraArgs []string, maxBuffer int64) *Searcher {
	return &Searcher{
		Binary:    binary,
		ExtraArgs: extraArgs,
		MaxBuffer: maxBuffer,
	}
}

// Args builds the argv (without the binary) for the given query tokens
func (s *Searcher) Args(tokens []string) []string {
	args := make([]string, 0, 1+len(s.ExtraArgs)+len(tokens))
	args = append(args, "-n")
	args = append(args, s.ExtraArgs...)
	return append(args, tokens...)
}

// CommandLine renders the full command for the given tokens as a
// shell-quoted string
func (s *Searcher) CommandLine(tokens []string) string {
	return CommandLine(append([]string{s.binary()}, s.Args(tokens)...))
}

// Run executes rg with the query tokens in dir and waits for it to exit.
//
// A non-zero exit status is not an error on its own: rg exits 1 when
// nothing matched and 2 after writing diagnostics to stderr, both of which
// the parser handles. Errors are reserved for failures to start, output
// overflow and context cancellation.
func (s *Searcher) Run(ctx context.Context, dir string, tokens []string) (Output, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	limit := s.MaxBuffer
	if limit <= 0 {
		limit = DefaultMaxBuffer
	}
	stdout := &boundedBuffer{limit: limit, onOverflow: cancel}
	stderr := &boundedBuffer{limit: limit, onOverflow: cancel}

	cmd := exec.CommandContext(ctx, s.binary(), s.Args(tokens)...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return Output{}, fmt.Errorf("failed to start ripgrep: %w", err)
	}
	err := cmd.Wait()

	if stdout.overflowed() || stderr.overflowed() {
		return Output{}, ErrOutputTooLarge
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Output{}, fmt.Errorf("ripgrep interrupted: %w", ctxErr)
	}

	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return out, fmt.Errorf("ripgrep failed: %w", err)
	}
	return out, nil
}

func (s *Searcher) binary() string {
	if s.Binary == "" {
		return DefaultBinary
	}
	return s.Binary
}

// CommandLine joins argv into a string a POSIX shell would split back into
// the same words
func CommandLine(argv []string) string {
	return shellquote.Join(argv...)
}

// boundedBuffer collects process output up to limit bytes
type boundedBuffer struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	limit      int64
	over       bool
	onOverflow func()
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.over {
		return 0, ErrOutputTooLarge
	}
	if int64(b.buf.Len()+len(p)) > b.limit {
		b.over = true
		if b.onOverflow != nil {
			b.onOverflow()
		}
		return 0, ErrOutputTooLarge
	}
	return b.buf.Write(p)
}

func (b *boundedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *boundedBuffer) overflowed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.over
}
