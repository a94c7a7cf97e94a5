package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/takaishi/rgjump/config"
	"github.com/takaishi/rgjump/editor"
	"github.com/takaishi/rgjump/jump"
	"github.com/takaishi/rgjump/logging"
	"github.com/takaishi/rgjump/search"
	"github.com/takaishi/rgjump/tui"
	"github.com/urfave/cli/v2"
)

// errReported marks a failure the host has already shown to the user
var errReported = errors.New("search failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(os.Stdout, os.Stderr)
	if err := app.RunContext(ctx, os.Args); err != nil {
		if !errors.Is(err, errReported) && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "rgjump",
		Usage:     "Search with ripgrep, pick a match, jump to it in your editor",
		ArgsUsage: "[query...]",
		Description: "The query is split into ripgrep arguments: words starting with - are\n" +
			"flags, anything else is joined into the pattern. Put -- before a query\n" +
			"that starts with a flag, e.g. rgjump -- -i todo.",
		Flags:     config.Flags(),
		Writer:    stdout,
		ErrWriter: stderr,
		Action: func(c *cli.Context) error {
			cfg, err := config.FromContext(c)
			if err != nil {
				return err
			}
			return run(c.Context, cfg, c.App.Writer, c.App.ErrWriter)
		},
	}
}

func run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	searcher := search.NewSearcher(cfg.Binary, cfg.ExtraArgs, cfg.MaxBuffer)
	if cfg.DryRun {
		_, err := fmt.Fprintln(stdout, searcher.CommandLine(search.Tokenize(cfg.QueryString())))
		return err
	}

	// Check if ripgrep is installed
	if _, err := exec.LookPath(cfg.Binary); err != nil {
		return fmt.Errorf("ripgrep (%s) is not installed or not in PATH\n"+
			"Please install ripgrep: https://github.com/BurntSushi/ripgrep", cfg.Binary)
	}

	logger, closeLog, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	if !cfg.List {
		if err := cfg.ResolveEditor(); err != nil {
			return err
		}
	}

	root := search.ResolveRoot(cfg.Root)
	host := newHost(cfg, root, stdout, stderr)
	if closer, ok := host.(io.Closer); ok {
		defer closer.Close()
	}

	logger.Info("starting", "root", root, "ui", cfg.UI, "editor", cfg.Editor, "rg", cfg.Binary)
	p := &jump.Pipeline{
		Root:      root,
		Host:      host,
		Runner:    searcher,
		Navigator: &editor.Opener{Editor: cfg.Editor},
		Parser:    search.Parser{MaxDescriptionLength: cfg.MaxDescriptionLength},
		Logger:    logger,
		Query:     cfg.QueryString(),
		First:     cfg.First,
		Repeat:    cfg.Repeat,
	}
	if err := p.Loop(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errReported
	}
	return nil
}

func newHost(cfg *config.Config, root string, stdout, stderr io.Writer) jump.Host {
	switch cfg.UI {
	case config.UITview:
		a := tui.NewApp(root)
		a.Out = stderr
		return a
	case config.UIPlain:
		return &jump.PrintHost{In: os.Stdin, Out: stdout, Err: stderr}
	default:
		h := tui.NewHost(root)
		h.Out = stderr
		return h
	}
}
