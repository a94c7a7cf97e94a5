package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/takaishi/rgjump/editor"
	"github.com/urfave/cli/v2"
)

// Flags returns the command line flags understood by FromContext
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path",
			Value:   DefaultPath(),
		},
		&cli.StringFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Usage:   "Project root to search (default: git repository root, then .)",
		},
		&cli.StringFlag{
			Name:    "editor",
			Aliases: []string{"e"},
			Usage:   "Editor command (cursor, code, nvim, ...)",
			EnvVars: []string{"RGJUMP_EDITOR"},
		},
		&cli.StringFlag{
			Name:    "rg",
			Usage:   "ripgrep binary",
			EnvVars: []string{"RGJUMP_RG"},
		},
		&cli.StringFlag{
			Name:  "ui",
			Usage: "Interface: tea, tview or plain",
		},
		&cli.BoolFlag{
			Name:    "list",
			Aliases: []string{"l"},
			Usage:   "Print matches instead of opening a picker",
		},
		&cli.BoolFlag{
			Name:  "first",
			Usage: "Open the first match without the picker",
		},
		&cli.BoolFlag{
			Name:  "repeat",
			Usage: "Prompt for another search after each one",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the ripgrep command line and exit",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Write logs to this file",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn or error",
		},
	}
}

// FromContext loads the config file and applies flag overrides.
// Precedence: defaults < file < environment < flags.
func FromContext(c *cli.Context) (*Config, error) {
	cfg, err := Load(c.String("config"), c.IsSet("config"))
	if err != nil {
		return nil, err
	}

	if root := c.String("root"); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", root, err)
		}
		cfg.Root = abs
	}
	if ed := c.String("editor"); ed != "" {
		cfg.Editor = editor.Editor(ed)
	}
	if rg := c.String("rg"); rg != "" {
		cfg.Binary = rg
	}
	if ui := c.String("ui"); ui != "" {
		cfg.UI = ui
	}
	if c.IsSet("repeat") {
		cfg.Repeat = c.Bool("repeat")
	}
	if f := c.String("log-file"); f != "" {
		cfg.Log.File = f
	}
	if l := c.String("log-level"); l != "" {
		cfg.Log.Level = l
	}

	cfg.List = c.Bool("list")
	cfg.First = c.Bool("first")
	cfg.DryRun = c.Bool("dry-run")
	cfg.Query = c.Args().Slice()

	if cfg.List {
		cfg.UI = UIPlain
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// QueryString joins the positional arguments back into one query
func (c *Config) QueryString() string {
	return strings.Join(c.Query, " ")
}

// ResolveEditor fills in Editor by auto-detection when it is unset
func (c *Config) ResolveEditor() error {
	if c.Editor != "" {
		return nil
	}
	ed, err := editor.DetectEditor()
	if err != nil {
		return err
	}
	c.Editor = ed
	return nil
}
