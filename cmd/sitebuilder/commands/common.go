package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitebuilder/internal/folders"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Generate the site, or deploy it with --deploy"`
	Init    InitCmd    `cmd:"" help:"Initialize a new site project"`
	Preview PreviewCmd `cmd:"" help:"Serve the site locally and rebuild on content changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadSiteConfig resolves the site root (explicit or discovered) and loads
// its configuration.
func loadSiteConfig(rootFlag string) (*site.Config, string, error) {
	root := rootFlag
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		if root, err = folders.FindRoot(cwd); err != nil {
			return nil, "", err
		}
	}
	cfg, err := site.Load(filepath.Join(root, site.ConfigFileName))
	if err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}
