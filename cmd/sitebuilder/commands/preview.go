package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/preview"
	"git.home.luguber.info/inful/sitebuilder/internal/publish"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
	"git.home.luguber.info/inful/sitebuilder/internal/steps"
)

// PreviewCmd serves the generated site locally, rebuilding when Markdown
// content or resources change.
type PreviewCmd struct {
	Root string `short:"r" help:"Site root directory (default: discovered from the nearest site.yaml)"`
	Port int    `short:"p" help:"Port to serve on" default:"8080"`
}

func (p *PreviewCmd) Run(_ *Global) error {
	cfg, root, err := loadSiteConfig(p.Root)
	if err != nil {
		return err
	}

	rebuild := func(cfg *site.Config) {
		pub := publish.New(cfg,
			steps.AddMarkdownFiles(markdown.NewParser()),
			resourcesStep(root),
			steps.GenerateHTML(),
		).SetRootDir(root)
		if _, err := pub.Run(context.Background()); err != nil {
			slog.Error("Rebuild failed", logfields.Error(err))
		}
	}
	rebuild(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchDirs := []string{filepath.Join(root, steps.ContentFolderName)}
	if _, err := os.Stat(filepath.Join(root, "Resources")); err == nil {
		watchDirs = append(watchDirs, filepath.Join(root, "Resources"))
	}
	go func() {
		if err := preview.Watch(ctx, watchDirs, func() {
			slog.Info("Content changed, rebuilding")
			rebuild(cfg)
		}); err != nil {
			slog.Error("Watcher stopped", logfields.Error(err))
		}
	}()

	addr := fmt.Sprintf("127.0.0.1:%d", p.Port)
	slog.Info("Serving site", logfields.URL("http://"+addr), logfields.Site(cfg.Name))
	return preview.NewServer(addr, filepath.Join(root, "Output")).Serve(ctx)
}
