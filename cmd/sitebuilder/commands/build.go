package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/deploy"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/notify"
	"git.home.luguber.info/inful/sitebuilder/internal/publish"
	"git.home.luguber.info/inful/sitebuilder/internal/steps"
)

// BuildCmd generates the site, or stages and pushes it when --deploy is set.
type BuildCmd struct {
	Root       string `short:"r" help:"Site root directory (default: discovered from the nearest site.yaml)"`
	Output     string `short:"o" help:"Output directory (default: Output/ under the root)"`
	Deploy     bool   `short:"d" help:"Run the deployment steps instead of generation"`
	Remote     string `help:"Git remote URL to deploy to"`
	Branch     string `help:"Git branch to deploy to" default:"main"`
	CheckLinks bool   `help:"Verify internal links in the generated HTML" default:"true"`
	Notify     bool   `help:"Send desktop notifications on start and completion"`
	Metrics    bool   `help:"Record Prometheus metrics for the run"`
}

func (b *BuildCmd) Run(_ *Global) error {
	cfg, root, err := loadSiteConfig(b.Root)
	if err != nil {
		return err
	}

	tree := []publish.Step{
		steps.AddMarkdownFiles(markdown.NewParser()),
		resourcesStep(root),
		steps.GenerateHTML(),
	}
	if b.CheckLinks {
		tree = append(tree, steps.CheckOutputLinks())
	}
	if b.Remote != "" {
		tree = append(tree, deploy.Git(b.Remote, b.Branch))
	}

	p := publish.New(cfg, tree...).
		SetRootDir(root).
		SetOutputDir(b.Output).
		SetArgs(runArgs(b.Deploy))
	if b.Notify {
		p.SetObserver(notify.NewDesktopObserver())
	}
	if b.Metrics {
		p.SetRecorder(metrics.NewPrometheusRecorder(nil))
	}

	snapshot, err := p.Run(context.Background())
	if err != nil {
		return err
	}

	items := 0
	for _, s := range snapshot.Sections {
		items += len(s.Items)
	}
	slog.Info("Build finished",
		logfields.Site(cfg.Name),
		slog.Int("items", items),
		slog.Int("pages", len(snapshot.Pages)))
	return nil
}

// resourcesStep copies the Resources folder when the project has one, and
// contributes nothing otherwise.
func resourcesStep(root string) publish.Step {
	if _, err := os.Stat(filepath.Join(root, "Resources")); err != nil {
		return publish.Empty(publish.KindGeneration)
	}
	return steps.CopyResources()
}

// runArgs carries the deployment flag into run-kind detection, alongside
// whatever was on the real command line.
func runArgs(deployFlag bool) []string {
	args := os.Args[1:]
	if deployFlag {
		args = append(args, publish.DeployFlagLong)
	}
	return args
}
