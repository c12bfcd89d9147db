// Package deploy supplies deployment steps for the publishing pipeline.
// The core treats them as opaque operations; everything here builds on the
// context's deployment-folder helper.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/sitebuilder/internal/folders"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/publish"
)

// RemoteName is the remote the deployment pushes to.
const RemoteName = "origin"

// Git returns a deployment step that stages the output folder in a
// git-backed deployment folder, commits everything and pushes to the given
// remote branch.
//
// The repository in the deployment folder lives in hidden files, so it
// survives the folder's truncation between deployments and pushes stay
// incremental.
func Git(remoteURL, branch string) publish.Step {
	return publish.DeploymentStep("git deploy", func(ctx context.Context, c *publish.Context) error {
		folder, err := c.CreateDeploymentFolder("git", "", func(d *folders.Dir) error {
			return ensureRepository(d.Path(), remoteURL)
		})
		if err != nil {
			return err
		}
		return commitAndPush(ctx, folder.Path(), remoteURL, branch, c.Site().Name)
	})
}

// ensureRepository opens the repository in dir, initializing it on first
// use, and points the origin remote at remoteURL.
func ensureRepository(dir, remoteURL string) error {
	repo, err := gogit.PlainOpen(dir)
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		repo, err = gogit.PlainInit(dir, false)
	}
	if err != nil {
		return fmt.Errorf("open deployment repository: %w", err)
	}

	remote, err := repo.Remote(RemoteName)
	switch {
	case errors.Is(err, gogit.ErrRemoteNotFound):
		_, err = repo.CreateRemote(&gitcfg.RemoteConfig{Name: RemoteName, URLs: []string{remoteURL}})
		return err
	case err != nil:
		return err
	case len(remote.Config().URLs) == 0 || remote.Config().URLs[0] != remoteURL:
		if err := repo.DeleteRemote(RemoteName); err != nil {
			return err
		}
		_, err = repo.CreateRemote(&gitcfg.RemoteConfig{Name: RemoteName, URLs: []string{remoteURL}})
		return err
	}
	return nil
}

func commitAndPush(ctx context.Context, dir, remoteURL, branch, siteName string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("open deployment repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage deployment contents: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return err
	}
	if status.IsClean() {
		slog.Info("Deployment folder unchanged since last deploy, pushing existing state", logfields.Path(dir))
	} else {
		msg := fmt.Sprintf("Publish %s (%s)", siteName, time.Now().UTC().Format(time.RFC3339))
		if _, err := wt.Commit(msg, &gogit.CommitOptions{
			Author: &object.Signature{Name: "sitebuilder", Email: "sitebuilder@localhost", When: time.Now()},
		}); err != nil {
			return fmt.Errorf("commit deployment contents: %w", err)
		}
	}

	head, err := repo.Head()
	if err != nil {
		return err
	}
	refSpec := gitcfg.RefSpec(fmt.Sprintf("+%s:refs/heads/%s", head.Name(), branch))
	err = repo.PushContext(ctx, &gogit.PushOptions{RemoteName: RemoteName, RefSpecs: []gitcfg.RefSpec{refSpec}})
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		slog.Info("Remote already up to date", logfields.URL(remoteURL))
		return nil
	}
	if err != nil {
		return fmt.Errorf("push to %s: %w", remoteURL, err)
	}
	slog.Info("Deployed site", logfields.URL(remoteURL), slog.String("branch", branch))
	return nil
}
