package publish

import (
	"git.home.luguber.info/inful/sitebuilder/internal/folders"
)

// DeployFolderSuffix names deployment staging folders under .publish.
const DeployFolderSuffix = "Deploy"

// CreateDeploymentFolder prepares an ephemeral staging folder mirroring the
// output folder, for a deployment step to publish from.
//
// The folder is created (or reused) as .publish/<prefix>Deploy. Its
// non-hidden contents are truncated, so state a configure callback set up
// in hidden files — say a version-control repository — survives between
// deployments. The configure callback then runs against the folder; any
// error it returns aborts with a DeploymentFolderSetupFailed error wrapping
// it. Finally everything currently in the output folder, hidden files
// included, is mirrored into the folder or into outputSubpath beneath it.
//
// Two deployment steps sharing a prefix share (and re-truncate) the same
// folder; prefixes are the caller's to keep distinct.
//
// The returned handle is for the caller to finish the deployment with,
// e.g. commit and push; the core treats that as opaque.
func (c *Context) CreateDeploymentFolder(prefix, outputSubpath string, configure func(*folders.Dir) error) (*folders.Dir, error) {
	name := prefix + DeployFolderSuffix
	folder, err := c.group.Internal.CreateSubdir(name)
	if err != nil {
		return nil, &Error{Kind: KindFolderCreation, Path: name, Err: err}
	}
	if err := folder.EmptyContents(false); err != nil {
		return nil, &Error{Kind: KindFolderCreation, Path: name, Err: err}
	}

	if configure != nil {
		if err := configure(folder); err != nil {
			return nil, &Error{Kind: KindDeploymentSetup, Path: name, Err: err}
		}
	}

	dst := folder
	if outputSubpath != "" {
		if dst, err = folder.CreateSubdir(outputSubpath); err != nil {
			return nil, &Error{Kind: KindFolderCreation, Path: name, Err: err}
		}
	}
	if err := c.group.Output.CopyContentsTo(dst, true); err != nil {
		return nil, &Error{Kind: KindFolderCreation, Path: name, Err: err}
	}
	return folder, nil
}
