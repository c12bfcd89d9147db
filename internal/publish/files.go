package publish

import (
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/folders"
)

// Folder and file helpers. Relative paths resolve under the site root
// unless the method name says otherwise; Output-prefixed variants resolve
// under the output folder.

// Folder returns an existing folder under the root.
func (c *Context) Folder(at string) (*folders.Dir, error) {
	dir, err := c.group.Root.Subdir(at)
	if err != nil {
		return nil, &Error{Kind: KindNotFound, Path: at, Err: err}
	}
	return dir, nil
}

// File returns an existing file under the root.
func (c *Context) File(at string) (*folders.File, error) {
	f, err := c.group.Root.File(at)
	if err != nil {
		return nil, &Error{Kind: KindNotFound, Path: at, Err: err}
	}
	return f, nil
}

// OutputFolder returns an existing folder under the output folder.
func (c *Context) OutputFolder(at string) (*folders.Dir, error) {
	dir, err := c.group.Output.Subdir(at)
	if err != nil {
		return nil, &Error{Kind: KindNotFound, Path: at, Err: err}
	}
	return dir, nil
}

// OutputFile returns an existing file under the output folder.
func (c *Context) OutputFile(at string) (*folders.File, error) {
	f, err := c.group.Output.File(at)
	if err != nil {
		return nil, &Error{Kind: KindNotFound, Path: at, Err: err}
	}
	return f, nil
}

// CreateFolder returns the folder under the root, creating it if missing.
func (c *Context) CreateFolder(at string) (*folders.Dir, error) {
	dir, err := c.group.Root.CreateSubdir(at)
	if err != nil {
		return nil, &Error{Kind: KindCreationFailed, Path: at, Err: err}
	}
	return dir, nil
}

// CreateFile returns the file under the root, creating it if missing. An
// existing file is left untouched.
func (c *Context) CreateFile(at string) (*folders.File, error) {
	f, err := c.group.Root.CreateFile(at)
	if err != nil {
		return nil, &Error{Kind: KindCreationFailed, Path: at, Err: err}
	}
	return f, nil
}

// CreateOutputFolder returns the folder under the output folder, creating
// it if missing.
func (c *Context) CreateOutputFolder(at string) (*folders.Dir, error) {
	dir, err := c.group.Output.CreateSubdir(at)
	if err != nil {
		return nil, &Error{Kind: KindCreationFailed, Path: at, Err: err}
	}
	return dir, nil
}

// CreateOutputFile returns the file under the output folder, creating it if
// missing.
func (c *Context) CreateOutputFile(at string) (*folders.File, error) {
	f, err := c.group.Output.CreateFile(at)
	if err != nil {
		return nil, &Error{Kind: KindCreationFailed, Path: at, Err: err}
	}
	return f, nil
}

// CopyFolderToOutput copies the folder at from (under the root) into the
// output folder, or into the named output subfolder when to is non-empty,
// creating it if needed. The copied folder keeps its name.
func (c *Context) CopyFolderToOutput(from, to string) error {
	src, err := c.group.Root.Subdir(from)
	if err != nil {
		return &Error{Kind: KindCopyingFailed, Path: from, Err: err}
	}
	dst := c.group.Output
	if to != "" {
		if dst, err = c.group.Output.CreateSubdir(to); err != nil {
			return &Error{Kind: KindCopyingFailed, Path: from, Err: err}
		}
	}
	if err := folders.CopyDir(src.Path(), filepath.Join(dst.Path(), src.Name())); err != nil {
		return &Error{Kind: KindCopyingFailed, Path: from, Err: err}
	}
	return nil
}

// CopyFileToOutput copies the file at from (under the root) into the output
// folder, or into the named output subfolder when to is non-empty, creating
// it if needed. The copied file keeps its name.
func (c *Context) CopyFileToOutput(from, to string) error {
	src, err := c.group.Root.File(from)
	if err != nil {
		return &Error{Kind: KindCopyingFailed, Path: from, Err: err}
	}
	dst := c.group.Output
	if to != "" {
		if dst, err = c.group.Output.CreateSubdir(to); err != nil {
			return &Error{Kind: KindCopyingFailed, Path: from, Err: err}
		}
	}
	if err := folders.CopyFile(src.Path(), filepath.Join(dst.Path(), src.Name())); err != nil {
		return &Error{Kind: KindCopyingFailed, Path: from, Err: err}
	}
	return nil
}

// CacheFile returns a persistent scratch file for the current step,
// creating it if absent. Files live under Caches/<step>/<name> with both
// components normalized, so two steps never collide on the same file name.
// Normalization is lowercase with spaces as dashes; callers are expected to
// pick step names that stay distinct under it.
func (c *Context) CacheFile(name string) (*folders.File, error) {
	rel := path.Join(normalizeName(c.stepName), normalizeName(name))
	f, err := c.group.Caches.CreateFile(rel)
	if err != nil {
		return nil, &Error{Kind: KindCreationFailed, Step: c.stepName, Path: rel, Err: err}
	}
	return f, nil
}

// normalizeName converts a step or file name to a filesystem-safe slug,
// matching the tool's URL slug behavior.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
