package folders

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// Well-known names in a site project's layout.
const (
	// AnchorFileName marks the root of a site project; Resolve walks up
	// from the working directory until it finds a directory containing it.
	AnchorFileName = "site.yaml"

	OutputFolderName   = "Output"
	InternalFolderName = ".publish"
	CachesFolderName   = "Caches"
)

// Group holds the four directory handles a publishing run operates on.
type Group struct {
	Root     *Dir
	Output   *Dir
	Internal *Dir
	Caches   *Dir
}

// Options controls how Resolve locates and prepares the layout.
type Options struct {
	// RootPath is the site root. Empty means discover it by walking up
	// from the working directory to the nearest anchor file.
	RootPath string
	// OutputPath overrides the output directory. Empty means Output/
	// under the root.
	OutputPath string
	// EmptyOutput clears the output folder's contents after resolving.
	// Failures to empty are logged and never abort the run.
	EmptyOutput bool
}

// Resolve locates the site root and prepares the Output, .publish and
// Caches directories, creating any that are missing.
func Resolve(opts Options) (*Group, error) {
	rootPath := opts.RootPath
	if rootPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		rootPath, err = FindRoot(cwd)
		if err != nil {
			return nil, err
		}
	}

	root, err := Open(rootPath)
	if err != nil {
		return nil, err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(root.Path(), OutputFolderName)
	}
	output, err := Create(outputPath)
	if err != nil {
		return nil, err
	}

	internal, err := root.CreateSubdir(InternalFolderName)
	if err != nil {
		return nil, err
	}
	caches, err := internal.CreateSubdir(CachesFolderName)
	if err != nil {
		return nil, err
	}

	if opts.EmptyOutput {
		if err := output.EmptyContents(true); err != nil {
			slog.Warn("Failed to empty output folder", logfields.Path(output.Path()), logfields.Error(err))
		}
	}

	return &Group{Root: root, Output: output, Internal: internal, Caches: caches}, nil
}

// FindRoot walks up from dir to the nearest directory containing the anchor
// file and returns that directory's path.
func FindRoot(dir string) (string, error) {
	start := dir
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		anchor := filepath.Join(abs, AnchorFileName)
		if info, err := os.Stat(anchor); err == nil && !info.IsDir() {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no %s found in %s or any parent directory", AnchorFileName, start)
		}
		abs = parent
	}
}
