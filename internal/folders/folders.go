// Package folders manages the fixed on-disk layout of a site project: the
// source root, the generated Output folder, and the internal .publish state
// area with its per-step caches.
package folders

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a handle to an existing directory.
type Dir struct {
	path string
}

// Open returns a handle to an existing directory.
func Open(path string) (*Dir, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}
	return &Dir{path: filepath.Clean(path)}, nil
}

// Create returns a handle to the directory at path, creating it and any
// missing parents first.
func Create(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, err
	}
	return &Dir{path: filepath.Clean(path)}, nil
}

// Path returns the directory's absolute or cleaned path.
func (d *Dir) Path() string { return d.path }

// Name returns the directory's base name.
func (d *Dir) Name() string { return filepath.Base(d.path) }

// Subdir returns a handle to an existing subdirectory. An empty or "."
// relative path returns the directory itself.
func (d *Dir) Subdir(rel string) (*Dir, error) {
	if isSelf(rel) {
		return d, nil
	}
	return Open(filepath.Join(d.path, filepath.FromSlash(rel)))
}

// CreateSubdir returns a handle to a subdirectory, creating it if missing.
// An empty or "." relative path returns the directory itself.
func (d *Dir) CreateSubdir(rel string) (*Dir, error) {
	if isSelf(rel) {
		return d, nil
	}
	return Create(filepath.Join(d.path, filepath.FromSlash(rel)))
}

// File returns a handle to an existing regular file under the directory.
func (d *Dir) File(rel string) (*File, error) {
	path := filepath.Join(d.path, filepath.FromSlash(rel))
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}
	return &File{path: path}, nil
}

// CreateFile returns a handle to a file under the directory, creating the
// file and any missing parent directories. An existing file is left
// untouched.
func (d *Dir) CreateFile(rel string) (*File, error) {
	path := filepath.Join(d.path, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &File{path: path}, nil
}

// EmptyContents removes every entry in the directory. Hidden entries (names
// starting with a dot) are kept unless includeHidden is true.
func (d *Dir) EmptyContents(includeHidden bool) error {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !includeHidden && isHidden(entry.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(d.path, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// CopyContentsTo copies every entry in the directory into dst, recursing
// into subdirectories. Hidden entries are skipped unless includeHidden is
// true.
func (d *Dir) CopyContentsTo(dst *Dir, includeHidden bool) error {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !includeHidden && isHidden(entry.Name()) {
			continue
		}
		srcPath := filepath.Join(d.path, entry.Name())
		dstPath := filepath.Join(dst.path, entry.Name())
		if entry.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// File is a handle to a file path; the file exists when the handle was
// obtained through Dir.
type File struct {
	path string
}

// Path returns the file's path.
func (f *File) Path() string { return f.path }

// Name returns the file's base name.
func (f *File) Name() string { return filepath.Base(f.path) }

// Read returns the file's contents.
func (f *File) Read() ([]byte, error) { return os.ReadFile(f.path) }

// ReadString returns the file's contents as a string.
func (f *File) ReadString() (string, error) {
	data, err := os.ReadFile(f.path)
	return string(data), err
}

// Write replaces the file's contents.
func (f *File) Write(data []byte) error { return os.WriteFile(f.path, data, 0o644) }

// WriteString replaces the file's contents with s.
func (f *File) WriteString(s string) error { return f.Write([]byte(s)) }

// CopyDir recursively copies a directory tree, preserving file modes.
func CopyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// CopyFile copies a single file from src to dst, preserving its mode.
func CopyFile(src, dst string) error { return copyFile(src, dst) }

// copyFile copies a single file from src to dst, preserving its mode.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}

func isHidden(name string) bool { return strings.HasPrefix(name, ".") }

func isSelf(rel string) bool {
	return rel == "" || rel == "." || rel == string(filepath.Separator)
}
