package folders

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateFile_LeavesExistingContentUntouched(t *testing.T) {
	dir, err := Create(t.TempDir())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	f, err := dir.CreateFile("nested/data.txt")
	if err != nil {
		t.Fatalf("CreateFile() failed: %v", err)
	}
	if err := f.WriteString("keep me"); err != nil {
		t.Fatalf("WriteString() failed: %v", err)
	}

	// A second create for the same path must not truncate.
	f2, err := dir.CreateFile("nested/data.txt")
	if err != nil {
		t.Fatalf("second CreateFile() failed: %v", err)
	}
	got, err := f2.ReadString()
	if err != nil {
		t.Fatalf("ReadString() failed: %v", err)
	}
	if got != "keep me" {
		t.Errorf("expected existing content to survive, got %q", got)
	}
}

func TestSubdir_MissingDirectoryFails(t *testing.T) {
	dir, err := Create(t.TempDir())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if _, err := dir.Subdir("nope"); err == nil {
		t.Fatal("expected error for missing subdirectory")
	}
}

func TestSubdir_EmptyPathReturnsSelf(t *testing.T) {
	dir, err := Create(t.TempDir())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	same, err := dir.Subdir("")
	if err != nil {
		t.Fatalf("Subdir(\"\") failed: %v", err)
	}
	if same.Path() != dir.Path() {
		t.Errorf("expected same path, got %q vs %q", same.Path(), dir.Path())
	}
}

func TestEmptyContents_KeepsHiddenEntriesByDefault(t *testing.T) {
	dir, err := Create(t.TempDir())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	mustWrite(t, dir, ".git/config", "hidden")
	mustWrite(t, dir, "visible.txt", "visible")

	if err := dir.EmptyContents(false); err != nil {
		t.Fatalf("EmptyContents() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir.Path(), ".git", "config")); err != nil {
		t.Errorf("hidden entry was removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir.Path(), "visible.txt")); !os.IsNotExist(err) {
		t.Errorf("visible entry survived emptying")
	}
}

func TestEmptyContents_IncludeHiddenRemovesEverything(t *testing.T) {
	dir, err := Create(t.TempDir())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	mustWrite(t, dir, ".hidden", "x")
	mustWrite(t, dir, "a/b.txt", "x")

	if err := dir.EmptyContents(true); err != nil {
		t.Fatalf("EmptyContents() failed: %v", err)
	}

	entries, err := os.ReadDir(dir.Path())
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory, found %d entries", len(entries))
	}
}

func TestCopyContentsTo_IncludesHiddenWhenAsked(t *testing.T) {
	src, err := Create(t.TempDir())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	dst, err := Create(t.TempDir())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	mustWrite(t, src, ".hidden/marker", "h")
	mustWrite(t, src, "css/site.css", "body{}")
	mustWrite(t, src, "index.html", "<html></html>")

	if err := src.CopyContentsTo(dst, true); err != nil {
		t.Fatalf("CopyContentsTo() failed: %v", err)
	}

	for _, rel := range []string{".hidden/marker", "css/site.css", "index.html"} {
		if _, err := os.Stat(filepath.Join(dst.Path(), filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s to be copied: %v", rel, err)
		}
	}
}

func TestCopyContentsTo_SkipsHiddenByDefault(t *testing.T) {
	src, err := Create(t.TempDir())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	dst, err := Create(t.TempDir())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	mustWrite(t, src, ".secret", "h")
	mustWrite(t, src, "public.txt", "p")

	if err := src.CopyContentsTo(dst, false); err != nil {
		t.Fatalf("CopyContentsTo() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst.Path(), ".secret")); !os.IsNotExist(err) {
		t.Errorf("hidden entry should not be copied")
	}
	if _, err := os.Stat(filepath.Join(dst.Path(), "public.txt")); err != nil {
		t.Errorf("expected public.txt to be copied: %v", err)
	}
}

func mustWrite(t *testing.T, dir *Dir, rel, contents string) {
	t.Helper()
	f, err := dir.CreateFile(rel)
	if err != nil {
		t.Fatalf("CreateFile(%s) failed: %v", rel, err)
	}
	if err := f.WriteString(contents); err != nil {
		t.Fatalf("WriteString(%s) failed: %v", rel, err)
	}
}
