package linkcheck

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// BrokenLink reports one internal link whose target does not exist in the
// output folder.
type BrokenLink struct {
	Source string // HTML file containing the link, relative to the root
	Target string // link destination as written
}

func (b BrokenLink) String() string { return fmt.Sprintf("%s -> %s", b.Source, b.Target) }

// VerifyDir walks every .html file under root and checks that each internal
// link resolves to an existing file or directory under root. Anchors and
// query strings are ignored when resolving.
func VerifyDir(root string) ([]BrokenLink, error) {
	var broken []BrokenLink
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		links, err := ExtractLinksFromFile(path)
		if err != nil {
			return fmt.Errorf("extract links from %s: %w", path, err)
		}
		rel, _ := filepath.Rel(root, path)
		for _, link := range links {
			if !link.IsInternal {
				continue
			}
			if !targetExists(root, filepath.Dir(path), link.URL) {
				broken = append(broken, BrokenLink{Source: rel, Target: link.URL})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return broken, nil
}

func targetExists(root, fileDir, raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	target := u.Path
	if target == "" { // pure anchor or query
		return true
	}

	var candidate string
	if strings.HasPrefix(target, "/") {
		candidate = filepath.Join(root, filepath.FromSlash(target))
	} else {
		candidate = filepath.Join(fileDir, filepath.FromSlash(target))
	}

	info, err := os.Stat(candidate)
	if err == nil {
		if info.IsDir() {
			// A directory target resolves through its index page.
			_, idxErr := os.Stat(filepath.Join(candidate, "index.html"))
			return idxErr == nil
		}
		return true
	}
	// Pretty URLs: /about resolves as /about/index.html or /about.html.
	if _, err := os.Stat(filepath.Join(candidate, "index.html")); err == nil {
		return true
	}
	if _, err := os.Stat(candidate + ".html"); err == nil {
		return true
	}
	return false
}
