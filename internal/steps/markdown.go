// Package steps provides the canned pipeline steps a typical site wires
// into its publisher: reading Markdown content, copying static resources,
// writing the HTML shell and checking output links.
package steps

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/publish"
)

// ContentFolderName is where a site keeps its Markdown sources.
const ContentFolderName = "Content"

// AddMarkdownFiles returns a generation step that walks the Content folder
// and feeds every Markdown file through the parser. Files under a folder
// named after a declared section become that section's items; index.md at
// the Content root becomes the site index; every other Markdown file
// becomes a free-form page.
func AddMarkdownFiles(parser markdown.Parser) publish.Step {
	return publish.GenerationStep("add markdown files", func(_ context.Context, c *publish.Context) error {
		root, err := c.Folder(ContentFolderName)
		if err != nil {
			return err
		}

		sectionIDs := map[content.SectionID]bool{}
		for _, id := range c.Site().SectionIDs() {
			sectionIDs[id] = true
		}

		return filepath.WalkDir(root.Path(), func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
				return nil
			}
			raw, err := os.ReadFile(p) // #nosec G304 - path comes from walking the site's own content
			if err != nil {
				return err
			}
			doc, err := parser.Parse(string(raw))
			if err != nil {
				return fmt.Errorf("parse %s: %w", p, err)
			}

			rel, err := filepath.Rel(root.Path(), p)
			if err != nil {
				return err
			}
			return addDocument(c, doc, filepath.ToSlash(rel), sectionIDs)
		})
	})
}

// addDocument routes one parsed document into the content model based on
// its location under Content/.
func addDocument(c *publish.Context, doc *markdown.Document, rel string, sectionIDs map[content.SectionID]bool) error {
	slug := strings.TrimSuffix(rel, ".md")
	body := bodyFromDocument(doc, slug)

	if rel == "index.md" {
		c.SetIndex(content.Index{Body: body})
		return nil
	}

	if dir, rest, found := strings.Cut(slug, "/"); found {
		if id := content.SectionID(dir); sectionIDs[id] {
			return c.AddItem(content.Item{
				Path:        "/" + dir + "/" + strings.TrimSuffix(rest, "/index"),
				SectionID:   id,
				Tags:        tagsFromDocument(doc),
				Body:        body,
				Metadata:    doc.Fields,
				Fingerprint: doc.Fingerprint,
			})
		}
	}

	c.AddPage(content.Page{Path: "/" + slug, Body: body})
	return nil
}

func bodyFromDocument(doc *markdown.Document, slug string) content.Body {
	title := doc.Title
	if title == "" {
		title = content.TitleForID(content.SectionID(path.Base(slug)))
	}
	return content.Body{
		Title:        title,
		Description:  doc.Description,
		HTML:         doc.HTML,
		Date:         doc.Date,
		LastModified: doc.LastModified,
	}
}

func tagsFromDocument(doc *markdown.Document) []content.Tag {
	if len(doc.Tags) == 0 {
		return nil
	}
	tags := make([]content.Tag, len(doc.Tags))
	for i, t := range doc.Tags {
		tags[i] = content.Tag(t)
	}
	return tags
}
