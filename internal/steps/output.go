package steps

import (
	"context"
	"fmt"
	"html"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/linkcheck"
	"git.home.luguber.info/inful/sitebuilder/internal/publish"
)

// CopyResources returns a generation step copying each named root folder
// into the output folder. With no arguments it copies "Resources". A named
// folder that does not exist is a copying error.
func CopyResources(folderNames ...string) publish.Step {
	if len(folderNames) == 0 {
		folderNames = []string{"Resources"}
	}
	return publish.GenerationStep("copy resources", func(_ context.Context, c *publish.Context) error {
		for _, name := range folderNames {
			if err := c.CopyFolderToOutput(name, ""); err != nil {
				return err
			}
		}
		return nil
	})
}

// GenerateHTML returns a generation step writing a plain HTML shell for the
// whole content model: the index, one list page per section, one page per
// item and every free-form page. Sites wanting richer markup supply their
// own rendering step in its place.
func GenerateHTML() publish.Step {
	return publish.GenerationStep("generate html", func(_ context.Context, c *publish.Context) error {
		index := c.Index()
		if err := writePage(c, "index.html", index.Body, sectionList(c)); err != nil {
			return err
		}

		for _, section := range c.Sections() {
			listing := itemList(section)
			if err := writePage(c, string(section.ID)+"/index.html", section.Body, listing); err != nil {
				return err
			}
			for _, item := range section.Items {
				if err := writePage(c, strings.TrimPrefix(item.Path, "/")+"/index.html", item.Body, ""); err != nil {
					return err
				}
			}
		}

		for p, page := range c.Pages() {
			if err := writePage(c, strings.TrimPrefix(p, "/")+"/index.html", page.Body, ""); err != nil {
				return err
			}
		}
		return nil
	})
}

// CheckOutputLinks returns a generation step verifying every internal link
// in the generated HTML resolves inside the output folder.
func CheckOutputLinks() publish.Step {
	return publish.GenerationStep("check output links", func(_ context.Context, c *publish.Context) error {
		broken, err := linkcheck.VerifyDir(c.Folders().Output.Path())
		if err != nil {
			return err
		}
		if len(broken) > 0 {
			targets := make([]string, len(broken))
			for i, b := range broken {
				targets[i] = b.String()
			}
			return fmt.Errorf("%d broken internal links: %s", len(broken), strings.Join(targets, ", "))
		}
		return nil
	})
}

func writePage(c *publish.Context, at string, body content.Body, extra string) error {
	f, err := c.CreateOutputFile(at)
	if err != nil {
		return err
	}
	title := html.EscapeString(body.Title)
	if title == "" {
		title = html.EscapeString(c.Site().Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html lang=%q>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", c.Site().Language, title)
	fmt.Fprintf(&b, "<h1>%s</h1>\n", title)
	b.WriteString(body.HTML)
	b.WriteString(extra)
	b.WriteString("</body>\n</html>\n")
	return f.WriteString(b.String())
}

func sectionList(c *publish.Context) string {
	var b strings.Builder
	b.WriteString("<nav><ul>\n")
	for _, s := range c.Sections() {
		fmt.Fprintf(&b, "<li><a href=\"/%s/\">%s</a></li>\n", s.ID, html.EscapeString(s.Title))
	}
	b.WriteString("</ul></nav>\n")
	return b.String()
}

func itemList(section content.Section) string {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, it := range section.Items {
		fmt.Fprintf(&b, "<li><a href=\"%s/\">%s</a></li>\n", it.Path, html.EscapeString(it.Body.Title))
	}
	b.WriteString("</ul>\n")
	return b.String()
}
