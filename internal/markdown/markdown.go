// Package markdown implements the content parser the publishing core
// consumes: Markdown with YAML frontmatter in, structured content plus
// metadata out.
package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/inful/mdfp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Document is the structured result of parsing one Markdown source.
type Document struct {
	Title        string
	Description  string
	HTML         string // rendered body markup
	Date         time.Time
	LastModified time.Time
	Tags         []string
	Fields       map[string]any // full frontmatter passthrough
	Fingerprint  string         // canonical content fingerprint
}

// Parser turns raw Markdown source into a Document.
type Parser interface {
	Parse(source string) (*Document, error)
}

// GoldmarkParser renders Markdown with GFM extensions (tables,
// strikethrough, autolinks) and YAML frontmatter support.
type GoldmarkParser struct {
	md goldmark.Markdown
}

// NewParser returns the default parser.
func NewParser() *GoldmarkParser {
	return &GoldmarkParser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// Parse splits frontmatter from the body, renders the body to HTML, lifts
// well-known frontmatter keys into typed fields and fingerprints the
// document.
func (p *GoldmarkParser) Parse(source string) (*Document, error) {
	fm, body, had, _, err := Split([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("split frontmatter: %w", err)
	}

	fields := map[string]any{}
	if had && len(fm) > 0 {
		if fields, err = ParseYAML(fm); err != nil {
			return nil, fmt.Errorf("parse frontmatter: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := p.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	doc := &Document{
		HTML:        buf.String(),
		Fields:      fields,
		Fingerprint: mdfp.CalculateFingerprintFromParts(string(fm), string(body)),
	}
	liftWellKnownFields(doc, fields)
	return doc, nil
}
