// Package content defines the in-memory model of a website: sections
// holding dated items, free-form pages keyed by output path, tags, and the
// root index page.
package content

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SectionID identifies a section. The set of valid ids is declared by the
// site configuration.
type SectionID string

// Tag is a string label attached to items for filtering and grouping.
type Tag string

func (t Tag) String() string { return string(t) }

// Body holds the shared fields every publishable unit carries.
type Body struct {
	Title        string
	Description  string
	HTML         string // rendered body markup
	Date         time.Time
	LastModified time.Time
}

// Index is the site's root page.
type Index struct {
	Body Body
}

// Item is one publishable content unit belonging to a section.
type Item struct {
	Path        string // output path, e.g. "/articles/first-post"
	SectionID   SectionID
	Tags        []Tag
	Body        Body
	Metadata    map[string]any // parser-supplied fields passed through untouched
	Fingerprint string         // content fingerprint, when the parser provides one
}

// Page is free-form content addressed directly by output path, outside any
// section.
type Page struct {
	Path string
	Body Body
}

// Section is a named grouping of items sharing a site-declared id. It owns
// its items.
type Section struct {
	ID    SectionID
	Title string
	Body  Body
	Items []Item
}

// NewSection creates an empty section with a title derived from its id.
func NewSection(id SectionID) Section {
	return Section{ID: id, Title: TitleForID(id)}
}

// AddItem appends an item to the section, stamping the section's id on it.
func (s *Section) AddItem(item Item) {
	item.SectionID = s.ID
	s.Items = append(s.Items, item)
}

// Tags returns the distinct tags used by the section's items, in first-use
// order.
func (s *Section) Tags() []Tag {
	seen := make(map[Tag]struct{})
	var tags []Tag
	for _, it := range s.Items {
		for _, t := range it.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// ItemsTagged returns the section's items carrying the given tag, in
// insertion order.
func (s *Section) ItemsTagged(tag Tag) []Item {
	var out []Item
	for _, it := range s.Items {
		if it.HasTag(tag) {
			out = append(out, it)
		}
	}
	return out
}

// HasTag reports whether the item carries the given tag.
func (it Item) HasTag(tag Tag) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.English)

// TitleForID derives a human-readable default title from a section id,
// e.g. "getting-started" becomes "Getting Started".
func TitleForID(id SectionID) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(string(id))
	return titleCaser.String(s)
}
