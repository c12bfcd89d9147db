package publish

import (
	"cmp"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/folders"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
	"git.home.luguber.info/inful/sitebuilder/internal/state"
)

// Context is the shared mutable state of one publishing run. It owns the
// content model being built (sections, pages, the index), exposes folder and
// file helpers scoped to the run's folder group, and memoizes the tag set.
//
// A context belongs exclusively to whichever step callback is currently
// executing; steps run strictly one after another, so no locking is needed.
type Context struct {
	site  *site.Config
	group *folders.Group

	sectionOrder []content.SectionID
	sections     map[content.SectionID]*content.Section
	pages        map[string]content.Page
	index        content.Index

	tagCache      []content.Tag
	tagCacheValid bool

	lastGeneration    time.Time
	hasLastGeneration bool

	stepName string
	now      func() time.Time
}

func newContext(cfg *site.Config, group *folders.Group, now func() time.Time) *Context {
	if now == nil {
		now = time.Now
	}
	c := &Context{
		site:     cfg,
		group:    group,
		sections: make(map[content.SectionID]*content.Section),
		pages:    make(map[string]content.Page),
		now:      now,
	}
	for _, id := range cfg.SectionIDs() {
		s := content.NewSection(id)
		c.sections[id] = &s
		c.sectionOrder = append(c.sectionOrder, id)
	}
	return c
}

// Site returns the read-only site configuration.
func (c *Context) Site() *site.Config { return c.site }

// Folders returns the run's folder group.
func (c *Context) Folders() *folders.Group { return c.group }

// Index returns the site's root page.
func (c *Context) Index() content.Index { return c.index }

// SetIndex replaces the site's root page.
func (c *Context) SetIndex(index content.Index) { c.index = index }

// Section returns a copy of the section with the given id.
func (c *Context) Section(id content.SectionID) (content.Section, bool) {
	s, ok := c.sections[id]
	if !ok {
		return content.Section{}, false
	}
	return *s, true
}

// Sections returns copies of all sections in declared order.
func (c *Context) Sections() []content.Section {
	out := make([]content.Section, 0, len(c.sectionOrder))
	for _, id := range c.sectionOrder {
		out = append(out, *c.sections[id])
	}
	return out
}

// SetSections replaces the entire section collection, in the given order.
// The tag cache is invalidated.
func (c *Context) SetSections(sections []content.Section) {
	c.sections = make(map[content.SectionID]*content.Section, len(sections))
	c.sectionOrder = c.sectionOrder[:0]
	for _, s := range sections {
		s := s
		c.sections[s.ID] = &s
		c.sectionOrder = append(c.sectionOrder, s.ID)
	}
	c.invalidateTagCache()
}

// Page returns the page at the given output path.
func (c *Context) Page(path string) (content.Page, bool) {
	p, ok := c.pages[path]
	return p, ok
}

// Pages returns a copy of the page map, keyed by output path.
func (c *Context) Pages() map[string]content.Page {
	out := make(map[string]content.Page, len(c.pages))
	for k, v := range c.pages {
		out[k] = v
	}
	return out
}

// AddItem inserts an item into the section its SectionID declares.
func (c *Context) AddItem(item content.Item) error {
	s, ok := c.sections[item.SectionID]
	if !ok {
		return &Error{
			Kind:    KindSectionNotFound,
			Message: fmt.Sprintf("no section %q declared by site %q", item.SectionID, c.site.Name),
		}
	}
	s.AddItem(item)
	c.invalidateTagCache()
	return nil
}

// AddPage upserts a page into the page map by its path; the last write wins.
func (c *Context) AddPage(page content.Page) { c.pages[page.Path] = page }

// MutateAllSections applies the mutation to every section in declared
// order. The first failure aborts the remaining sections and propagates
// unchanged.
func (c *Context) MutateAllSections(mutation func(*content.Section) error) error {
	c.invalidateTagCache()
	for _, id := range c.sectionOrder {
		if err := mutation(c.sections[id]); err != nil {
			return err
		}
	}
	return nil
}

// MutatePage applies the mutation to the page at path. A missing page is a
// PageNotFound error; a predicate returning false is a silent no-op. When
// the mutation changes the page's path, the map is re-keyed and the old key
// removed.
func (c *Context) MutatePage(path string, predicate func(content.Page) bool, mutation func(*content.Page) error) error {
	page, ok := c.pages[path]
	if !ok {
		return &Error{Kind: KindPageNotFound, Path: path}
	}
	if predicate != nil && !predicate(page) {
		return nil
	}
	if err := mutation(&page); err != nil {
		return &Error{Kind: KindPageMutation, Path: page.Path, Err: err}
	}
	if page.Path != path {
		delete(c.pages, path)
	}
	c.pages[page.Path] = page
	return nil
}

// AllItems concatenates every section's items in declared section order,
// preserving insertion order within each section.
func (c *Context) AllItems() []content.Item {
	var out []content.Item
	for _, id := range c.sectionOrder {
		out = append(out, c.sections[id].Items...)
	}
	return out
}

// ItemsTagged returns every item carrying the given tag, in the same order
// as AllItems.
func (c *Context) ItemsTagged(tag content.Tag) []content.Item {
	var out []content.Item
	for _, it := range c.AllItems() {
		if it.HasTag(tag) {
			out = append(out, it)
		}
	}
	return out
}

// AllItemsSorted returns every item sorted by the projected key. Ties keep
// the aggregate order (declared section order, then insertion order).
func AllItemsSorted[K cmp.Ordered](c *Context, key func(content.Item) K, order content.Order) []content.Item {
	return content.SortedBy(c.AllItems(), key, order)
}

// ItemsTaggedSorted returns the tagged items sorted by the projected key,
// stable on ties like AllItemsSorted.
func ItemsTaggedSorted[K cmp.Ordered](c *Context, tag content.Tag, key func(content.Item) K, order content.Order) []content.Item {
	return content.SortedBy(c.ItemsTagged(tag), key, order)
}

// AllTags returns the union of every section's tags in first-use order. The
// result is memoized; the cache is invalidated by every mutation entry
// point that can change tag membership (SetSections, AddItem,
// MutateAllSections).
func (c *Context) AllTags() []content.Tag {
	if c.tagCacheValid {
		return c.tagCache
	}
	seen := make(map[content.Tag]struct{})
	tags := make([]content.Tag, 0)
	for _, id := range c.sectionOrder {
		for _, t := range c.sections[id].Tags() {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	c.tagCache = tags
	c.tagCacheValid = true
	return tags
}

func (c *Context) invalidateTagCache() {
	c.tagCache = nil
	c.tagCacheValid = false
}

// LastGenerationTime returns the previous run's generation time, when one
// was persisted.
func (c *Context) LastGenerationTime() (time.Time, bool) {
	return c.lastGeneration, c.hasLastGeneration
}

// GenerationWillBegin loads the previous run's generation stamp and writes
// the current time in its place. This is the pipeline's single best-effort
// persistence site: every failure is swallowed so a missing or unreadable
// stamp never aborts a run.
func (c *Context) GenerationWillBegin() {
	store := state.NewStampStore(c.group.Internal.Path())
	if stamp, err := store.Load(); err == nil {
		c.lastGeneration = stamp
		c.hasLastGeneration = true
	} else {
		slog.Debug("No previous generation stamp", logfields.Error(err))
	}
	if err := store.Save(c.now()); err != nil {
		slog.Debug("Failed to persist generation stamp", logfields.Error(err))
	}
}

// PrepareForStep switches the step name that scopes cache files before the
// named step runs.
func (c *Context) PrepareForStep(name string) { c.stepName = name }

// snapshot captures the context's content state for the run's return value.
func (c *Context) snapshot() *PublishedSite {
	return &PublishedSite{
		Index:    c.index,
		Sections: c.Sections(),
		Pages:    c.Pages(),
	}
}

// PublishedSite is the content snapshot a successful run returns: exactly
// the context's state after the last executed step.
type PublishedSite struct {
	Index    content.Index
	Sections []content.Section
	Pages    map[string]content.Page
}
