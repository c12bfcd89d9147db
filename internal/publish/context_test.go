package publish

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/state"
)

func TestAddItemRoutesBySectionID(t *testing.T) {
	c := newTestContext(t)

	require.NoError(t, c.AddItem(content.Item{Path: "/articles/a", SectionID: "articles"}))
	require.NoError(t, c.AddItem(content.Item{Path: "/notes/n", SectionID: "notes"}))

	articles, ok := c.Section("articles")
	require.True(t, ok)
	require.Len(t, articles.Items, 1)
	assert.Equal(t, "/articles/a", articles.Items[0].Path)
}

func TestAddItemUnknownSection(t *testing.T) {
	c := newTestContext(t)

	err := c.AddItem(content.Item{Path: "/x", SectionID: "missing"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindSectionNotFound))
}

func TestAllTagsUnionAcrossSections(t *testing.T) {
	c := newTestContext(t)
	require.NoError(t, c.AddItem(content.Item{Path: "/a", SectionID: "articles", Tags: []content.Tag{"a", "b"}}))
	require.NoError(t, c.AddItem(content.Item{Path: "/n", SectionID: "notes", Tags: []content.Tag{"b"}}))

	assert.Equal(t, []content.Tag{"a", "b"}, c.AllTags())
}

// The tag cache is invalidated by every mutation entry point that can
// change tag membership, so tags added through MutateAllSections become
// visible. This deliberately diverges from reassignment-only invalidation.
func TestAllTagsSeesMutationThroughMutateAllSections(t *testing.T) {
	c := newTestContext(t)
	require.NoError(t, c.AddItem(content.Item{Path: "/a", SectionID: "articles", Tags: []content.Tag{"a", "b"}}))

	// Prime the cache.
	assert.Equal(t, []content.Tag{"a", "b"}, c.AllTags())

	require.NoError(t, c.MutateAllSections(func(s *content.Section) error {
		if s.ID == "notes" {
			s.AddItem(content.Item{Path: "/n", Tags: []content.Tag{"c"}})
		}
		return nil
	}))

	assert.Equal(t, []content.Tag{"a", "b", "c"}, c.AllTags())
}

func TestAllTagsSeesSectionReassignment(t *testing.T) {
	c := newTestContext(t)
	require.NoError(t, c.AddItem(content.Item{Path: "/a", SectionID: "articles", Tags: []content.Tag{"a"}}))
	assert.Equal(t, []content.Tag{"a"}, c.AllTags())

	fresh := content.NewSection("articles")
	fresh.AddItem(content.Item{Path: "/b", Tags: []content.Tag{"z"}})
	c.SetSections([]content.Section{fresh})

	assert.Equal(t, []content.Tag{"z"}, c.AllTags())
}

func TestMutateAllSectionsAbortsOnFirstError(t *testing.T) {
	c := newTestContext(t)
	boom := errors.New("boom")

	var visited []content.SectionID
	err := c.MutateAllSections(func(s *content.Section) error {
		visited = append(visited, s.ID)
		return boom
	})

	// The failure propagates unchanged, and later sections are skipped.
	require.ErrorIs(t, err, boom)
	_, isPublishErr := AsError(err)
	assert.False(t, isPublishErr)
	assert.Equal(t, []content.SectionID{"articles"}, visited)
}

func TestMutatePageRekeysOnPathChange(t *testing.T) {
	c := newTestContext(t)
	c.AddPage(content.Page{Path: "/x", Body: content.Body{Title: "X"}})

	err := c.MutatePage("/x", func(content.Page) bool { return true }, func(p *content.Page) error {
		p.Path = "/y"
		return nil
	})
	require.NoError(t, err)

	_, stillThere := c.Page("/x")
	assert.False(t, stillThere)
	moved, ok := c.Page("/y")
	require.True(t, ok)
	assert.Equal(t, "X", moved.Body.Title)
}

func TestMutatePageMissing(t *testing.T) {
	c := newTestContext(t)

	err := c.MutatePage("/missing", nil, func(*content.Page) error { return nil })
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPageNotFound))
	assert.Empty(t, c.Pages())
}

func TestMutatePagePredicateRejectionIsSilent(t *testing.T) {
	c := newTestContext(t)
	c.AddPage(content.Page{Path: "/x", Body: content.Body{Title: "X"}})

	err := c.MutatePage("/x", func(content.Page) bool { return false }, func(p *content.Page) error {
		p.Body.Title = "changed"
		return nil
	})
	require.NoError(t, err)

	p, _ := c.Page("/x")
	assert.Equal(t, "X", p.Body.Title)
}

func TestMutatePageFailureCarriesChangedPath(t *testing.T) {
	c := newTestContext(t)
	c.AddPage(content.Page{Path: "/x"})
	boom := errors.New("boom")

	err := c.MutatePage("/x", nil, func(p *content.Page) error {
		p.Path = "/y"
		return boom
	})
	require.Error(t, err)
	pe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindPageMutation, pe.Kind)
	assert.Equal(t, "/y", pe.Path)
	require.ErrorIs(t, err, boom)

	// The map is untouched on failure.
	_, ok = c.Page("/x")
	assert.True(t, ok)
	_, ok = c.Page("/y")
	assert.False(t, ok)
}

func TestAddPageUpsertsByPath(t *testing.T) {
	c := newTestContext(t)
	c.AddPage(content.Page{Path: "/x", Body: content.Body{Title: "first"}})
	c.AddPage(content.Page{Path: "/x", Body: content.Body{Title: "second"}})

	require.Len(t, c.Pages(), 1)
	p, _ := c.Page("/x")
	assert.Equal(t, "second", p.Body.Title)
}

func TestAllItemsSortedStableAcrossSections(t *testing.T) {
	c := newTestContext(t)
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, c.AddItem(content.Item{Path: "/articles/1", SectionID: "articles", Body: content.Body{Date: day(2)}}))
	require.NoError(t, c.AddItem(content.Item{Path: "/articles/2", SectionID: "articles", Body: content.Body{Date: day(1)}}))
	require.NoError(t, c.AddItem(content.Item{Path: "/notes/1", SectionID: "notes", Body: content.Body{Date: day(2)}}))

	sorted := AllItemsSorted(c, content.ByDate, content.Ascending)
	paths := make([]string, len(sorted))
	for i, it := range sorted {
		paths[i] = it.Path
	}
	// Non-decreasing by date; the tie on day 2 keeps aggregate order
	// (articles before notes).
	assert.Equal(t, []string{"/articles/2", "/articles/1", "/notes/1"}, paths)

	desc := AllItemsSorted(c, content.ByDate, content.Descending)
	assert.Equal(t, "/articles/1", desc[0].Path)
}

func TestItemsTaggedSorted(t *testing.T) {
	c := newTestContext(t)
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, c.AddItem(content.Item{Path: "/a", SectionID: "articles", Tags: []content.Tag{"go"}, Body: content.Body{Date: day(3)}}))
	require.NoError(t, c.AddItem(content.Item{Path: "/b", SectionID: "articles", Body: content.Body{Date: day(1)}}))
	require.NoError(t, c.AddItem(content.Item{Path: "/c", SectionID: "notes", Tags: []content.Tag{"go"}, Body: content.Body{Date: day(2)}}))

	tagged := ItemsTaggedSorted(c, "go", content.ByDate, content.Ascending)
	require.Len(t, tagged, 2)
	assert.Equal(t, "/c", tagged[0].Path)
	assert.Equal(t, "/a", tagged[1].Path)
}

func TestGenerationWillBeginStampLifecycle(t *testing.T) {
	root := t.TempDir()

	first := newTestContextAt(t, root)
	_, had := first.LastGenerationTime()
	assert.False(t, had)
	first.GenerationWillBegin()

	// The stamp now holds the first run's clock value.
	store := state.NewStampStore(first.Folders().Internal.Path())
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), saved.Unix())

	second := newTestContextAt(t, root)
	second.GenerationWillBegin()
	got, had := second.LastGenerationTime()
	require.True(t, had)
	assert.Equal(t, int64(1700000000), got.Unix())
}
