package publish

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/folders"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

func testSiteConfig() *site.Config {
	return &site.Config{
		Name:     "Test Site",
		Sections: []string{"articles", "notes"},
	}
}

// newTestContext builds a context over a fresh temp folder group.
func newTestContext(t *testing.T) *Context {
	t.Helper()
	return newTestContextAt(t, t.TempDir())
}

func newTestContextAt(t *testing.T, root string) *Context {
	t.Helper()
	group, err := folders.Resolve(folders.Options{RootPath: root})
	require.NoError(t, err)
	return newContext(testSiteConfig(), group, func() time.Time {
		return time.Unix(1700000000, 0)
	})
}
