package linkcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	doc := `<html><head>
<link rel="stylesheet" href="/css/main.css">
<script src="https://cdn.example.com/lib.js"></script>
</head><body>
<a href="/about">About</a>
<a href="https://example.com">External</a>
<a href="#section">Anchor</a>
<img src="images/logo.png">
</body></html>`

	links, err := ExtractLinks(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, links, 5)

	byURL := map[string]Link{}
	for _, l := range links {
		byURL[l.URL] = l
	}
	assert.True(t, byURL["/about"].IsInternal)
	assert.True(t, byURL["/css/main.css"].IsInternal)
	assert.True(t, byURL["images/logo.png"].IsInternal)
	assert.False(t, byURL["https://example.com"].IsInternal)
	assert.False(t, byURL["#section"].IsInternal)
}

func TestVerifyDirFindsBrokenLinks(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("index.html", `<a href="/about/">About</a> <a href="/missing">Gone</a>`)
	write("about/index.html", `<a href="/">Home</a>`)

	broken, err := VerifyDir(root)
	require.NoError(t, err)
	require.Len(t, broken, 1)
	assert.Equal(t, "/missing", broken[0].Target)
	assert.Equal(t, "index.html", broken[0].Source)
}

func TestVerifyDirResolvesPrettyURLs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"),
		[]byte(`<a href="/about">About</a> <a href="contact.html">Contact</a>`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "about"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "about", "index.html"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "contact.html"), []byte("x"), 0o644))

	broken, err := VerifyDir(root)
	require.NoError(t, err)
	assert.Empty(t, broken)
}
