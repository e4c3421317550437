package artifacts

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLFileForRoute(t *testing.T) {
	cases := map[string]string{
		"/":           "index.html",
		"/about":      "about.html",
		"/blog/":      "blog.html",
		"/blog/intro": filepath.Join("blog", "intro.html"),
	}
	for route, want := range cases {
		assert.Equal(t, filepath.Join("dist", want), HTMLFileForRoute("dist", route), route)
	}
}

func TestExtractCanonical(t *testing.T) {
	doc := `<html><head>
<link rel="stylesheet" href="/static/css/site.css">
<link href="https://example.com/about" REL="Canonical">
</head><body></body></html>`

	href, err := ExtractCanonical(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/about", href)
}

func TestExtractCanonicalMissing(t *testing.T) {
	_, err := ExtractCanonical(strings.NewReader(`<html><head><link rel="icon" href="/favicon.ico"></head></html>`))
	assert.True(t, errors.Is(err, ErrNoCanonical))
}

func TestReadCanonicalMissingFile(t *testing.T) {
	_, err := ReadCanonical(filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}

func TestUpdateRobotsStripsDirectivesCaseInsensitively(t *testing.T) {
	existing := "User-agent: *\nAllow: /\n\nsitemap: https://old.example/sitemap.xml\nSITEMAP: https://old.example/other.xml\n"
	got := UpdateRobots(existing, []string{"https://example.com/sitemap.xml"})

	assert.Equal(t, "User-agent: *\nAllow: /\n\nSitemap: https://example.com/sitemap.xml\n", got)
}
