package artifacts

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/robotstxt"
)

var buildTime = time.Date(2026, time.March, 1, 12, 30, 0, 0, time.UTC)

func testOptions(outDir string, routes ...string) Options {
	return Options{
		OutDir: outDir,
		Origin: "https://example.com",
		Routes: routes,
		Team: Team{
			Name:          "WebEssex",
			ContactEmail:  "hello@webessex.uk",
			SecurityEmail: "security@webessex.uk",
			Tools:         "Go",
		},
		Now: func() time.Time { return buildTime },
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateSitemapFromDerivedCanonicals(t *testing.T) {
	out := t.TempDir()

	res, err := Generate(context.Background(), testOptions(out, "/about", "/"))
	require.NoError(t, err)

	require.Len(t, res.Sitemap.Urls, 2)
	assert.Equal(t, "https://example.com/", res.Sitemap.Urls[0].Loc)
	assert.Equal(t, PriorityRoot, res.Sitemap.Urls[0].Priority)
	assert.Equal(t, "https://example.com/about", res.Sitemap.Urls[1].Loc)
	assert.Equal(t, PriorityPage, res.Sitemap.Urls[1].Priority)

	var parsed Sitemap
	raw := readFile(t, filepath.Join(out, "sitemap.xml"))
	require.True(t, strings.HasPrefix(raw, xml.Header))
	require.NoError(t, xml.Unmarshal([]byte(raw), &parsed))
	assert.Equal(t, SitemapNamespace, parsed.Xmlns)
	require.Len(t, parsed.Urls, 2)
	assert.Equal(t, "2026-03-01T12:30:00.000Z", parsed.Urls[0].LastMod)
	assert.Equal(t, ChangeFreqWeekly, parsed.Urls[1].ChangeFreq)
	assert.Equal(t, 2, strings.Count(raw, "<url>"))
}

func TestGenerateUsesRenderedCanonicalAndDedupes(t *testing.T) {
	out := t.TempDir()
	page := `<!DOCTYPE html><html><head><link rel="canonical" href="https://example.com/services"></head><body></body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(out, "services.html"), []byte(page), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(out, "offer.html"), []byte(page), 0o644))

	res, err := Generate(context.Background(), testOptions(out, "/services", "/offer", "/services/"))
	require.NoError(t, err)

	require.Len(t, res.Sitemap.Urls, 1)
	assert.Equal(t, "https://example.com/services", res.Sitemap.Urls[0].Loc)
}

func TestGenerateRobotsAppendsAndStaysIdempotent(t *testing.T) {
	out := t.TempDir()
	robotsPath := filepath.Join(out, "robots.txt")
	require.NoError(t, os.WriteFile(robotsPath, []byte("User-agent: *\nDisallow: /admin\n"), 0o644))

	_, err := Generate(context.Background(), testOptions(out, "/"))
	require.NoError(t, err)
	first := readFile(t, robotsPath)
	assert.Equal(t, 1, strings.Count(first, "Sitemap:"))
	assert.Contains(t, first, "Sitemap: https://example.com/sitemap.xml\n")
	assert.Contains(t, first, "Disallow: /admin")

	_, err = Generate(context.Background(), testOptions(out, "/"))
	require.NoError(t, err)
	second := readFile(t, robotsPath)
	assert.Equal(t, first, second)

	robots, err := robotstxt.FromString(second)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/sitemap.xml"}, robots.Sitemaps)
	assert.False(t, robots.TestAgent("/admin", "Googlebot"))
	assert.True(t, robots.TestAgent("/about", "Googlebot"))
}

func TestGenerateRobotsDefaultWithBlogSitemap(t *testing.T) {
	out := t.TempDir()
	opts := testOptions(out, "/")
	opts.BlogSitemap = true

	_, err := Generate(context.Background(), opts)
	require.NoError(t, err)

	got := readFile(t, filepath.Join(out, "robots.txt"))
	assert.Equal(t, "User-agent: *\nAllow: /\n\n"+
		"Sitemap: https://example.com/sitemap.xml\n"+
		"Sitemap: https://example.com/api/blog/sitemap.xml\n", got)
}

func TestGenerateDeclarationFiles(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(out, ".well-known"), 0o755))

	_, err := Generate(context.Background(), testOptions(out, "/"))
	require.NoError(t, err)

	security := readFile(t, filepath.Join(out, ".well-known", "security.txt"))
	assert.Contains(t, security, "Contact: mailto:security@webessex.uk\n")
	assert.Contains(t, security, "Canonical: https://example.com/.well-known/security.txt\n")
	assert.Contains(t, security, "Expires: 2026-08-28\n")

	humans := readFile(t, filepath.Join(out, "humans.txt"))
	assert.Contains(t, humans, "Team: WebEssex\n")
	assert.Contains(t, humans, "Site: https://example.com\n")
	assert.Contains(t, humans, "Last-Updated: 2026-03-01T12:30:00.000Z\n")
}

func TestSecurityTxtExpiresAfter180Days(t *testing.T) {
	for _, now := range []time.Time{
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC),
		time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC),
	} {
		want := now.AddDate(0, 0, 180).Format("2006-01-02")
		assert.Contains(t, SecurityTxt(Team{}, "https://example.com", now), "Expires: "+want+"\n")
	}
}

func TestGenerateFailsWhenOutputIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "dist")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Generate(context.Background(), testOptions(blocker, "/"))
	require.Error(t, err)
}

func TestRenderedRoutesKeepsFirstRenderOrder(t *testing.T) {
	r := NewRenderedRoutes()
	r.Add("/about")
	r.Add("/")
	r.Add("/about")

	assert.Equal(t, []string{"/about", "/"}, r.Paths())
}

func TestUpdateRobotsKeepsCommentsMentioningSitemap(t *testing.T) {
	existing := "User-agent: *\n# see Sitemap: https://old.example.com/sitemap.xml for pages\n" +
		"Disallow: /admin\n  sitemap: https://old.example.com/sitemap.xml\n"

	got := UpdateRobots(existing, []string{"https://example.com/sitemap.xml"})
	assert.Equal(t, "User-agent: *\n# see Sitemap: https://old.example.com/sitemap.xml for pages\n"+
		"Disallow: /admin\n\nSitemap: https://example.com/sitemap.xml\n", got)
	assert.Equal(t, got, UpdateRobots(got, []string{"https://example.com/sitemap.xml"}))

	robots, err := robotstxt.FromString(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/sitemap.xml"}, robots.Sitemaps)
}
