package head

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webessex/site/config"
	"github.com/webessex/site/router"
)

func TestInstallKeepsOneRegistration(t *testing.T) {
	nav := router.New([]config.Route{
		{Path: "/", Name: "home", Meta: config.RouteMeta{Title: "Home"}},
		{Path: "/about", Name: "about", Meta: config.RouteMeta{Title: "About"}},
	})
	require.NoError(t, nav.Push("/"))

	client := NewClient()
	uninstall := Install(nav, client, exampleOpts)

	assert.Equal(t, 1, client.Len())
	assert.Equal(t, "Home", client.Resolve().Title)

	require.NoError(t, nav.Push("/about"))
	assert.Equal(t, 1, client.Len())
	resolved := client.Resolve()
	assert.Equal(t, "About", resolved.Title)
	link, ok := resolved.LinkByKey("canonical")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/about", link.Get("href"))

	require.NoError(t, nav.Push("/"))
	assert.Equal(t, 1, client.Len())
	assert.Equal(t, 1, countKey(client.Resolve().Link, "canonical"))

	uninstall()
	assert.Equal(t, 0, client.Len())
	require.NoError(t, nav.Push("/about"))
	assert.Equal(t, 0, client.Len())
}

func TestClientResolveLaterRegistrationWins(t *testing.T) {
	client := NewClient()
	base := client.Push(Payload{
		Title: "Base",
		Meta: []Entry{
			{Key: "description", Attrs: []Attr{{"name", "description"}, {"content", "base"}}},
			{Key: "robots", Attrs: []Attr{{"name", "robots"}, {"content", "index"}}},
		},
	})
	page := client.Push(Payload{
		Title: "Page",
		Meta: []Entry{
			{Key: "description", Attrs: []Attr{{"name", "description"}, {"content", "page"}}},
		},
	})

	resolved := client.Resolve()
	assert.Equal(t, "Page", resolved.Title)
	require.Len(t, resolved.Meta, 2)
	assert.Equal(t, "page", resolved.Meta[0].Get("content"))

	page.Dispose()
	page.Dispose()
	assert.Equal(t, 1, client.Len())
	assert.Equal(t, "Base", client.Resolve().Title)

	base.Dispose()
	assert.Equal(t, Payload{}, client.Resolve())
}

func TestClientRenderEscapes(t *testing.T) {
	client := NewClient()
	client.Push(BuildFromRoute(router.Location{Path: "/", Meta: config.RouteMeta{
		Title:    "Design & Build",
		MetaTags: []config.MetaTag{{Name: "description", Content: `Fast "secure" sites`}},
	}}, exampleOpts))

	out, err := client.Render()
	require.NoError(t, err)
	rendered := string(out)

	assert.True(t, strings.HasPrefix(rendered, "<title>Design &amp; Build</title>\n"))
	assert.Contains(t, rendered, `<meta name="description" content="Fast &#34;secure&#34; sites"/>`)
	assert.Contains(t, rendered, `<link rel="canonical" href="https://example.com/"/>`)
	assert.Contains(t, rendered, `<meta property="og:site_name" content="WebEssex"/>`)
}
