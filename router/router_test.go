package router

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webessex/site/config"
)

func testRoutes() []config.Route {
	return []config.Route{
		{Path: "/", Name: "home", Meta: config.RouteMeta{Title: "Home"}},
		{Path: "/blog", Name: "blog", Meta: config.RouteMeta{Title: "Blog"}},
		{Path: "/blog/:slug", Name: "blog-detail", Meta: config.RouteMeta{Title: "Article"}},
	}
}

func TestResolveStaticAndDynamic(t *testing.T) {
	r := New(testRoutes())

	loc, ok := r.Resolve("/")
	require.True(t, ok)
	assert.Equal(t, "home", loc.Name)
	assert.Equal(t, "/", loc.Path)

	loc, ok = r.Resolve("/blog/")
	require.True(t, ok)
	assert.Equal(t, "blog", loc.Name)
	assert.Equal(t, "/blog", loc.Path)

	loc, ok = r.Resolve("/blog/core-web-vitals")
	require.True(t, ok)
	assert.Equal(t, "blog-detail", loc.Name)
	assert.Equal(t, "core-web-vitals", loc.Params["slug"])
	assert.Equal(t, "Article", loc.Meta.Title)

	_, ok = r.Resolve("/blog/a/b")
	assert.False(t, ok)
}

func TestPushRunsHooksInOrder(t *testing.T) {
	r := New(testRoutes())

	var calls []string
	r.AfterEach(func(to, from Location) {
		calls = append(calls, "first:"+from.Name+">"+to.Name)
	})
	r.AfterEach(func(to, from Location) {
		calls = append(calls, "second:"+to.Name)
	})

	require.NoError(t, r.Push("/"))
	require.NoError(t, r.Push("/blog"))

	assert.Equal(t, []string{
		"first:>home", "second:home",
		"first:home>blog", "second:blog",
	}, calls)
	assert.Equal(t, "blog", r.CurrentRoute().Name)
}

func TestPushUnknownPathKeepsCurrent(t *testing.T) {
	r := New(testRoutes())
	require.NoError(t, r.Push("/blog"))

	err := r.Push("/nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRoute))
	assert.Equal(t, "/blog", r.CurrentRoute().Path)
}

func TestAfterEachRemove(t *testing.T) {
	r := New(testRoutes())

	count := 0
	remove := r.AfterEach(func(to, from Location) { count++ })
	require.NoError(t, r.Push("/"))
	remove()
	require.NoError(t, r.Push("/blog"))

	assert.Equal(t, 1, count)
}

func TestResolveMatchesLikeThePageRouter(t *testing.T) {
	r := New([]config.Route{
		{Path: "/blog/:slug", Name: "blog-detail"},
		{Path: "/services/:area/pricing", Name: "pricing"},
		{Path: "/about"},
	})

	loc, ok := r.Resolve("/services/essex/pricing")
	require.True(t, ok)
	assert.Equal(t, "pricing", loc.Name)
	assert.Equal(t, map[string]string{"area": "essex"}, loc.Params)

	loc, ok = r.Resolve("about")
	require.True(t, ok)
	assert.Equal(t, "/about", loc.Path)
	assert.Nil(t, loc.Params)

	_, ok = r.Resolve("/blog/")
	assert.False(t, ok)
}

func TestMuxPath(t *testing.T) {
	assert.Equal(t, "/blog/{slug}", MuxPath("/blog/:slug"))
	assert.Equal(t, "/", MuxPath("/"))
	assert.Equal(t, "/a/{b}/c", MuxPath("/a/:b/c"))
}
