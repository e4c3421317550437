package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/webessex/site/config"
	"github.com/webessex/site/head"
	"github.com/webessex/site/logfields"
	"github.com/webessex/site/router"
)

const defaultNotFoundSource = "templates/404.plush.html"

func (s *Site) Custom404Handler(w http.ResponseWriter, r *http.Request) {
	ctx := s.newContext(r)

	// No path: a missing page has no canonical URL.
	loc := router.Location{
		Meta: config.RouteMeta{
			Title:    s.opts.Manifest.Studio.Name + " | Page Not Found",
			MetaTags: []config.MetaTag{{Name: "robots", Content: "noindex"}},
		},
	}
	client := head.NewClient()
	client.Push(head.BuildFromRoute(loc, s.headOptions(r)))

	source := s.opts.Manifest.NotFoundPageSource
	if source == "" {
		source = defaultNotFoundSource
	}

	notFoundContent, err := renderPlushTemplate(filepath.Join(s.opts.SiteDir, source), ctx)
	if err != nil {
		s.opts.Logger.Error("Rendering 404 page failed", logfields.Error(err))
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	s.writeLayout(w, http.StatusNotFound, ctx, client, notFoundContent)
}
