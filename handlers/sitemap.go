package handlers

import (
	"net/http"

	"github.com/webessex/site/artifacts"
	"github.com/webessex/site/head"
	"github.com/webessex/site/router"
)

// SitemapHandler serves a sitemap computed from the route table. The build
// writes its own from the rendered documents instead.
func (s *Site) SitemapHandler(w http.ResponseWriter, r *http.Request) {
	origin := s.opts.Env.ArtifactOrigin(s.opts.Manifest)
	nav := router.New(s.opts.Manifest.Routes)
	opts := s.headOptions(r)
	if opts.SiteURL == "" {
		opts.SiteURL = origin
	}

	var urls []string
	for _, path := range s.routes {
		loc, ok := nav.Resolve(path)
		if !ok {
			continue
		}
		if link, ok := head.BuildFromRoute(loc, opts).LinkByKey("canonical"); ok {
			urls = append(urls, link.Get("href"))
		}
	}

	data, err := artifacts.MarshalSitemap(artifacts.BuildSitemap(origin, urls, s.opts.Now()))
	if err != nil {
		http.Error(w, "Error generating sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(data)
}
