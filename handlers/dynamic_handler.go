package handlers

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobuffalo/plush"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/webessex/site/blogapi"
	"github.com/webessex/site/config"
	"github.com/webessex/site/head"
	"github.com/webessex/site/javascript"
	"github.com/webessex/site/logfields"
	"github.com/webessex/site/router"
)

const baseLayoutPath = "templates/layouts/base.plush.html"

// BlogSource is the part of the content API the page loaders use.
type BlogSource interface {
	ListPosts(ctx context.Context, opts blogapi.ListOptions) (*blogapi.PaginatedPosts, error)
	GetPost(ctx context.Context, slug string) (*blogapi.PostDetail, error)
}

type Options struct {
	Manifest *config.SiteManifest
	// SiteDir holds templates/, pages/ and static/.
	SiteDir string
	Env     config.Env
	// Blog is optional; without it blog pages render empty.
	Blog BlogSource
	// BlogSlugs expands the blog detail route into concrete paths.
	BlogSlugs []string
	// Scripts maps javascript target names to their public paths.
	Scripts map[string]string
	// AssetDir is the directory bundled scripts were written to.
	AssetDir string
	// UseRequestOrigin lets the head fall back to the request's origin
	// when no site URL is configured.
	UseRequestOrigin bool
	Logger           *slog.Logger
	Now              func() time.Time
}

// Site is the page router plus the list of concrete paths it can render.
type Site struct {
	Router *mux.Router
	opts   Options
	routes []string
}

func SetupRouter(opts Options) (*Site, error) {
	if opts.Manifest == nil {
		return nil, errors.New("manifest is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Scripts == nil {
		opts.Scripts = map[string]string{}
	}

	s := &Site{Router: mux.NewRouter(), opts: opts}
	s.Router.NotFoundHandler = http.HandlerFunc(s.Custom404Handler)

	staticDir := filepath.Join(opts.SiteDir, "static")
	s.Router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	if opts.AssetDir != "" {
		mounted := map[string]bool{}
		for _, target := range opts.Manifest.JavascriptTargets {
			prefix := "/" + strings.Trim(filepath.ToSlash(target.OutDir), "/") + "/"
			if mounted[prefix] {
				continue
			}
			mounted[prefix] = true
			dir := filepath.Join(opts.AssetDir, filepath.FromSlash(target.OutDir))
			s.Router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(dir))))
		}
	}

	for _, route := range opts.Manifest.Routes {
		s.Router.HandleFunc(router.MuxPath(route.Path), s.DynamicHandler(route)).Methods(http.MethodGet, http.MethodHead)

		if !route.IsDynamic() {
			s.routes = append(s.routes, route.Path)
			continue
		}
		for _, slug := range opts.BlogSlugs {
			s.routes = append(s.routes, strings.Replace(route.Path, ":slug", slug, 1))
		}
	}

	s.Router.HandleFunc("/sitemap.xml", s.SitemapHandler).Methods(http.MethodGet)

	return s, nil
}

// Routes returns every concrete path the site renders, in table order.
func (s *Site) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Site) headOptions(r *http.Request) head.Options {
	opts := head.Options{
		SiteURL:            s.opts.Env.SiteURL,
		StudioName:         s.opts.Manifest.Studio.Name,
		DefaultDescription: s.opts.Manifest.Studio.DefaultDescription,
	}
	if s.opts.UseRequestOrigin {
		opts.RuntimeOrigin = requestOrigin(r)
	}
	return opts
}

func requestOrigin(r *http.Request) string {
	if r.Host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + r.Host
}

func (s *Site) newContext(r *http.Request) *plush.Context {
	ctx := plush.NewContext()
	ctx.Set("params", mux.Vars(r))
	ctx.Set("studio", s.opts.Manifest.Studio)
	ctx.Set("currentPath", r.URL.Path)
	ctx.Set("year", s.opts.Now().Year())
	ctx.Set("scripts", []string{})
	return ctx
}

func (s *Site) DynamicHandler(route config.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nav := router.New(s.opts.Manifest.Routes)
		if err := nav.Push(r.URL.Path); err != nil {
			s.Custom404Handler(w, r)
			return
		}

		client := head.NewClient()
		uninstall := head.Install(nav, client, s.headOptions(r))
		defer uninstall()

		ctx := s.newContext(r)
		ctx.Set("scripts", javascript.ScriptsFor(route.JavascriptDeps, s.opts.Scripts))

		switch route.Loader {
		case config.LoaderBlogList:
			s.loadBlogList(r, ctx)
		case config.LoaderBlogDetail:
			status, err := s.loadBlogDetail(r, ctx, nav.CurrentRoute().Params["slug"])
			if status == http.StatusNotFound {
				s.Custom404Handler(w, r)
				return
			}
			if err != nil {
				http.Error(w, "Blog content is unavailable", status)
				return
			}
		}

		var content string
		var err error

		switch route.TemplateType {
		case config.TemplatePlush:
			content, err = renderPlushTemplate(filepath.Join(s.opts.SiteDir, route.Source), ctx)
		case config.TemplateMarkdown:
			var frontmatter map[string]string
			content, frontmatter, err = renderMarkdownTemplate(filepath.Join(s.opts.SiteDir, route.Source))
			ctx.Set("pageTitle", frontmatter["title"])
			ctx.Set("pageDescription", frontmatter["description"])
		default:
			http.Error(w, "Unsupported template type", http.StatusInternalServerError)
			return
		}

		if err != nil {
			s.opts.Logger.Error("Rendering page failed", logfields.Route(route.Path), logfields.Error(err))
			http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
			return
		}

		s.writeLayout(w, http.StatusOK, ctx, client, content)
	}
}

// writeLayout wraps content in the base layout with the client's head.
func (s *Site) writeLayout(w http.ResponseWriter, status int, ctx *plush.Context, client *head.Client, content string) {
	headHTML, err := client.Render()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error rendering head: %v", err), http.StatusInternalServerError)
		return
	}
	ctx.Set("head", headHTML)
	ctx.Set("yield", template.HTML(content))

	pageHTML, err := renderPlushTemplate(filepath.Join(s.opts.SiteDir, baseLayoutPath), ctx)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error executing base layout: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(pageHTML)); err != nil {
		s.opts.Logger.Warn("Writing response failed", logfields.Error(err))
	}
}

func renderPlushTemplate(source string, ctx *plush.Context) (string, error) {
	content, err := os.ReadFile(source)
	if err != nil {
		return "", errors.WithStack(err)
	}

	tmpl, err := plush.Parse(string(content))
	if err != nil {
		return "", errors.Wrapf(err, "parsing %s", source)
	}

	out, err := tmpl.Exec(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "executing %s", source)
	}
	return out, nil
}

// renderMarkdownTemplate renders a "frontmatter\n---\nmarkdown" page.
func renderMarkdownTemplate(source string) (string, map[string]string, error) {
	content, err := os.ReadFile(source)
	if err != nil {
		return "", nil, errors.WithStack(err)
	}

	parts := strings.SplitN(string(content), "\n---\n", 2)
	if len(parts) != 2 {
		return "", nil, errors.Errorf("invalid Markdown file format: %s", source)
	}

	var metadata map[string]string
	if err := yaml.Unmarshal([]byte(parts[0]), &metadata); err != nil {
		return "", nil, errors.Wrap(err, "parsing frontmatter")
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	htmlContent := markdown.ToHTML([]byte(parts[1]), p, nil)
	contentHTML := strings.Replace(`
  <article class="legal">
  [content]
  </article>
  `, "[content]", string(htmlContent), 1)

	return contentHTML, metadata, nil
}
