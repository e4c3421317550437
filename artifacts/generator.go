// Package artifacts writes the crawler-facing files derived from a finished
// static build: sitemap.xml, robots.txt, humans.txt and
// .well-known/security.txt.
package artifacts

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/webessex/site/logfields"
)

const readConcurrency = 8

// RenderedRoutes records rendered route paths in first-render order.
// It is safe for concurrent use.
type RenderedRoutes struct {
	mu    sync.Mutex
	seen  map[string]bool
	paths []string
}

func NewRenderedRoutes() *RenderedRoutes {
	return &RenderedRoutes{seen: make(map[string]bool)}
}

// Add records route unless it was recorded before.
func (r *RenderedRoutes) Add(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[route] {
		return
	}
	r.seen[route] = true
	r.paths = append(r.paths, route)
}

// Paths returns a copy of the recorded routes.
func (r *RenderedRoutes) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

type Options struct {
	OutDir string
	// Origin is the site origin; trailing slashes are ignored.
	Origin string
	Routes []string
	Team   Team
	// BlogSitemap adds the content API's sitemap to robots.txt.
	BlogSitemap bool
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// Result reports what Generate wrote.
type Result struct {
	Sitemap Sitemap
	Files   []string
}

// Generate writes every artifact into opts.OutDir. Unreadable documents fall
// back to a canonical derived from the route; any other filesystem error
// aborts the run.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now()
	if opts.Now != nil {
		now = opts.Now()
	}
	origin := strings.TrimRight(opts.Origin, "/")

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", opts.OutDir)
	}

	canonicals, err := resolveCanonicals(ctx, opts.OutDir, origin, opts.Routes, logger)
	if err != nil {
		return nil, err
	}

	sm := BuildSitemap(origin, canonicals, now)
	res := &Result{Sitemap: sm}

	data, err := MarshalSitemap(sm)
	if err != nil {
		return nil, errors.Wrap(err, "encoding sitemap")
	}
	if err := res.write(filepath.Join(opts.OutDir, "sitemap.xml"), data); err != nil {
		return nil, err
	}

	robotsPath := filepath.Join(opts.OutDir, "robots.txt")
	existing, err := readOptional(robotsPath)
	if err != nil {
		return nil, err
	}
	sitemaps := []string{origin + "/sitemap.xml"}
	if opts.BlogSitemap {
		sitemaps = append(sitemaps, origin+"/api/blog/sitemap.xml")
	}
	if err := res.write(robotsPath, []byte(UpdateRobots(existing, sitemaps))); err != nil {
		return nil, err
	}

	if err := res.write(filepath.Join(opts.OutDir, "humans.txt"), []byte(HumansTxt(opts.Team, origin, now))); err != nil {
		return nil, err
	}

	wellKnown := filepath.Join(opts.OutDir, ".well-known")
	if err := os.MkdirAll(wellKnown, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", wellKnown)
	}
	if err := res.write(filepath.Join(wellKnown, "security.txt"), []byte(SecurityTxt(opts.Team, origin, now))); err != nil {
		return nil, err
	}

	logger.Info("Generated static artifacts",
		logfields.Count(len(sm.Urls)),
		logfields.Path(opts.OutDir))
	return res, nil
}

func (r *Result) write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	r.Files = append(r.Files, path)
	return nil
}

// resolveCanonicals reads every rendered document concurrently. Each worker
// owns one slot of the result slice, so merging happens in route order
// after all reads finish.
func resolveCanonicals(ctx context.Context, outDir, origin string, routes []string, logger *slog.Logger) ([]string, error) {
	canonicals := make([]string, len(routes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for i, route := range routes {
		i, route := i, route
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file := HTMLFileForRoute(outDir, route)
			canonical, err := ReadCanonical(file)
			if err != nil {
				logger.Debug("Deriving canonical from route",
					logfields.Route(route),
					logfields.File(file),
					logfields.Error(err))
				canonical = origin + ensureLeadingSlash(route)
			}
			canonicals[i] = canonical
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "resolving canonical URLs")
	}

	return canonicals, nil
}

func ensureLeadingSlash(value string) string {
	if strings.HasPrefix(value, "/") {
		return value
	}
	return "/" + value
}
