package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/webessex/site/artifacts"
	"github.com/webessex/site/blogapi"
	"github.com/webessex/site/config"
	"github.com/webessex/site/handlers"
	"github.com/webessex/site/javascript"
	"github.com/webessex/site/logfields"
)

const (
	buildTools        = "Go, gorilla/mux, plush, esbuild"
	blogSlugsPageSize = 50
	notFoundProbePath = "/__webessex_not_found__"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a static version of the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		logger := slog.Default()

		manifest, err := loadManifest()
		if err != nil {
			return err
		}

		env := config.EnvFromOS()
		if out, _ := cmd.Flags().GetString("out"); out != "" {
			env.OutDir = out
		}
		if apiBase, _ := cmd.Flags().GetString("api-base-url"); apiBase != "" {
			env.APIBaseURL = apiBase
		}
		outDir := env.OutDir
		logger.Info("Building static site", logfields.Path(outDir))

		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		if err := copyStatic(filepath.Join(siteDir, "static"), filepath.Join(outDir, "static")); err != nil {
			return errors.Wrap(err, "copying static files")
		}

		scripts, err := javascript.CompileJSTarget(manifest.JavascriptTargets, siteDir, outDir)
		if err != nil {
			return err
		}

		opts := handlers.Options{
			Manifest: manifest,
			SiteDir:  siteDir,
			Env:      env,
			Scripts:  scripts,
			AssetDir: outDir,
			Logger:   logger,
		}

		if apiBase := env.ResolveAPIBaseURL(false); apiBase != "" {
			blog := blogapi.NewClient(apiBase)
			opts.Blog = blog

			if withPosts, _ := cmd.Flags().GetBool("blog-posts"); withPosts {
				posts, err := blog.AllPosts(cmd.Context(), blogSlugsPageSize)
				if err != nil {
					logger.Warn("Listing blog posts failed; skipping post pages", logfields.Error(err))
				}
				for _, p := range posts {
					opts.BlogSlugs = append(opts.BlogSlugs, p.Slug)
				}
			}
		}

		site, err := handlers.SetupRouter(opts)
		if err != nil {
			return errors.Wrap(err, "setting up router")
		}

		// Generate static pages
		server := httptest.NewServer(site.Router)
		defer server.Close()

		rendered, err := renderRoutes(server, outDir, site.Routes(), manifest.StaticRoutes(), logger)
		if err != nil {
			return err
		}

		if err := generateNotFoundPage(server, outDir); err != nil {
			logger.Error("Generating 404 page failed", logfields.Error(err))
		}

		blogSitemap, _ := cmd.Flags().GetBool("blog-sitemap")
		_, err = artifacts.Generate(cmd.Context(), artifacts.Options{
			OutDir: outDir,
			Origin: env.ArtifactOrigin(manifest),
			Routes: rendered.Paths(),
			Team: artifacts.Team{
				Name:          manifest.Studio.Name,
				ContactEmail:  manifest.Studio.ContactEmail,
				SecurityEmail: manifest.Studio.SecurityEmail,
				Twitter:       manifest.Studio.Twitter,
				Tools:         buildTools,
			},
			BlogSitemap: blogSitemap,
			Logger:      logger,
		})
		if err != nil {
			return errors.Wrap(err, "generating artifacts")
		}

		logger.Info("Static site generated",
			logfields.Path(outDir),
			logfields.Count(len(rendered.Paths())),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
		return nil
	},
}

// renderRoutes writes every route to outDir. A failing manifest route aborts
// the build once all routes were attempted; failing blog post pages are
// logged and left out.
func renderRoutes(server *httptest.Server, outDir string, routes, required []string, logger *slog.Logger) (*artifacts.RenderedRoutes, error) {
	isRequired := make(map[string]bool, len(required))
	for _, route := range required {
		isRequired[route] = true
	}

	rendered := artifacts.NewRenderedRoutes()
	var failed []string
	for _, route := range routes {
		if err := generateStaticPage(server, outDir, route); err != nil {
			logger.Error("Generating static page failed", logfields.Route(route), logfields.Error(err))
			if isRequired[route] {
				failed = append(failed, route)
			}
			continue
		}
		rendered.Add(route)
	}

	if len(failed) > 0 {
		return nil, errors.Errorf("rendering static routes failed: %s", strings.Join(failed, ", "))
	}
	return rendered, nil
}

func generateStaticPage(server *httptest.Server, outDir, route string) error {
	body, status, err := fetch(server.URL + route)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return errors.Errorf("unexpected status %d", status)
	}

	filePath := artifacts.HTMLFileForRoute(outDir, route)
	if err := writePage(filePath, handlers.InjectPreloadLinks(body)); err != nil {
		return err
	}

	slog.Debug("Generated page", logfields.Route(route), logfields.File(filePath))
	return nil
}

func generateNotFoundPage(server *httptest.Server, outDir string) error {
	body, status, err := fetch(server.URL + notFoundProbePath)
	if err != nil {
		return err
	}
	if status != http.StatusNotFound {
		return errors.Errorf("unexpected status %d", status)
	}
	return writePage(filepath.Join(outDir, "404.html"), handlers.InjectPreloadLinks(body))
}

func fetch(url string) (string, int, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", 0, errors.WithStack(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, errors.WithStack(err)
	}
	return string(body), resp.StatusCode, nil
}

func writePage(filePath, body string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(filePath, []byte(body), 0644))
}

func copyStatic(srcDir, dstDir string) error {
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		return nil
	}

	return filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dstDir, rel)
		if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
			return err
		}
		slog.Debug("Copying static file", logfields.File(path), logfields.Path(destPath))
		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, input, 0644)
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("out", "o", "", fmt.Sprintf("Output directory (overrides %s, default %q)", config.EnvOutDir, config.DefaultOutDir))
	buildCmd.Flags().String("api-base-url", "", fmt.Sprintf("Content API base URL (overrides %s)", config.EnvAPIBaseURL))
	buildCmd.Flags().Bool("blog-posts", false, "Render a page for every published blog post")
	buildCmd.Flags().Bool("blog-sitemap", true, "Reference the content API's blog sitemap from robots.txt")
}
