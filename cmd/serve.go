package cmd

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/webessex/site/blogapi"
	"github.com/webessex/site/config"
	"github.com/webessex/site/handlers"
	"github.com/webessex/site/javascript"
	"github.com/webessex/site/logfields"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the development server",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		logger := slog.Default()

		manifest, err := loadManifest()
		if err != nil {
			return err
		}
		env := config.EnvFromOS()

		assetDir, err := os.MkdirTemp("", "webessex-assets-")
		if err != nil {
			return errors.Wrap(err, "creating asset directory")
		}
		defer os.RemoveAll(assetDir)

		scripts, err := javascript.CompileJSTarget(manifest.JavascriptTargets, siteDir, assetDir)
		if err != nil {
			return err
		}

		site, err := handlers.SetupRouter(handlers.Options{
			Manifest:         manifest,
			SiteDir:          siteDir,
			Env:              env,
			Blog:             blogapi.NewClient(env.ResolveAPIBaseURL(true)),
			Scripts:          scripts,
			AssetDir:         assetDir,
			UseRequestOrigin: true,
			Logger:           logger,
		})
		if err != nil {
			return errors.Wrap(err, "setting up router")
		}

		addr := ":" + port
		logger.Info("Starting server", logfields.Addr(addr))
		return http.ListenAndServe(addr, site.Router)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "9010", "Port to run the server on")
}
