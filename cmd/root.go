package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/webessex/site/config"
)

var (
	siteDir string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "webessex",
	Short: "WebEssex - Design studio website",
	Long:  `Renders the WebEssex studio site, builds it to static files and generates its sitemap, robots.txt, humans.txt and security.txt.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		return config.LoadDotEnv(files...)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&siteDir, "site-dir", "site", "Directory holding manifest.yaml, templates, pages and static files")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Extra env file loaded before .env and .env.local")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func loadManifest() (*config.SiteManifest, error) {
	return config.LoadManifest(filepath.Join(siteDir, "manifest.yaml"))
}
