package cmd

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/webessex/site/config"
	"github.com/webessex/site/handlers"
	"github.com/webessex/site/logfields"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve the output of a previous build",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = config.EnvFromOS().OutDir
		}

		addr := ":" + port
		slog.Info("Previewing static build", logfields.Path(outDir), logfields.Addr(addr))
		return http.ListenAndServe(addr, handlers.PreviewHandler(outDir))
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringP("port", "p", "4173", "Port to run the preview server on")
	previewCmd.Flags().StringP("out", "o", "", "Build directory to serve (defaults to "+config.EnvOutDir+")")
}
