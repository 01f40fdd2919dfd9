package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/pitwall/server"
)

var serveAddr string

// serveCmd runs the HTTP API until interrupted
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports over HTTP",
	Long: `Serve race summaries, driver lap deltas and a cached passthrough of the
OpenF1 API over HTTP. The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}

	srv := server.New(summarizer, client, presets, logger,
		server.WithAllowedOrigins(cfg.Server.AllowedOrigins))
	return srv.ListenAndServe(cmd.Context(), addr)
}
