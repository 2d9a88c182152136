package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"traderdesk/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the JSON HTTP API exposing order parsing, trader-text parsing,
autocomplete and the securities catalog.`,
		Example: `  traderdesk serve
  traderdesk serve --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				app.Config.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(
				app.Config.Server,
				app.Logger,
				Version,
				app.Pipeline,
				app.Agent,
				app.Catalog,
				app.Audit,
			)

			app.Logger.Info().
				Bool("openai", app.Pipeline.LLMAvailable()).
				Msg("Starting traderdesk API")

			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides config)")

	return cmd
}
