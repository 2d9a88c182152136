package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newParseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse trader text or an order from the command line",
		Long: `Parse free-form text without running the server. By default the text
runs through the trader-text pipeline; use --order to extract order
fields instead.`,
		Example: `  traderdesk parse "VWAP Market Close 15:30 with auctions"
  traderdesk parse --order "Buy 100 shares of AAPL at $180.50 GTC"
  traderdesk parse --suggest "vwap"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			text := strings.Join(args, " ")
			asOrder, _ := cmd.Flags().GetBool("order")
			asSuggest, _ := cmd.Flags().GetBool("suggest")

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			var result any
			switch {
			case asSuggest:
				result = app.Agent.Suggest(ctx, text)
			case asOrder:
				result = app.Agent.ParseOrder(ctx, text)
			default:
				result = app.Pipeline.Run(ctx, text).Result()
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().Bool("order", false, "extract order fields instead of running the pipeline")
	cmd.Flags().Bool("suggest", false, "return autocomplete suggestions")

	return cmd
}
