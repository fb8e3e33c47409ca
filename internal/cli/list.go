package cli

import (
	"fmt"

	"github.com/rustyeddy/coinfolio/portfolio"
	"github.com/rustyeddy/coinfolio/report"
	"github.com/spf13/cobra"
)

func newListCmd(rc *RootConfig) *cobra.Command {
	var (
		summarize bool
		currency  string
	)

	cmd := &cobra.Command{
		Use:   "list-portfolio",
		Short: "List transactions, optionally with valued holdings",
		Long: `List every recorded transaction, oldest first.

With --summarize the net quantity of each coin is valued at the current
CoinGecko price and the portfolio total is shown. Prices are fetched in
one request covering every coin in the ledger.

Example:
  coinfolio list-portfolio --summarize --currency eur`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, closeLedger, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer closeLedger()

			recs, err := l.ListAll(ctx)
			if err != nil {
				return err
			}
			md := report.Transactions(recs)

			if summarize {
				cur := rc.currency(currency)

				coins, err := l.DistinctCoins(ctx)
				if err != nil {
					return err
				}
				client, err := rc.priceClient()
				if err != nil {
					return err
				}
				prices, err := client.FetchPrices(ctx, coins, cur)
				if err != nil {
					return fmt.Errorf("fetch prices: %w", err)
				}

				positions := portfolio.Aggregate(recs)
				valuation, err := portfolio.Value(positions, prices, cur)
				if err != nil {
					return fmt.Errorf("value portfolio: %w", err)
				}

				rc.Log.WithField("coins", len(coins)).
					WithField("total", valuation.Total.String()).
					Debug("valued portfolio")
				md += "\n" + report.Summary(positions, valuation)
			}

			return rc.print(cmd, md)
		},
	}

	cmd.Flags().BoolVar(&summarize, "summarize", false, "value net holdings at current prices")
	cmd.Flags().StringVar(&currency, "currency", "", "quote currency (default from config, usd)")
	return cmd
}
