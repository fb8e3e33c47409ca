package cli

import (
	"fmt"

	"github.com/rustyeddy/coinfolio/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newLookupCmd(rc *RootConfig) *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "lookup-coin <coin>",
		Short: "Show the current price of a coin",
		Long: `Fetch the current price of one coin from CoinGecko.

The coin is a CoinGecko id such as bitcoin or ethereum.

Example:
  coinfolio lookup-coin bitcoin --currency eur`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coin := args[0]
			cur := rc.currency(currency)

			client, err := rc.priceClient()
			if err != nil {
				return err
			}
			price, err := client.Price(cmd.Context(), coin, cur)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", coin, err)
			}

			rc.Log.WithFields(logrus.Fields{"coin": coin, "currency": cur}).Debug("looked up price")
			return rc.print(cmd, report.Lookup(coin, cur, price))
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "quote currency (default from config, usd)")
	return cmd
}
