package cli

import (
	"fmt"

	"github.com/rustyeddy/coinfolio/ledger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type tradeKind struct {
	use   string
	alias string
	short string
	verb  string
	dir   ledger.Direction
}

var (
	buyKind  = tradeKind{use: "buy", alias: "buy-coin", short: "Record a purchase", verb: "Bought", dir: ledger.Buy}
	sellKind = tradeKind{use: "sell", alias: "sell-coin", short: "Record a sale", verb: "Sold", dir: ledger.Sell}
)

func newTradeCmd(rc *RootConfig, kind tradeKind) *cobra.Command {
	return &cobra.Command{
		Use:     kind.use + " <coin> <quantity>",
		Aliases: []string{kind.alias},
		Short:   kind.short,
		Long: fmt.Sprintf(`%s of a coin in the ledger. The quantity must be positive.

Example:
  coinfolio %s bitcoin 0.25`, kind.short, kind.use),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coin := args[0]
			qty, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			// reject before the database is even opened
			if err := ledger.Validate(ledger.TransactionRecord{Coin: coin, Quantity: qty, Direction: kind.dir}); err != nil {
				return err
			}

			l, closeLedger, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer closeLedger()

			rec, err := l.Record(cmd.Context(), coin, qty, kind.dir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", kind.verb, rec.Quantity, rec.Coin)
			return nil
		},
	}
}
