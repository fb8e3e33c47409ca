// Package report renders ledger listings and valuations as markdown, and
// markdown for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/rustyeddy/coinfolio/ledger"
	"github.com/rustyeddy/coinfolio/portfolio"
	"github.com/shopspring/decimal"
)

// TimestampLayout matches the listing format of earlier portfolio.db tools.
const TimestampLayout = "January 02, 2006 15:04:05 PM"

// cryptoFraction is used for quote currencies go-money does not know, such
// as btc or eth.
const cryptoFraction = 8

// FormatAmount renders an amount in the given quote currency, rounded to the
// currency's minor unit.
func FormatAmount(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(fraction(currency)), currency)
}

func fraction(currency string) int32 {
	if c := money.GetCurrency(strings.ToUpper(currency)); c != nil {
		return int32(c.Fraction)
	}
	return cryptoFraction
}

// Transactions renders the "Investments" table, one row per record.
func Transactions(recs []ledger.TransactionRecord) string {
	var b strings.Builder
	b.WriteString("# Investments\n\n")
	if len(recs) == 0 {
		b.WriteString("_No transactions recorded._\n")
		return b.String()
	}

	b.WriteString("| Coin | Quantity | Buy | Timestamp |\n")
	b.WriteString("|:-----|---------:|:---:|:----------|\n")
	for _, r := range recs {
		buy := "No"
		if r.Direction == ledger.Buy {
			buy = "Yes"
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			cell(r.Coin), r.Quantity.String(), buy, r.Timestamp.UTC().Format(TimestampLayout)))
	}
	return b.String()
}

// Summary renders the "Portfolio Summary" table and the grand total.
func Summary(pos portfolio.Positions, v portfolio.Valuation) string {
	var b strings.Builder
	b.WriteString("# Portfolio Summary\n\n")
	b.WriteString("| Coin | Total Quantity | Total Value |\n")
	b.WriteString("|:-----|---------------:|------------:|\n")
	for _, coin := range pos.Coins() {
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			cell(coin), pos[coin].String(), FormatAmount(v.PerCoin[coin], v.Currency)))
	}
	b.WriteString("\n# Portfolio Value\n\n")
	b.WriteString(fmt.Sprintf("**%s**\n", FormatAmount(v.Total, v.Currency)))
	return b.String()
}

// Lookup renders a single spot price.
func Lookup(coin, currency string, price decimal.Decimal) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# The current value of %s\n\n", coin))
	b.WriteString(fmt.Sprintf("**%s %s**\n", price.String(), currency))
	return b.String()
}

// cell escapes the one character that breaks a markdown table row.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
