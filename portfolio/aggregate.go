// Package portfolio turns a transaction history into net positions and values
// them against a price snapshot. Both steps are pure functions.
package portfolio

import (
	"sort"

	"github.com/rustyeddy/coinfolio/ledger"
	"github.com/shopspring/decimal"
)

// Positions maps a coin to its signed net quantity.
type Positions map[string]decimal.Decimal

// Aggregate sums buys minus sells per coin over the whole history. Closed
// positions stay in the result with a zero quantity.
func Aggregate(records []ledger.TransactionRecord) Positions {
	pos := Positions{}
	for _, r := range records {
		switch r.Direction {
		case ledger.Buy:
			pos[r.Coin] = pos[r.Coin].Add(r.Quantity)
		case ledger.Sell:
			pos[r.Coin] = pos[r.Coin].Sub(r.Quantity)
		}
	}
	return pos
}

// Add returns the pointwise sum of p and q.
func (p Positions) Add(q Positions) Positions {
	out := make(Positions, len(p)+len(q))
	for coin, qty := range p {
		out[coin] = qty
	}
	for coin, qty := range q {
		out[coin] = out[coin].Add(qty)
	}
	return out
}

// Equal compares quantities numerically, so 1.0 equals 1.
func (p Positions) Equal(q Positions) bool {
	if len(p) != len(q) {
		return false
	}
	for coin, qty := range p {
		other, ok := q[coin]
		if !ok || !qty.Equal(other) {
			return false
		}
	}
	return true
}

// Coins returns the coins in p in ascending order.
func (p Positions) Coins() []string {
	coins := make([]string, 0, len(p))
	for coin := range p {
		coins = append(coins, coin)
	}
	sort.Strings(coins)
	return coins
}
