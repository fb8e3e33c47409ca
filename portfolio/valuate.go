package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Valuation is the value of each position and their sum, all in Currency.
type Valuation struct {
	Currency string
	PerCoin  map[string]decimal.Decimal
	Total    decimal.Decimal
}

// MissingPriceError means the price snapshot does not cover a held coin.
type MissingPriceError struct {
	Coin string
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("no price for coin %q", e.Coin)
}

// Value multiplies every position by its price. currency is a label only; the
// prices must already be quoted in it.
func Value(positions Positions, prices map[string]decimal.Decimal, currency string) (Valuation, error) {
	v := Valuation{
		Currency: currency,
		PerCoin:  make(map[string]decimal.Decimal, len(positions)),
		Total:    decimal.Zero,
	}

	// sorted so the reported missing coin is deterministic
	for _, coin := range positions.Coins() {
		price, ok := prices[coin]
		if !ok {
			return Valuation{}, &MissingPriceError{Coin: coin}
		}
		value := positions[coin].Mul(price)
		v.PerCoin[coin] = value
		v.Total = v.Total.Add(value)
	}
	return v, nil
}
