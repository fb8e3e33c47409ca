package ledger

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	recs := []TransactionRecord{
		{ID: 1, Coin: "bitcoin", Quantity: decimal.RequireFromString("1.0"), Direction: Buy, Timestamp: ts},
		{ID: 2, Coin: "bit,coin", Quantity: decimal.RequireFromString("0.4"), Direction: Sell, Timestamp: ts.Add(time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, recs))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "coin", "quantity", "direction", "timestamp"}, rows[0])
	assert.Equal(t, []string{"1", "bitcoin", "1", "buy", "2024-05-06T07:08:09Z"}, rows[1])
	assert.Equal(t, []string{"2", "bit,coin", "0.4", "sell", "2024-05-06T08:08:09Z"}, rows[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "id,coin,quantity,direction,timestamp\n", buf.String())
}
