package ledger

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{"id", "coin", "quantity", "direction", "timestamp"}

// WriteCSV writes records, header first, in the order given.
func WriteCSV(w io.Writer, recs []TransactionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range recs {
		if err := cw.Write([]string{
			strconv.FormatInt(r.ID, 10),
			r.Coin,
			r.Quantity.String(),
			r.Direction.String(),
			r.Timestamp.UTC().Format(time.RFC3339Nano),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
