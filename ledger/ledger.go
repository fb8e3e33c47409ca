// Package ledger is the append-only log of coin buy/sell transactions.
//
// A Ledger validates records and hands them to a Store. The Store is built and
// closed by the caller, one per command invocation.
package ledger

import (
	"context"
	"database/sql/driver"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Direction says whether a record adds to or removes from a position.
type Direction int

const (
	Buy Direction = iota + 1
	Sell
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) Valid() bool { return d == Buy || d == Sell }

// ParseDirection accepts the persisted form, "buy" or "sell".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Value implements driver.Valuer.
func (d Direction) Value() (driver.Value, error) {
	if !d.Valid() {
		return nil, ErrInvalidDirection
	}
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Direction) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scan direction: unsupported type %T", src)
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TransactionRecord is a single buy or sell. Quantity is always positive;
// the sign lives in Direction.
type TransactionRecord struct {
	ID        int64
	Coin      string
	Quantity  decimal.Decimal
	Direction Direction
	Timestamp time.Time
}

// Store persists records. Append assigns ID and, when zero, Timestamp.
// List returns records ordered by timestamp then ID.
type Store interface {
	Append(ctx context.Context, rec TransactionRecord) (TransactionRecord, error)
	List(ctx context.Context) ([]TransactionRecord, error)
	DistinctCoins(ctx context.Context) ([]string, error)
	Close() error
}

type Ledger struct {
	store Store
	log   logrus.FieldLogger
}

// New returns a Ledger writing to store. The caller keeps ownership of store
// and closes it.
func New(store Store, log logrus.FieldLogger) *Ledger {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Ledger{store: store, log: log}
}

// Record validates and appends a new transaction. Nothing reaches the store
// when validation fails.
func (l *Ledger) Record(ctx context.Context, coin string, quantity decimal.Decimal, dir Direction) (TransactionRecord, error) {
	rec := TransactionRecord{Coin: coin, Quantity: quantity, Direction: dir}
	if err := Validate(rec); err != nil {
		return TransactionRecord{}, err
	}

	saved, err := l.store.Append(ctx, rec)
	if err != nil {
		return TransactionRecord{}, &PersistenceError{Op: "append", Err: err}
	}

	l.log.WithFields(logrus.Fields{
		"id":        saved.ID,
		"coin":      saved.Coin,
		"quantity":  saved.Quantity.String(),
		"direction": saved.Direction.String(),
	}).Debug("recorded transaction")
	return saved, nil
}

// ListAll returns every record, oldest first. An empty ledger yields an
// empty, non-nil slice.
func (l *Ledger) ListAll(ctx context.Context) ([]TransactionRecord, error) {
	recs, err := l.store.List(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	if recs == nil {
		recs = []TransactionRecord{}
	}
	return recs, nil
}

// DistinctCoins returns the sorted set of coins with at least one record.
func (l *Ledger) DistinctCoins(ctx context.Context) ([]string, error) {
	coins, err := l.store.DistinctCoins(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "distinct coins", Err: err}
	}
	if coins == nil {
		coins = []string{}
	}
	return coins, nil
}

// Validate checks the record invariants that do not depend on storage.
func Validate(rec TransactionRecord) error {
	switch {
	case rec.Coin == "":
		return &ValidationError{Field: "coin", Err: ErrEmptyCoin}
	case !rec.Quantity.IsPositive():
		return &ValidationError{Field: "quantity", Err: fmt.Errorf("%w: %s", ErrNonPositiveQuantity, rec.Quantity)}
	case !rec.Direction.Valid():
		return &ValidationError{Field: "direction", Err: ErrInvalidDirection}
	}
	return nil
}
