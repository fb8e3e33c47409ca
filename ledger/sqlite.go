package ledger

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the ledger in a single SQLite table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens (creating if needed) the database at path and ensures the
// schema exists.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, rec TransactionRecord) (TransactionRecord, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}
	rec.Timestamp = rec.Timestamp.UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO investments (coin, quantity, direction, timestamp)
		VALUES (?, ?, ?, ?)`,
		rec.Coin, rec.Quantity, rec.Direction, rec.Timestamp,
	)
	if err != nil {
		return TransactionRecord{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return TransactionRecord{}, err
	}
	rec.ID = id
	return rec, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]TransactionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, coin, quantity, direction, timestamp
		FROM investments
		ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TransactionRecord{}
	for rows.Next() {
		var rec TransactionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Coin,
			&rec.Quantity,
			&rec.Direction,
			&rec.Timestamp,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) DistinctCoins(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT coin FROM investments ORDER BY coin ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coins := []string{}
	for rows.Next() {
		var coin string
		if err := rows.Scan(&coin); err != nil {
			return nil, err
		}
		coins = append(coins, coin)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return coins, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
