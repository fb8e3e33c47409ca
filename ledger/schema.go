package ledger

const Schema = `
CREATE TABLE IF NOT EXISTS investments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	coin TEXT NOT NULL CHECK (coin <> ''),
	quantity TEXT NOT NULL,
	direction TEXT NOT NULL CHECK (direction IN ('buy', 'sell')),
	timestamp DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_investments_time ON investments(timestamp, id);
`
