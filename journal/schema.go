package journal

const Schema = `
CREATE TABLE IF NOT EXISTS quotes (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	source TEXT NOT NULL,
	date DATETIME NOT NULL,
	open REAL,
	high REAL,
	low REAL,
	close REAL,
	last REAL,
	volume REAL,
	fetched_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS failures (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	operation TEXT NOT NULL,
	detail TEXT,
	at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quotes_symbol ON quotes(symbol, date);
CREATE INDEX IF NOT EXISTS idx_failures_at ON failures(at);
`
