package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordQuote(q QuoteRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO quotes
		(id, symbol, source, date, open, high, low, close, last, volume, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.Symbol, q.Source, q.Date, q.Open, q.High,
		q.Low, q.Close, q.Last, q.Volume, q.FetchedAt,
	)
	return err
}

func (j *SQLiteJournal) RecordFailure(f FailureRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO failures
		(id, kind, operation, detail, at)
		VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.Kind, f.Operation, f.Detail, f.At,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
