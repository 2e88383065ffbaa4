package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	quotes   *csv.Writer
	failures *csv.Writer
	qf, ff   *os.File
}

func NewCSV(quotesPath, failuresPath string) (*CSVJournal, error) {
	qf, err := os.Create(quotesPath)
	if err != nil {
		return nil, err
	}
	ff, err := os.Create(failuresPath)
	if err != nil {
		return nil, err
	}

	qw := csv.NewWriter(qf)
	fw := csv.NewWriter(ff)

	if err := qw.Write([]string{"id", "symbol", "source", "date", "open", "high", "low", "close", "last", "volume", "fetched_at"}); err != nil {
		return nil, err
	}
	if err := fw.Write([]string{"id", "kind", "operation", "detail", "at"}); err != nil {
		return nil, err
	}

	qw.Flush()
	if err := qw.Error(); err != nil {
		return nil, err
	}
	fw.Flush()
	if err := fw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{qw, fw, qf, ff}, nil
}

func (j *CSVJournal) RecordQuote(q QuoteRecord) error {
	err := j.quotes.Write([]string{
		q.ID,
		q.Symbol,
		q.Source,
		q.Date.Format(time.RFC3339),
		f(q.Open),
		f(q.High),
		f(q.Low),
		f(q.Close),
		f(q.Last),
		f(q.Volume),
		q.FetchedAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	j.quotes.Flush()
	return j.quotes.Error()
}

func (j *CSVJournal) RecordFailure(rec FailureRecord) error {
	err := j.failures.Write([]string{
		rec.ID,
		rec.Kind,
		rec.Operation,
		rec.Detail,
		rec.At.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	j.failures.Flush()
	return j.failures.Error()
}

func (j *CSVJournal) Close() error {
	j.quotes.Flush()
	if err := j.quotes.Error(); err != nil {
		return err
	}
	j.failures.Flush()
	if err := j.failures.Error(); err != nil {
		return err
	}

	if err := j.qf.Close(); err != nil {
		return err
	}
	if err := j.ff.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
