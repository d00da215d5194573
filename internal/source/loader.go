package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

// DefaultNAValues are cell texts treated as missing, matching the markers
// spreadsheet tooling conventionally reads as not-available.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// S3ClientFactory creates the client used for s3:// locations.
type S3ClientFactory func(ctx context.Context, opts trackseed.S3Options) (ObjectGetter, error)

// Loader reads datasets from local files or S3.
// Thread-Safety: safe for concurrent Load calls.
type Loader struct {
	logger    trackseed.Logger
	s3Opts    trackseed.S3Options
	s3Factory S3ClientFactory
	naValues  map[string]struct{}

	s3Once   sync.Once
	s3Client ObjectGetter
	s3Err    error
}

// Option configures a Loader.
type Option func(*Loader)

// WithS3Options sets region, endpoint and addressing style for S3 locations.
func WithS3Options(opts trackseed.S3Options) Option {
	return func(l *Loader) { l.s3Opts = opts }
}

// WithS3Client makes the loader use client for every S3 location.
func WithS3Client(client ObjectGetter) Option {
	return func(l *Loader) {
		l.s3Factory = func(context.Context, trackseed.S3Options) (ObjectGetter, error) {
			return client, nil
		}
	}
}

// WithNAValues replaces the set of cell texts treated as missing.
// The empty string is always treated as missing.
func WithNAValues(values []string) Option {
	return func(l *Loader) {
		l.naValues = toSet(values)
	}
}

// NewLoader creates a Loader. logger must not be nil.
func NewLoader(logger trackseed.Logger, opts ...Option) *Loader {
	if logger == nil {
		panic("logger cannot be nil")
	}
	l := &Loader{
		logger: logger,
		s3Factory: func(ctx context.Context, o trackseed.S3Options) (ObjectGetter, error) {
			return NewS3Client(ctx, o)
		},
		naValues: toSet(DefaultNAValues),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every data row of the dataset at rawLocation in file order.
func (l *Loader) Load(ctx context.Context, rawLocation string) ([]trackseed.Row, error) {
	loc, err := ParseLocation(rawLocation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", trackseed.ErrSourceRead, err)
	}

	data, err := l.read(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", trackseed.ErrSourceRead, err)
	}

	var records [][]string
	if loc.Ext() == ".csv" {
		records, err = readCSV(bytes.NewReader(data))
	} else {
		var sheet string
		sheet, records, err = readWorkbook(bytes.NewReader(data))
		if err == nil {
			l.logger.Verbose("Using sheet %q of %s", sheet, loc)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", trackseed.ErrSourceRead, loc, err)
	}

	rows := l.toRows(records)
	l.logger.Verbose("Loaded %d data rows from %s", len(rows), loc)
	return rows, nil
}

func (l *Loader) read(ctx context.Context, loc Location) ([]byte, error) {
	if !loc.IsS3() {
		f, err := os.Open(loc.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	l.s3Once.Do(func() {
		l.s3Client, l.s3Err = l.s3Factory(ctx, l.s3Opts)
	})
	if l.s3Err != nil {
		return nil, l.s3Err
	}
	l.logger.Verbose("Fetching s3://%s/%s", loc.Bucket, loc.Key)
	return fetchObject(ctx, l.s3Client, loc)
}

// toRows maps records onto the header row, which is the first record with
// any content. Cells past the end of a short record are absent from the row.
func (l *Loader) toRows(records [][]string) []trackseed.Row {
	for len(records) > 0 && isEmptyRecord(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil
	}
	headers := columnNames(records[0])

	rows := make([]trackseed.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(trackseed.Row, len(headers))
		blank := true
		for i, header := range headers {
			if i >= len(record) {
				break
			}
			if _, missing := l.naValues[record[i]]; missing || record[i] == "" {
				row[header] = nil
				continue
			}
			row[header] = record[i]
			blank = false
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}

var _ trackseed.RowLoader = (*Loader)(nil)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
