package trackseed

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Row is one spreadsheet data row keyed by the verbatim header text.
// A nil value or an absent key marks a missing cell; loaders produce
// strings for every present cell.
type Row map[string]any

// Get returns the cell for column, or nil when the column is absent.
func (r Row) Get(column string) any {
	if r == nil {
		return nil
	}
	return r[column]
}

// Statement is one complete, single-line SQL upsert.
type Statement struct {
	// AWB is the business key the statement was built from, as read from the row.
	AWB string

	// SQL is the full statement text including the trailing semicolon.
	SQL string
}

// NumericPolicy selects what happens when a numeric cell cannot be coerced.
type NumericPolicy string

const (
	// NumericNullOnFailure renders uncoercible numeric cells as NULL.
	NumericNullOnFailure NumericPolicy = "null"

	// NumericStrict fails the run on the first uncoercible numeric cell.
	NumericStrict NumericPolicy = "strict"
)

// ParseNumericPolicy converts a configuration value into a NumericPolicy.
// An empty value selects NumericNullOnFailure.
func ParseNumericPolicy(value string) (NumericPolicy, error) {
	switch NumericPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", NumericNullOnFailure:
		return NumericNullOnFailure, nil
	case NumericStrict:
		return NumericStrict, nil
	}
	return "", fmt.Errorf("unknown numeric policy %q (expected %q or %q): %w",
		value, NumericNullOnFailure, NumericStrict, ErrInvalidConfig)
}

// S3Options configures access to datasets stored as s3://bucket/key objects.
// Empty credentials fall back to the default AWS credential chain.
type S3Options struct {
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

// GenerateConfig contains all parameters needed for one generation run.
type GenerateConfig struct {
	// InputPath is the dataset location: a filesystem path or s3://bucket/key.
	InputPath string

	// OutputPath is the migration file to create or overwrite.
	OutputPath string

	// MetricsFile, when set, receives run counters in Prometheus text format.
	MetricsFile string

	// NumericPolicy controls coercion failures in numeric columns.
	NumericPolicy NumericPolicy

	// RefreshLastLocation keeps "last_location = EXCLUDED.last_location"
	// in the conflict clause.
	RefreshLastLocation bool

	// S3 holds object storage settings used for s3:// inputs.
	S3 S3Options
}

// Validate checks if the GenerateConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *GenerateConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.InputPath) == "" {
		errs = append(errs, fmt.Errorf("InputPath is required: %w", ErrInvalidConfig))
	}

	if strings.TrimSpace(c.OutputPath) == "" {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}

	if _, err := ParseNumericPolicy(string(c.NumericPolicy)); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Result summarizes a completed generation run.
type Result struct {
	OutputPath   string
	LinesWritten int
	RowsRead     int
	RowsSkipped  int
	Checksum     string
	MigrationID  string
}

// Statements returns the number of upsert statements in the migration.
func (r Result) Statements() int {
	if r.LinesWritten == 0 {
		return 0
	}
	return r.LinesWritten - 1
}

// Generator produces a migration file from a tracking dataset.
type Generator interface {
	// Generate reads the dataset, emits one upsert per valid row and writes
	// the migration. Nothing is written when the dataset cannot be read.
	Generate(ctx context.Context, config GenerateConfig) (Result, error)
}
