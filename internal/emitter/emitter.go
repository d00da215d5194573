// Package emitter builds the per-row upsert statements of a tracking migration.
package emitter

import (
	"fmt"
	"math"
	"strings"

	"github.com/adyam-logistics/trackseed/internal/sanitize"
	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
)

type field struct {
	header string
	column string
	kind   fieldKind
}

// fields lists the inserted columns in statement order. The business key comes first.
var fields = []field{
	{trackseed.ColumnAWB, "awb_no", kindText},
	{trackseed.ColumnService, "service_provider", kindText},
	{trackseed.ColumnSender, "sender", kindText},
	{trackseed.ColumnReceiver, "receiver", kindText},
	{trackseed.ColumnShipment, "shipment_by", kindText},
	{trackseed.ColumnDestination, "destination", kindText},
	{trackseed.ColumnWeight, "weight_kg", kindNumber},
	{trackseed.ColumnContents, "contents", kindText},
	{trackseed.ColumnStatus, "status", kindText},
	{trackseed.ColumnRemarks, "remarks", kindText},
}

// Options controls statement generation.
type Options struct {
	NumericPolicy trackseed.NumericPolicy

	// RefreshLastLocation appends "last_location = EXCLUDED.last_location"
	// to the conflict update list. last_location is never inserted, so on
	// conflict it is reset to the column default.
	RefreshLastLocation bool
}

// DefaultOptions reproduces the historical migration text byte for byte.
func DefaultOptions() Options {
	return Options{
		NumericPolicy:       trackseed.NumericNullOnFailure,
		RefreshLastLocation: true,
	}
}

// Emitter turns rows into upsert statements.
// It holds no per-row state and is safe for concurrent use.
type Emitter struct {
	opts   Options
	prefix string
	suffix string
}

// New creates an Emitter with the given options.
func New(opts Options) *Emitter {
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.column
	}

	updates := []string{"status = EXCLUDED.status"}
	if opts.RefreshLastLocation {
		updates = append(updates, "last_location = EXCLUDED.last_location")
	}

	return &Emitter{
		opts:   opts,
		prefix: fmt.Sprintf("INSERT INTO %s (%s) VALUES (", trackseed.TableName, strings.Join(columns, ", ")),
		suffix: fmt.Sprintf(") ON CONFLICT (awb_no) DO UPDATE SET %s;", strings.Join(updates, ", ")),
	}
}

// Emit builds the statement for row. ok is false when the row has no
// business key and must be skipped. An error is only possible under
// trackseed.NumericStrict.
func (e *Emitter) Emit(row trackseed.Row) (stmt trackseed.Statement, ok bool, err error) {
	key, ok := businessKey(row)
	if !ok {
		return trackseed.Statement{}, false, nil
	}

	values := make([]string, len(fields))
	for i, f := range fields {
		raw := row.Get(f.header)
		switch f.kind {
		case kindNumber:
			v, numErr := sanitize.Num(raw, e.opts.NumericPolicy)
			if numErr != nil {
				return trackseed.Statement{}, false, fmt.Errorf("row %s column %s: %w", key, f.header, numErr)
			}
			values[i] = v
		default:
			values[i] = sanitize.Text(raw)
		}
	}

	return trackseed.Statement{
		AWB: key,
		SQL: e.prefix + strings.Join(values, ", ") + e.suffix,
	}, true, nil
}

// businessKey returns the trimmed tracking number, or false when the cell
// is missing or blank.
func businessKey(row trackseed.Row) (string, bool) {
	raw := row.Get(trackseed.ColumnAWB)
	if raw == nil {
		return "", false
	}
	if f, isFloat := raw.(float64); isFloat {
		if math.IsNaN(f) {
			return "", false
		}
		return sanitize.FormatFloat(f), true
	}
	key := strings.TrimSpace(fmt.Sprint(raw))
	if key == "" {
		return "", false
	}
	return key, true
}
