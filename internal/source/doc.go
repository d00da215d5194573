// Package source reads tracking datasets into rows.
//
// A dataset location is either a filesystem path or an S3 object URL of the
// form s3://bucket/key. The format follows the file extension: ".csv" is
// read as comma-separated text, every other extension as an Excel workbook
// whose first sheet is used.
//
// The first row supplies column names verbatim. Cells that are empty or
// hold one of the conventional not-available markers (see DefaultNAValues)
// are reported as missing (nil). Completely blank rows are dropped.
//
// All failures to open or parse a dataset wrap trackseed.ErrSourceRead.
package source
