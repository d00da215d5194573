// Package sanitize turns raw spreadsheet cells into SQL literal text.
//
// Every function returns a string that can be embedded directly into a
// statement: the bare token NULL, a single-quoted literal with embedded
// quotes doubled, or a decimal number.
//
// Decimal numbers use the shortest representation that round-trips to the
// same float64, always carrying a fractional part or an exponent:
//
//	Num("42")    // "42.0"
//	Num(2.5)     // "2.5"
//	Num("1e16")  // "1e+16"
//
// Text is total over every input type. Num never fails under
// trackseed.NumericNullOnFailure; under trackseed.NumericStrict it reports
// a *CoercionError instead of returning NULL.
package sanitize
