package sanitize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

// Null is the unquoted SQL null token.
const Null = "NULL"

// CoercionError reports a numeric cell that could not be read as a number.
type CoercionError struct {
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %q to a number: %v", e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

var (
	errNotFinite   = errors.New("value is not finite")
	errHexNotation = errors.New("hexadecimal notation not accepted")
)

// Text renders value as a quoted SQL string literal.
// Missing, blank and "nan" values (any case) render as NULL.
func Text(value any) string {
	if isMissing(value) {
		return Null
	}
	s := strings.TrimSpace(display(value))
	if s == "" || strings.EqualFold(s, "nan") {
		return Null
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Num renders value as a SQL numeric literal.
// Missing values render as NULL. Values that are not finite numbers render
// as NULL unless policy is trackseed.NumericStrict, in which case a
// *CoercionError is returned.
func Num(value any, policy trackseed.NumericPolicy) (string, error) {
	if isMissing(value) {
		return Null, nil
	}
	f, err := toFloat(value)
	if err == nil && (math.IsInf(f, 0) || math.IsNaN(f)) {
		err = errNotFinite
	}
	if err != nil {
		if policy == trackseed.NumericStrict {
			return "", &CoercionError{Value: display(value), Err: err}
		}
		return Null, nil
	}
	return FormatFloat(f), nil
}

// FormatFloat returns the shortest decimal form of f that parses back to f.
// Integral values keep a ".0" suffix and magnitudes outside [1e-4, 1e16)
// switch to exponent notation.
func FormatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func isMissing(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	}
	return false
}

func display(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return FormatFloat(v)
	case float32:
		return FormatFloat(float64(v))
	case bool:
		if v {
			return "True"
		}
		return "False"
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return parseDecimal(display(value))
}

// parseDecimal accepts decimal notation only; hexadecimal float literals
// are rejected even though strconv understands them.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.Contains(lower, "0x") {
		return 0, errHexNotation
	}
	return strconv.ParseFloat(s, 64)
}
