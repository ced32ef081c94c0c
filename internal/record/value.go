package record

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a single attribute exactly as it arrived in the source JSON.
// The raw bytes are kept so that re-encoding a record is lossless.
type Value struct {
	raw json.RawMessage
}

// String returns a Value holding a JSON string.
func String(s string) Value {
	b, _ := json.Marshal(s)
	return Value{raw: b}
}

// Number returns a Value holding a JSON number.
func Number(f float64) Value {
	return Value{raw: json.RawMessage(formatNumber(f))}
}

// Raw wraps already-encoded JSON.
func Raw(b json.RawMessage) Value {
	if len(b) == 0 {
		return Value{}
	}
	return Value{raw: append(json.RawMessage(nil), b...)}
}

// IsSet reports whether the attribute was present in the source, even if null.
func (v Value) IsSet() bool {
	return len(v.raw) > 0
}

// RawMessage returns the original encoding, or nil when absent.
func (v Value) RawMessage() json.RawMessage {
	return v.raw
}

// String renders the attribute as a table cell.
//
// Strings are returned as-is and numbers in plain base-10 form. Anything else
// (absent, null, booleans, objects, arrays) renders as "".
func (v Value) String() string {
	raw := bytes.TrimSpace(v.raw)
	if len(raw) == 0 {
		return ""
	}

	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case c == '-' || (c >= '0' && c <= '9'):
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return ""
		}
		return formatNumber(f)
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(v.raw[:0], b...)
	return nil
}

// formatNumber matches the usual number-to-string conversion of spreadsheet
// sources: shortest round-trip digits, no grouping, exponent form only for
// very large or very small magnitudes.
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
