package token

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a nullable decimal decoded leniently from the status feed.
// Values that cannot be parsed decode as invalid instead of failing the
// whole payload.
type Number struct {
	value   decimal.Decimal
	valid   bool
	present bool
}

// NewNumber builds a valid Number from a float. NaN and infinities are invalid.
func NewNumber(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{present: true}
	}
	return Number{value: decimal.NewFromFloat(f), valid: true, present: true}
}

// ParseNumber parses a decimal string. Anything unparseable is invalid.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{present: true}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{present: true}
	}
	return Number{value: d, valid: true, present: true}
}

// Decimal returns the value and whether it is usable.
func (n Number) Decimal() (decimal.Decimal, bool) {
	return n.value, n.valid
}

// Valid reports whether the number holds a parsed value.
func (n Number) Valid() bool { return n.valid }

// Present reports whether the field appeared in the payload, even as null.
func (n Number) Present() bool { return n.present }

// Sign returns -1, 0 or 1. Invalid numbers report 0.
func (n Number) Sign() int {
	if !n.valid {
		return 0
	}
	return n.value.Sign()
}

func (n Number) String() string {
	if !n.valid {
		return ""
	}
	return n.value.String()
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*n = Number{present: true}
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = Number{present: true}
			return nil
		}
		raw = s
	}
	*n = ParseNumber(raw)
	return nil
}

// MarshalJSON writes the exact decimal or null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(n.value.String()), nil
}
