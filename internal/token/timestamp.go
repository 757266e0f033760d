package token

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Layouts tried in order when decoding last_update strings. Strings without
// a zone are read as UTC. Fractional seconds are accepted by time.Parse even
// when the layout omits them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Unix values above this are taken as milliseconds.
const unixMillisThreshold = 1e12

// Timestamp is a nullable point in time decoded leniently.
type Timestamp struct {
	t       time.Time
	valid   bool
	present bool
}

// NewTimestamp wraps a time. The zero time is invalid.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t, valid: !t.IsZero(), present: true}
}

// ParseTimestamp parses a textual or numeric (Unix) timestamp.
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{present: true}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t)
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromUnix(f)
	}
	return Timestamp{present: true}
}

func fromUnix(f float64) Timestamp {
	if f <= 0 {
		return Timestamp{present: true}
	}
	if f > unixMillisThreshold {
		return NewTimestamp(time.UnixMilli(int64(f)).UTC())
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * float64(time.Second))
	return NewTimestamp(time.Unix(sec, nsec).UTC())
}

// Time returns the value and whether it is usable.
func (ts Timestamp) Time() (time.Time, bool) { return ts.t, ts.valid }

// Valid reports whether the timestamp parsed.
func (ts Timestamp) Valid() bool { return ts.valid }

// Present reports whether the field appeared in the payload.
func (ts Timestamp) Present() bool { return ts.present }

// UnmarshalJSON accepts strings, Unix numbers and null.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*ts = Timestamp{present: true}
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*ts = Timestamp{present: true}
			return nil
		}
		*ts = ParseTimestamp(s)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*ts = Timestamp{present: true}
		return nil
	}
	*ts = fromUnix(f)
	return nil
}

// MarshalJSON writes RFC3339 or null.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.valid {
		return []byte("null"), nil
	}
	return json.Marshal(ts.t.Format(time.RFC3339Nano))
}
