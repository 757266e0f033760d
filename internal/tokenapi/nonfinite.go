package tokenapi

import "bytes"

// Python and pandas backends write missing metrics as bare NaN or Infinity,
// which encoding/json rejects. These literals are rewritten to null outside
// of strings so the affected values decode as invalid numbers.
var nonFiniteLiterals = [][]byte{
	[]byte("-Infinity"),
	[]byte("Infinity"),
	[]byte("NaN"),
}

var jsonNull = []byte("null")

func nullNonFinite(body []byte) []byte {
	if !bytes.Contains(body, []byte("NaN")) && !bytes.Contains(body, []byte("Infinity")) {
		return body
	}

	out := make([]byte, 0, len(body))
	inString, escaped := false, false
	for i := 0; i < len(body); {
		c := body[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			out = append(out, c)
			i++
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			i++
			continue
		}
		if n := nonFiniteAt(body[i:]); n > 0 {
			out = append(out, jsonNull...)
			i += n
			continue
		}
		out = append(out, c)
		i++
	}
	return out
}

func nonFiniteAt(b []byte) int {
	for _, lit := range nonFiniteLiterals {
		if bytes.HasPrefix(b, lit) {
			return len(lit)
		}
	}
	return 0
}
