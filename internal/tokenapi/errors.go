package tokenapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Operation names used in errors and logs.
const (
	OpList   = "list tokens"
	OpAdd    = "add token"
	OpDelete = "delete token"
	OpToggle = "toggle token"
)

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// ErrMalformedResponse is returned when the status payload has no tokens list.
var ErrMalformedResponse = errors.New("malformed status response")

// StatusError is returned when the service answers with an unexpected status.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func truncateBody(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
