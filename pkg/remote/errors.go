package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotConfigured is returned without any network call when the base URL
// is empty.
var ErrNotConfigured = errors.New("remote: api base not configured")

// HTTPError is satisfied by errors carrying a response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError reports a non-2xx response. Op names the lookup for messages
// shown next to previews, e.g. "請求書取得".
type StatusError struct {
	Code int
	Op   string
	Err  error
}

func (e StatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d", e.StatusCode())
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	return msg
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// StatusCodeOf extracts the HTTP status from err, or 0.
func StatusCodeOf(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		return httpErr.StatusCode()
	}
	return 0
}
