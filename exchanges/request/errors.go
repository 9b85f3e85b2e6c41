package request

import (
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// Public request errors
var (
	ErrRequestSystemIsNil = errors.New("request system is nil")
	ErrRequesterClosed    = errors.New("requester is closed")
	ErrTimeout            = errors.New("request timed out")
	ErrUnmarshal          = errors.New("unable to unmarshal response body")
)

// HTTPError is returned when the server answers with a status outside the
// 2xx range. The raw body is kept untouched.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       []byte
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("unsuccessful HTTP status code: %d url: %s raw response: %s", e.StatusCode, e.URL, e.Body)
}

// Message returns the server supplied reason for the failure, looking first
// at the "message" field and then "error". It returns an empty string when the
// body carries neither.
func (e *HTTPError) Message() string {
	if e == nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if v, err := jsonparser.GetString(e.Body, key); err == nil && v != "" {
			return v
		}
	}
	return ""
}
