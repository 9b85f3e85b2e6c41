package request

import (
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// Const vars for the request package
const (
	// DefaultTimeout is applied to an Item that does not set its own timeout
	DefaultTimeout = time.Second * 15

	proxyTLSTimeout = 15 * time.Second
	userAgent       = "User-Agent"
	drainBodyLimit  = 1 << 16
)

// Requester struct for the request client
type Requester struct {
	_HTTPClient    *client
	name           string
	userAgent      string
	defaultTimeout time.Duration
	closed         atomic.Bool
}

// Item is a temp item for requests
type Item struct {
	Method        string
	Path          string
	Headers       map[string]string
	Body          io.Reader
	Result        any
	Timeout       time.Duration
	Verbose       bool
	HTTPDebugging bool
	// HeaderResponse receives the response headers when non-nil
	HeaderResponse *http.Header
}

// RequesterOption is a function option that can be applied to configure a
// Requester when creating it
type RequesterOption func(*Requester)

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) RequesterOption {
	return func(r *Requester) {
		r.userAgent = ua
	}
}

// WithDefaultTimeout overrides DefaultTimeout for items without a timeout
func WithDefaultTimeout(t time.Duration) RequesterOption {
	return func(r *Requester) {
		if t > 0 {
			r.defaultTimeout = t
		}
	}
}
