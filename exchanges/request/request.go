package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/thrasher-corp/bfxrest/encoding/json"
	"github.com/thrasher-corp/bfxrest/log"
)

var (
	errRequestItemNil         = errors.New("request item is nil")
	errInvalidPath            = errors.New("invalid path")
	errHeaderResponseMapIsNil = errors.New("header response map is nil")
	errServiceNameUnset       = errors.New("service name unset")
)

// New returns a new Requester which takes ownership of the supplied client
func New(name string, httpRequester *http.Client, opts ...RequesterOption) (*Requester, error) {
	if name == "" {
		return nil, errServiceNameUnset
	}
	protectedClient, err := newProtectedClient(httpRequester)
	if err != nil {
		return nil, fmt.Errorf("cannot set up a new requester for %s: %w", name, err)
	}
	r := &Requester{
		_HTTPClient:    protectedClient,
		name:           name,
		defaultTimeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// SendPayload handles sending HTTP/HTTPS requests
func (r *Requester) SendPayload(ctx context.Context, item *Item) error {
	if r == nil {
		return ErrRequestSystemIsNil
	}
	if r.closed.Load() {
		return ErrRequesterClosed
	}
	return r.doRequest(ctx, item)
}

// validateRequest validates the requester item fields
func (i *Item) validateRequest(ctx context.Context, r *Requester) (*http.Request, error) {
	if r == nil {
		return nil, ErrRequestSystemIsNil
	}
	if i == nil {
		return nil, errRequestItemNil
	}
	if i.Path == "" {
		return nil, errInvalidPath
	}
	if i.HeaderResponse != nil && *i.HeaderResponse == nil {
		return nil, errHeaderResponseMapIsNil
	}

	req, err := http.NewRequestWithContext(ctx, i.Method, i.Path, i.Body)
	if err != nil {
		return nil, err
	}

	for k, v := range i.Headers {
		req.Header.Add(k, v)
	}

	if r.userAgent != "" && req.Header.Get(userAgent) == "" {
		req.Header.Add(userAgent, r.userAgent)
	}

	if IsHTTPDebugging(ctx, i.HTTPDebugging) {
		// Err not evaluated due to validation check above
		dump, _ := httputil.DumpRequestOut(req, true)
		log.Debugf(log.RequestSys, "DumpRequest:\n%s", dump)
	}

	return req, nil
}

// doRequest performs a single HTTP/HTTPS request bounded by the item timeout
func (r *Requester) doRequest(parent context.Context, p *Item) error {
	timeout := r.defaultTimeout
	if p != nil && p.Timeout > 0 {
		timeout = p.Timeout
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	req, err := p.validateRequest(ctx, r)
	if err != nil {
		return err
	}

	verbose := IsVerbose(parent, p.Verbose)
	debugging := IsHTTPDebugging(parent, p.HTTPDebugging)
	if verbose {
		log.Debugf(log.RequestSys, "%s request path: %s", r.name, p.Path)
		for k, d := range req.Header {
			log.Debugf(log.RequestSys, "%s request header [%s]: %s", r.name, k, d)
		}
		log.Debugf(log.RequestSys, "%s request type: %s", r.name, req.Method)
	}

	resp, err := r._HTTPClient.do(req)
	if err != nil {
		return r.classifyTransportError(parent, ctx, timeout, p, err)
	}
	defer r.drainBody(resp.Body)

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return r.classifyTransportError(parent, ctx, timeout, p, err)
	}

	if p.HeaderResponse != nil {
		for k, v := range resp.Header {
			(*p.HeaderResponse)[k] = v
		}
	}

	if debugging {
		dump, err := httputil.DumpResponse(resp, false)
		if err != nil {
			log.Errorf(log.RequestSys, "DumpResponse invalid response: %v:", err)
		}
		log.Debugf(log.RequestSys, "DumpResponse Headers (%v):\n%s", p.Path, dump)
		log.Debugf(log.RequestSys, "DumpResponse Body (%v):\n %s", p.Path, contents)
	}

	if verbose {
		log.Debugf(log.RequestSys, "HTTP status: %s, Code: %v", resp.Status, resp.StatusCode)
		if !debugging {
			log.Debugf(log.RequestSys, "%s raw response: %s", r.name, contents)
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        p.Path,
			Body:       contents,
		}
	}

	if p.Result == nil {
		return nil
	}
	if err := json.Unmarshal(contents, p.Result); err != nil {
		return fmt.Errorf("%s %s: %w: %w", r.name, p.Path, ErrUnmarshal, err)
	}
	return nil
}

// classifyTransportError separates caller cancellation from the request
// deadline so callers can tell the two apart with errors.Is
func (r *Requester) classifyTransportError(parent, ctx context.Context, timeout time.Duration, p *Item, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return parentErr
	}
	var urlErr *url.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
		return fmt.Errorf("%s %s %s after %s: %w: %w", r.name, p.Method, p.Path, timeout, ErrTimeout, err)
	}
	return fmt.Errorf("%s %s %s: %w", r.name, p.Method, p.Path, err)
}

// SetProxy sets a proxy address to the client transport
func (r *Requester) SetProxy(p *url.URL) error {
	if r == nil {
		return ErrRequestSystemIsNil
	}
	return r._HTTPClient.setProxy(p)
}

// SetHTTPClientTimeout sets the underlying http.Client timeout, requests are
// still bounded by their own Item timeout
func (r *Requester) SetHTTPClientTimeout(timeout time.Duration) error {
	if r == nil {
		return ErrRequestSystemIsNil
	}
	return r._HTTPClient.setHTTPClientTimeout(timeout)
}

// Close releases the idle connections of the owned client, all later calls
// to SendPayload fail with ErrRequesterClosed
func (r *Requester) Close() error {
	if r == nil {
		return ErrRequestSystemIsNil
	}
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return r._HTTPClient.release()
}

// Closed reports whether Close has been called
func (r *Requester) Closed() bool {
	return r != nil && r.closed.Load()
}

// Name returns the service name the requester logs under
func (r *Requester) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

func (r *Requester) drainBody(body io.ReadCloser) {
	defer body.Close()
	if _, err := io.Copy(io.Discard, io.LimitReader(body, drainBodyLimit)); err != nil {
		log.Errorf(log.RequestSys, "%s failed to drain request body %s", r.name, err)
	}
}
