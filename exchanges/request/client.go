package request

import (
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"
)

var (
	errHTTPClientIsNil       = errors.New("http client is nil")
	errCannotReuseHTTPClient = errors.New("cannot reuse http client")
	errHTTPClientNotFound    = errors.New("http client not found")
	errNoProxyURLSupplied    = errors.New("no proxy URL supplied")
	errTransportNotSet       = errors.New("transport not set, cannot set timeout")
)

// tracker guards against the same *http.Client being owned by more than one
// Requester, a Requester closes idle connections of the client it owns
var tracker = clientTracker{clients: make(map[*http.Client]struct{})}

type clientTracker struct {
	clients map[*http.Client]struct{}
	sync.Mutex
}

func (c *clientTracker) checkAndRegister(newClient *http.Client) error {
	if newClient == nil {
		return errHTTPClientIsNil
	}
	c.Lock()
	defer c.Unlock()
	if _, ok := c.clients[newClient]; ok {
		return errCannotReuseHTTPClient
	}
	c.clients[newClient] = struct{}{}
	return nil
}

func (c *clientTracker) deRegister(oldClient *http.Client) error {
	if oldClient == nil {
		return errHTTPClientIsNil
	}
	c.Lock()
	defer c.Unlock()
	if _, ok := c.clients[oldClient]; !ok {
		return errHTTPClientNotFound
	}
	delete(c.clients, oldClient)
	return nil
}

// client wraps an http.Client so its settings can be changed safely while
// requests are in flight
type client struct {
	protected *http.Client
	m         sync.RWMutex
}

func newProtectedClient(newClient *http.Client) (*client, error) {
	if err := tracker.checkAndRegister(newClient); err != nil {
		return nil, err
	}
	return &client{protected: newClient}, nil
}

func (c *client) setProxy(p *url.URL) error {
	if p == nil || p.String() == "" {
		return errNoProxyURLSupplied
	}
	c.m.Lock()
	defer c.m.Unlock()
	t, ok := c.protected.Transport.(*http.Transport)
	if !ok {
		return errTransportNotSet
	}
	t.Proxy = http.ProxyURL(p)
	t.TLSHandshakeTimeout = proxyTLSTimeout
	return nil
}

func (c *client) setHTTPClientTimeout(timeout time.Duration) error {
	c.m.Lock()
	defer c.m.Unlock()
	tr, ok := c.protected.Transport.(*http.Transport)
	if !ok {
		return errTransportNotSet
	}
	tr.IdleConnTimeout = timeout
	c.protected.Timeout = timeout
	return nil
}

func (c *client) do(request *http.Request) (*http.Response, error) {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.protected.Do(request)
}

// release closes idle connections and de-registers the underlying client
func (c *client) release() error {
	c.m.Lock()
	defer c.m.Unlock()
	c.protected.CloseIdleConnections()
	return tracker.deRegister(c.protected)
}
