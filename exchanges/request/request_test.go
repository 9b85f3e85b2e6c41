package request

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/bfxrest/common"
)

var (
	testURL          string
	unavailableCalls atomic.Int64
)

func TestMain(m *testing.M) {
	sm := http.NewServeMux()
	sm.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := io.WriteString(w, `{"response":true}`); err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/created", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		if _, err := io.WriteString(w, `{"response":true}`); err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/error", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		if _, err := io.WriteString(w, `{"message":"Unknown symbol"}`); err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/unavailable", func(w http.ResponseWriter, _ *http.Request) {
		unavailableCalls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := io.WriteString(w, `{"error":"ERR_RATE_LIMIT"}`); err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/notjson", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := io.WriteString(w, `<html>maintenance</html>`); err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/timeout", func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-req.Context().Done():
		}
		w.WriteHeader(http.StatusGatewayTimeout)
	})
	sm.HandleFunc("/echo", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			log.Fatal(err)
		}
		w.Header().Set("X-Echo-Method", req.Method)
		w.Header().Set("X-Echo-Agent", req.UserAgent())
		w.Header().Set("X-Echo-Body", string(body))
		if _, err := io.WriteString(w, `{}`); err != nil {
			log.Fatal(err)
		}
	})

	server := httptest.NewServer(sm)
	testURL = server.URL
	issues := m.Run()
	server.Close()
	os.Exit(issues)
}

func newTestRequester(t *testing.T, opts ...RequesterOption) *Requester {
	t.Helper()
	r, err := New("test", common.NewHTTPClientWithTimeout(0), opts...)
	require.NoError(t, err, "New must not error")
	t.Cleanup(func() { assert.NoError(t, r.Close()) })
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New("", new(http.Client))
	require.ErrorIs(t, err, errServiceNameUnset)

	_, err = New("test", nil)
	require.ErrorIs(t, err, errHTTPClientIsNil)

	c := new(http.Client)
	r, err := New("test", c, WithUserAgent("bfx"), WithDefaultTimeout(time.Second), WithDefaultTimeout(0))
	require.NoError(t, err)
	assert.Equal(t, "bfx", r.userAgent)
	assert.Equal(t, time.Second, r.defaultTimeout, "non positive timeout option must be ignored")
	assert.Equal(t, "test", r.Name())

	_, err = New("test", c)
	require.ErrorIs(t, err, errCannotReuseHTTPClient)
	require.NoError(t, r.Close())
}

func TestCheckRequest(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t)
	ctx := context.Background()

	var check *Item
	_, err := check.validateRequest(ctx, nil)
	require.ErrorIs(t, err, ErrRequestSystemIsNil)

	_, err = check.validateRequest(ctx, r)
	require.ErrorIs(t, err, errRequestItemNil)

	check = &Item{}
	_, err = check.validateRequest(ctx, r)
	require.ErrorIs(t, err, errInvalidPath)

	check.Path = testURL
	check.Method = " " // Forces method check; "" automatically converts to GET
	_, err = check.validateRequest(ctx, r)
	require.Error(t, err)

	check.Method = http.MethodPost
	_, err = check.validateRequest(ctx, r)
	require.NoError(t, err)

	var passback http.Header
	check.HeaderResponse = &passback
	_, err = check.validateRequest(ctx, r)
	require.ErrorIs(t, err, errHeaderResponseMapIsNil, "must error when underlying memory is not allocated")
	passback = http.Header{}

	check.Headers = map[string]string{"Content-Type": "Super awesome HTTP party experience"}
	r.userAgent = "r00t axxs"
	req, err := check.validateRequest(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, "Super awesome HTTP party experience", req.Header.Get("Content-Type"))
	assert.Equal(t, "r00t axxs", req.UserAgent())
}

func TestSendPayload(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, WithUserAgent("bfxrest-test"))
	ctx := context.Background()

	err := (*Requester)(nil).SendPayload(ctx, &Item{Path: testURL})
	require.ErrorIs(t, err, ErrRequestSystemIsNil)

	err = r.SendPayload(ctx, nil)
	require.ErrorIs(t, err, errRequestItemNil)

	var resp struct {
		Response bool `json:"response"`
	}
	err = r.SendPayload(ctx, &Item{Method: http.MethodGet, Path: testURL, Result: &resp})
	require.NoError(t, err)
	assert.True(t, resp.Response)

	resp.Response = false
	err = r.SendPayload(ctx, &Item{Method: http.MethodGet, Path: testURL + "/created", Result: &resp})
	require.NoError(t, err, "any 2xx status must succeed")
	assert.True(t, resp.Response)

	headers := http.Header{}
	err = r.SendPayload(ctx, &Item{
		Method:         http.MethodPost,
		Path:           testURL + "/echo",
		Body:           strings.NewReader("payload"),
		HeaderResponse: &headers,
		Verbose:        true,
		HTTPDebugging:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, headers.Get("X-Echo-Method"))
	assert.Equal(t, "bfxrest-test", headers.Get("X-Echo-Agent"))
	assert.Equal(t, "payload", headers.Get("X-Echo-Body"))
}

func TestSendPayloadHTTPError(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t)

	err := r.SendPayload(context.Background(), &Item{Method: http.MethodGet, Path: testURL + "/error", Result: &struct{}{}})
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, testURL+"/error", httpErr.URL)
	assert.JSONEq(t, `{"message":"Unknown symbol"}`, string(httpErr.Body))
	assert.Equal(t, "Unknown symbol", httpErr.Message())
	assert.Contains(t, err.Error(), "400")
}

func TestSendPayloadDoesNotRetry(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t)

	before := unavailableCalls.Load()
	err := r.SendPayload(context.Background(), &Item{Method: http.MethodGet, Path: testURL + "/unavailable"})
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, "ERR_RATE_LIMIT", httpErr.Message())
	assert.Equal(t, int64(1), unavailableCalls.Load()-before, "server must be hit exactly once")
}

func TestSendPayloadUnmarshal(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t)

	var result map[string]any
	err := r.SendPayload(context.Background(), &Item{Method: http.MethodGet, Path: testURL + "/notjson", Result: &result})
	require.ErrorIs(t, err, ErrUnmarshal)

	err = r.SendPayload(context.Background(), &Item{Method: http.MethodGet, Path: testURL + "/notjson"})
	require.NoError(t, err, "a nil result must skip decoding")
}

func TestSendPayloadTimeout(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t)

	start := time.Now()
	err := r.SendPayload(context.Background(), &Item{
		Method:  http.MethodGet,
		Path:    testURL + "/timeout",
		Timeout: time.Millisecond * 50,
	})
	require.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second, "must give up at the item timeout")
}

func TestSendPayloadCallerCancellation(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(time.Millisecond*50, cancel)
	err := r.SendPayload(ctx, &Item{Method: http.MethodGet, Path: testURL + "/timeout", Timeout: time.Second * 5})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrTimeout), "caller cancellation must not be reported as a timeout")
}

func TestClose(t *testing.T) {
	t.Parallel()
	r, err := New("test", common.NewHTTPClientWithTimeout(0))
	require.NoError(t, err)
	assert.False(t, r.Closed())

	require.NoError(t, r.Close())
	require.NoError(t, r.Close(), "Close must be idempotent")
	assert.True(t, r.Closed())

	err = r.SendPayload(context.Background(), &Item{Method: http.MethodGet, Path: testURL})
	require.ErrorIs(t, err, ErrRequesterClosed)

	require.ErrorIs(t, (*Requester)(nil).Close(), ErrRequestSystemIsNil)
}

func TestHTTPErrorMessage(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		body, exp string
	}{
		{`{"message":"Invalid order: not enough balance"}`, "Invalid order: not enough balance"},
		{`{"error":"ERR_RATE_LIMIT"}`, "ERR_RATE_LIMIT"},
		{`{"message":"","error":"fallback"}`, "fallback"},
		{`<html>bad gateway</html>`, ""},
		{``, ""},
	} {
		assert.Equalf(t, tc.exp, (&HTTPError{Body: []byte(tc.body)}).Message(), "Message should extract correctly from %q", tc.body)
	}
	assert.Empty(t, (*HTTPError)(nil).Message())
}
