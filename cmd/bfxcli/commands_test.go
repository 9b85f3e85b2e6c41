package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/bfxrest/common/crypto"
	"github.com/thrasher-corp/bfxrest/encoding/json"
	"github.com/thrasher-corp/bfxrest/exchanges/bitfinex"
	"github.com/thrasher-corp/bfxrest/exchanges/request"
)

// runApp runs the CLI against url with environment credentials cleared and
// returns what the command printed
func runApp(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BFX_API_KEY", "")
	t.Setenv("BFX_API_SECRET", "")
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	base := []string{"bfxcli", "--env", filepath.Join(t.TempDir(), "missing.env"), "--url", url, "--timeout", "5s"}
	err := app.Run(append(base, args...))
	return out.String(), err
}

func TestParseTime(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		in   string
		want time.Time
		err  bool
	}{
		{in: ""},
		{in: "1700000000", want: time.Unix(1700000000, 0)},
		{in: "2023-11-14T22:13:20Z", want: time.Unix(1700000000, 0)},
		{in: "yesterday", err: true},
	} {
		got, err := parseTime(tc.in)
		if tc.err {
			assert.Errorf(t, err, "parseTime should error for %q", tc.in)
			continue
		}
		require.NoErrorf(t, err, "parseTime must not error for %q", tc.in)
		assert.Truef(t, tc.want.Equal(got), "parseTime(%q) should be %s, got %s", tc.in, tc.want, got)
	}
}

func TestTickerCommand(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/pubticker/btcusd", r.URL.Path)
		_, _ = io.WriteString(w, `{"mid":"30000.05","bid":"30000","ask":"30000.1","last_price":"30000.1","low":"29000","high":"31000","volume":"1234.5","timestamp":"1700000000.123"}`)
	}))
	defer srv.Close()

	out, err := runApp(t, srv.URL, "ticker", "--symbol", "btcusd")
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())

	var ticker map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &ticker), "output must be JSON")
	assert.Equal(t, "30000.1", ticker["last_price"])
	assert.Equal(t, "1234.5", ticker["volume"])
	ts, ok := ticker["timestamp"].(string)
	require.True(t, ok, "timestamp must be a string")
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	require.NoError(t, err)
	assert.True(t, time.UnixMilli(1700000000123).Equal(parsed), "timestamp should survive the round trip")
}

func TestTradesCommandQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/trades/btcusd", r.URL.Path)
		assert.Equal(t, "1700000000", r.URL.Query().Get("timestamp"))
		assert.Equal(t, "5", r.URL.Query().Get("limit_trades"))
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	out, err := runApp(t, srv.URL, "trades", "--symbol", "btcusd", "--since", "2023-11-14T22:13:20Z", "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	_, err = runApp(t, srv.URL, "trades", "--symbol", "btcusd", "--since", "soon")
	assert.Error(t, err, "an invalid time should error")
}

func TestOrderbookCommandQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/book/btcusd", r.URL.Path)
		assert.Equal(t, "limit_asks=2&limit_bids=1&group=0", sortedQuery(r))
		_, _ = io.WriteString(w, `{"bids":[],"asks":[]}`)
	}))
	defer srv.Close()

	_, err := runApp(t, srv.URL, "orderbook", "--symbol", "btcusd", "--bids", "1", "--asks", "2", "--ungrouped")
	require.NoError(t, err)
}

// sortedQuery re-encodes the query with group last so it can be compared
func sortedQuery(r *http.Request) string {
	q := r.URL.Query()
	group := q.Get("group")
	q.Del("group")
	return q.Encode() + "&group=" + group
}

func TestPrivateCommandWithoutCredentials(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	_, err := runApp(t, srv.URL, "account", "info")
	assert.ErrorIs(t, err, bitfinex.ErrMissingCredentials)
	assert.Zero(t, hits.Load(), "no request should be sent without credentials")
}

func TestOrderNewCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/order/new", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get(bitfinex.HeaderAPIKey))

		raw, err := crypto.Base64Decode(r.Header.Get(bitfinex.HeaderPayload))
		if assert.NoError(t, err) {
			var params map[string]any
			if assert.NoError(t, json.Unmarshal(raw, &params)) {
				assert.Equal(t, "/v1/order/new", params["request"])
				assert.Equal(t, "btcusd", params["symbol"])
				assert.Equal(t, "0.5", params["amount"])
				assert.Equal(t, "31000", params["price"])
				assert.Equal(t, "sell", params["side"])
				assert.Equal(t, bitfinex.OrderTypeExchangeLimit, params["type"])
			}
		}
		_, _ = io.WriteString(w, `{"id":448364249,"symbol":"btcusd","side":"sell","price":"31000","is_live":true}`)
	}))
	defer srv.Close()

	out, err := runApp(t, srv.URL, "--apikey", "key", "--apisecret", "secret",
		"order", "new", "--symbol", "btcusd", "--amount", "0.5", "--price", "31000", "--side", "sell")
	require.NoError(t, err)

	var o map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &o), "output must be JSON")
	assert.Equal(t, float64(448364249), o["id"])
	assert.Equal(t, true, o["is_live"])
}

func TestOrderNewCommandInvalidInput(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	creds := []string{"--apikey", "key", "--apisecret", "secret"}
	_, err := runApp(t, srv.URL, append(creds, "order", "new", "--symbol", "btcusd", "--amount", "0.5", "--price", "31000", "--side", "hold")...)
	assert.ErrorIs(t, err, errInvalidSide)

	_, err = runApp(t, srv.URL, append(creds, "order", "new", "--symbol", "btcusd", "--amount", "half", "--price", "31000")...)
	assert.ErrorContains(t, err, "invalid --amount")

	assert.Zero(t, hits.Load(), "invalid input should not reach the exchange")
}

func TestCommandHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"Unknown symbol"}`)
	}))
	defer srv.Close()

	_, err := runApp(t, srv.URL, "stats", "--symbol", "nope")
	var httpErr *request.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "Unknown symbol", httpErr.Message())
}
