package mock

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchURLVals(t *testing.T) {
	t.Parallel()
	order := url.Values{"symbol": {"btcusd"}, "side": {"buy"}}
	for _, tc := range []struct {
		name     string
		recorded url.Values
		sent     url.Values
		match    bool
	}{
		{"both empty", url.Values{}, nil, true},
		{"identical", order, url.Values{"side": {"buy"}, "symbol": {"btcusd"}}, true},
		{"different value", order, url.Values{"side": {"sell"}, "symbol": {"btcusd"}}, false},
		{"missing key", order, url.Values{"symbol": {"btcusd"}}, false},
		{"extra key", url.Values{"symbol": {"btcusd"}}, order, false},
		{"renamed key", url.Values{"symbol": {"btcusd"}}, url.Values{"pair": {"btcusd"}}, false},
		{"nonce differs", url.Values{"nonce": {"1"}, "request": {"/v1/balances"}}, url.Values{"nonce": {"2"}, "request": {"/v1/balances"}}, true},
		{"nonce missing", url.Values{"nonce": {"1"}}, url.Values{"request": {"/v1/balances"}}, false},
		{"repeated values", url.Values{"id": {"1", "2"}}, url.Values{"id": {"1", "2"}}, true},
		{"repeated values reordered", url.Values{"id": {"1", "2"}}, url.Values{"id": {"2", "1"}}, false},
	} {
		assert.Equal(t, tc.match, MatchURLVals(tc.recorded, tc.sent), tc.name)
	}
}

func TestDeriveURLValsFromJSONMap(t *testing.T) {
	t.Parallel()
	vals, err := DeriveURLValsFromJSONMap([]byte(`{
		"request": "/v1/order/new",
		"nonce": "1700000000000000000",
		"symbol": "btcusd",
		"amount": "0.01",
		"order_id": 448364249,
		"rate": 12.5,
		"is_hidden": false,
		"order_ids": [1, 2],
		"meta": {"aff_code": "x"},
		"ocoorder": null
	}`))
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"request":   {"/v1/order/new"},
		"nonce":     {"1700000000000000000"},
		"symbol":    {"btcusd"},
		"amount":    {"0.01"},
		"order_id":  {"448364249"},
		"rate":      {"12.5"},
		"is_hidden": {"false"},
		"order_ids": {"[1 2]"},
		"meta":      {"map[aff_code:x]"},
		"ocoorder":  {"<nil>"},
	}, vals)

	vals, err = DeriveURLValsFromJSONMap(nil)
	require.NoError(t, err)
	assert.Empty(t, vals)

	_, err = DeriveURLValsFromJSONMap([]byte(`[{"symbol":"btcusd"}]`))
	assert.Error(t, err, "a JSON array should not decode into parameters")
}
