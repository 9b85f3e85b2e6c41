package mock

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/thrasher-corp/bfxrest/encoding/json"
)

var errUnhandledConversionType = errors.New("unhandled conversion type")

// deltaKeys change on every request and are only checked for presence
var deltaKeys = map[string]struct{}{
	"nonce":     {},
	"signature": {},
	"timestamp": {},
	"key":       {},
}

// MatchURLVals reports whether a recorded parameter set matches the one sent,
// keys in deltaKeys only need to be present
func MatchURLVals(recorded, sent url.Values) bool {
	if len(recorded) != len(sent) {
		return false
	}
	for key, want := range recorded {
		got, ok := sent[key]
		if !ok {
			return false
		}
		if _, delta := deltaKeys[key]; delta {
			continue
		}
		if !slices.Equal(want, got) {
			return false
		}
	}
	return true
}

// DeriveURLValsFromJSONMap flattens a JSON object payload into url.Values so
// signed POST bodies can be matched like query strings. Numbers are written
// without exponent, nested values with their fmt representation.
func DeriveURLValsFromJSONMap(payload []byte) (url.Values, error) {
	vals := url.Values{}
	if len(payload) == 0 {
		return vals, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		switch val := v.(type) {
		case string:
			vals.Add(k, val)
		case bool:
			vals.Add(k, strconv.FormatBool(val))
		case float64:
			vals.Add(k, strconv.FormatFloat(val, 'f', -1, 64))
		case map[string]any, []any, nil:
			vals.Add(k, fmt.Sprint(val))
		default:
			return nil, fmt.Errorf("%w: %T", errUnhandledConversionType, val)
		}
	}
	return vals, nil
}
