package mock

import "github.com/thrasher-corp/bfxrest/encoding/json"

// VCRMock defines the recorded responses of a mock exchange, keyed by path
// then HTTP method
type VCRMock struct {
	Routes map[string]map[string][]HTTPResponse `json:"routes"`
}

// HTTPResponse defines a single recorded response and the request parameters
// it answers
type HTTPResponse struct {
	Data        json.RawMessage `json:"data"`
	QueryString string          `json:"queryString"`
	BodyParams  string          `json:"bodyParams"`
	// StatusCode defaults to 200 when unset
	StatusCode int                 `json:"statusCode,omitempty"`
	Headers    map[string][]string `json:"headers,omitempty"`
}
