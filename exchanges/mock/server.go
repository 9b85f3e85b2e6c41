package mock

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"

	"github.com/gorilla/mux"
	"github.com/thrasher-corp/bfxrest/common"
	"github.com/thrasher-corp/bfxrest/common/crypto"
	"github.com/thrasher-corp/bfxrest/encoding/json"
	"github.com/thrasher-corp/bfxrest/exchanges/request"
)

// DefaultDirectory defines the main mock directory
const DefaultDirectory = "../../testdata/http_mock/"

const (
	contentType       = "Content-Type"
	applicationJSON   = "application/json"
	bitfinexPayloadHd = "X-BFX-PAYLOAD"
)

var (
	errNoRoutes        = errors.New("no routes loaded")
	errNoMatchingRoute = errors.New("no mock response matches the request parameters")
)

// NewVCRServer starts a new VCR server for replaying HTTP requests for testing
// purposes and returns the server URL and a fresh HTTP client for it
func NewVCRServer(path string) (string, *http.Client, error) {
	if path == "" {
		return "", nil, errors.New("no path to json mock file found")
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	var m VCRMock
	if err = json.Unmarshal(contents, &m); err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}

	router, err := NewRouter(&m)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}

	tlsServer := httptest.NewServer(router)
	return tlsServer.URL, common.NewHTTPClientWithTimeout(request.DefaultTimeout), nil
}

// NewRouter builds a gorilla/mux router serving the recorded responses
func NewRouter(m *VCRMock) (*mux.Router, error) {
	if m == nil || len(m.Routes) == 0 {
		return nil, errNoRoutes
	}
	router := mux.NewRouter()
	for path, methods := range m.Routes {
		for method, responses := range methods {
			router.
				Methods(method).
				Path(path).
				HandlerFunc(replayHandler(responses))
		}
	}
	return router, nil
}

func replayHandler(responses []HTTPResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			params url.Values
			err    error
		)
		switch r.Method {
		case http.MethodGet, http.MethodDelete:
			params = r.URL.Query()
		default:
			params, err = BodyParams(r)
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		for i := range responses {
			expected, err := url.ParseQuery(matchString(r.Method, &responses[i]))
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			if !MatchURLVals(expected, params) {
				continue
			}
			for k, v := range responses[i].Headers {
				for x := range v {
					w.Header().Add(k, v[x])
				}
			}
			w.Header().Set(contentType, applicationJSON)
			status := responses[i].StatusCode
			if status == 0 {
				status = http.StatusOK
			}
			w.WriteHeader(status)
			if _, err := w.Write(responses[i].Data); err != nil {
				panic(err)
			}
			return
		}
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s %s %s", errNoMatchingRoute, r.Method, r.URL.Path, params.Encode()))
	}
}

func matchString(method string, resp *HTTPResponse) string {
	if method == http.MethodGet || method == http.MethodDelete {
		return resp.QueryString
	}
	return resp.BodyParams
}

// BodyParams extracts the parameters of a request body. A signed Bitfinex
// payload header takes precedence over the body, otherwise JSON and form
// encoded bodies are supported.
func BodyParams(r *http.Request) (url.Values, error) {
	if payload := r.Header.Get(bitfinexPayloadHd); payload != "" {
		decoded, err := crypto.Base64Decode(payload)
		if err != nil {
			return nil, err
		}
		return DeriveURLValsFromJSONMap(decoded)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if r.Header.Get(contentType) == applicationJSON {
		return DeriveURLValsFromJSONMap(body)
	}
	return url.ParseQuery(string(body))
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(contentType, applicationJSON)
	w.WriteHeader(status)
	payload, mErr := json.Marshal(map[string]string{"message": err.Error()})
	if mErr != nil {
		panic(mErr)
	}
	if _, err := w.Write(payload); err != nil {
		panic(err)
	}
}
