//go:build !mock_test_off

// This will build if build tag mock_test_off is not parsed and will try to mock
// all tests in _test.go
package bitfinex

import (
	"log"
	"os"
	"testing"

	"github.com/thrasher-corp/bfxrest/config"
	"github.com/thrasher-corp/bfxrest/exchanges/mock"
)

const mockTests = true

func TestMain(m *testing.M) {
	serverURL, _, err := mock.NewVCRServer(mock.DefaultDirectory + "bitfinex/bitfinex.json")
	if err != nil {
		log.Fatalf("Bitfinex mock server error: %s", err)
	}

	cfg := config.DefaultExchange()
	cfg.API.URL = serverURL
	cfg.API.Credentials.Key = "mockKey"
	cfg.API.Credentials.Secret = "mockSecret"
	b, err = New(&cfg)
	if err != nil {
		log.Fatalf("Bitfinex Setup error: %s", err)
	}

	os.Exit(m.Run())
}
