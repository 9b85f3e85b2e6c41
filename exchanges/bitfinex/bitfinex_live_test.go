//go:build mock_test_off

// This will build if build tag mock_test_off is parsed and will do live testing
// using all tests in (exchange)_test.go
package bitfinex

import (
	"log"
	"os"
	"testing"

	"github.com/thrasher-corp/bfxrest/config"
)

const mockTests = false

// TestMain reads BFX_API_KEY and BFX_API_SECRET from the environment,
// authenticated tests are skipped without them
func TestMain(m *testing.M) {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Bitfinex load config error: %s", err)
	}
	b, err = New(&cfg.Exchange)
	if err != nil {
		log.Fatalf("Bitfinex Setup error: %s", err)
	}
	log.Printf("%s live testing, authenticated support: %v", b.Name, b.AuthenticatedSupport())
	os.Exit(m.Run())
}
