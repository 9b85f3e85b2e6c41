package bitfinex

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/thrasher-corp/bfxrest/common"
	"github.com/thrasher-corp/bfxrest/config"
	"github.com/thrasher-corp/bfxrest/exchanges/request"
	"github.com/thrasher-corp/bfxrest/log"
)

var errExchangeConfigIsNil = errors.New("exchange config is nil")

// New returns a Bitfinex client set up from cfg. A nil cfg returns a client
// with defaults which can only reach public endpoints.
func New(cfg *config.Exchange) (*Bitfinex, error) {
	b := new(Bitfinex)
	b.SetDefaults()
	if cfg == nil {
		return b, nil
	}
	if err := b.Setup(cfg); err != nil {
		return nil, errors.Join(err, b.Shutdown())
	}
	return b, nil
}

// SetDefaults sets the basic defaults for Bitfinex
func (b *Bitfinex) SetDefaults() {
	b.Name = config.DefaultExchangeName
	b.Verbose = false
	b.HTTPDebugging = false
	b.apiURL = bitfinexAPIURLBase
	b.publicTimeout = bitfinexPublicTimeout
	b.privateTimeout = bitfinexPrivateTimeout
	b.signer = nil

	r, err := request.New(b.Name, common.NewHTTPClientWithTimeout(clientTimeout(request.DefaultTimeout, b.publicTimeout, b.privateTimeout)))
	if err != nil {
		log.Errorf(log.ExchangeSys, "%s unable to create requester: %v", b.Name, err)
		return
	}
	b.replaceRequester(r)
}

// Setup takes in the supplied exchange configuration details and sets params
func (b *Bitfinex) Setup(exch *config.Exchange) error {
	if exch == nil {
		return errExchangeConfigIsNil
	}
	if err := exch.CheckExchangeConfigValues(); err != nil {
		return err
	}

	opts := []request.RequesterOption{request.WithDefaultTimeout(exch.HTTPTimeout)}
	if exch.HTTPUserAgent != "" {
		opts = append(opts, request.WithUserAgent(exch.HTTPUserAgent))
	}
	r, err := request.New(exch.Name, common.NewHTTPClientWithTimeout(clientTimeout(exch.HTTPTimeout, exch.PublicTimeout, exch.PrivateTimeout)), opts...)
	if err != nil {
		return err
	}
	if exch.ProxyAddress != "" {
		if err := setProxy(r, exch.ProxyAddress); err != nil {
			return errors.Join(fmt.Errorf("%s: %w", exch.Name, err), r.Close())
		}
	}

	b.Name = exch.Name
	b.Verbose = exch.Verbose
	b.HTTPDebugging = exch.HTTPDebugging
	b.apiURL = exch.API.URL
	b.publicTimeout = exch.PublicTimeout
	b.privateTimeout = exch.PrivateTimeout
	b.replaceRequester(r)

	if !exch.CredentialsSet() {
		b.signer = nil
		log.Warnf(log.ExchangeSys, config.WarningExchangeAuthAPIDefaultOrEmptyValues, b.Name)
		return nil
	}
	return b.SetCredentials(exch.API.Credentials.Key, exch.API.Credentials.Secret)
}

// SetCredentials sets the API key pair used to sign private requests
func (b *Bitfinex) SetCredentials(key, secret string) error {
	s, err := NewSigner(Credentials{Key: key, Secret: secret})
	if err != nil {
		return fmt.Errorf("%s: %w", b.Name, err)
	}
	b.signer = s
	return nil
}

// AuthenticatedSupport returns whether private endpoints can be reached
func (b *Bitfinex) AuthenticatedSupport() bool {
	return b.signer != nil
}

// Shutdown releases the HTTP client owned by the exchange, later requests fail
// with request.ErrRequesterClosed
func (b *Bitfinex) Shutdown() error {
	if b.requester == nil {
		return nil
	}
	return b.requester.Close()
}

func (b *Bitfinex) replaceRequester(r *request.Requester) {
	if b.requester != nil {
		if err := b.requester.Close(); err != nil {
			log.Errorf(log.ExchangeSys, "%s unable to release previous HTTP client: %v", b.Name, err)
		}
	}
	b.requester = r
}

// clientTimeout returns the http.Client bound, it never undercuts a per call
// timeout so the call context stays the effective limit
func clientTimeout(httpTimeout, publicTimeout, privateTimeout time.Duration) time.Duration {
	return max(httpTimeout, publicTimeout, privateTimeout)
}

func setProxy(r *request.Requester, address string) error {
	proxy, err := url.Parse(address)
	if err != nil {
		return fmt.Errorf("invalid proxy address %q: %w", address, err)
	}
	return r.SetProxy(proxy)
}

// ConvertSymbolToWithdrawalType returns the withdrawal type the exchange uses
// for a currency code
func ConvertSymbolToWithdrawalType(currency string) string {
	switch c := strings.ToUpper(currency); c {
	case "BTC":
		return "bitcoin"
	case "LTC":
		return "litecoin"
	case "ETH":
		return "ethereum"
	case "ETC":
		return "ethereumc"
	case "USDT":
		return "tetheruso"
	case "ZEC":
		return "zcash"
	case "XMR":
		return "monero"
	case "DSH", "DASH":
		return "dash"
	case "XRP":
		return "ripple"
	case "SAN":
		return "santiment"
	case "OMG":
		return "omisego"
	case "BCH":
		return "bcash"
	case "ETP":
		return "metaverse"
	case "AVT":
		return "aventus"
	case "EDO":
		return "eidoo"
	case "BTG":
		return "bgold"
	case "DATA":
		return "datacoin"
	case "GNT":
		return "golem"
	case "SNT":
		return "status"
	default:
		return strings.ToLower(c)
	}
}
