package config

import (
	"time"

	"github.com/thrasher-corp/bfxrest/log"
)

// Constants declared here are filename strings and defaults
const (
	File                  = "config.json"
	EnvPrefix             = "BFX"
	DefaultExchangeName   = "Bitfinex"
	DefaultAPIURL         = "https://api.bitfinex.com"
	DefaultUnsetAPIKey    = "Key"
	DefaultUnsetAPISecret = "Secret"

	defaultHTTPTimeout    = time.Second * 15
	defaultPublicTimeout  = time.Second * 10
	defaultPrivateTimeout = time.Second * 20
)

// Constants here hold some messages
const (
	WarningExchangeAuthAPIDefaultOrEmptyValues = "exchange %s authenticated API support disabled due to default/empty APIKey/Secret values"
	WarningHTTPTimeoutDefaulted                = "exchange %s %s timeout value not set, defaulting to %v"
)

// Config is the overarching object that holds all the information for the
// client
type Config struct {
	Name     string     `json:"name" mapstructure:"name"`
	Exchange Exchange   `json:"exchange" mapstructure:"exchange"`
	Logging  log.Config `json:"logging" mapstructure:"logging"`
}

// Exchange holds all the information needed for the REST client
type Exchange struct {
	Name          string `json:"name" mapstructure:"name"`
	Verbose       bool   `json:"verbose" mapstructure:"verbose"`
	HTTPDebugging bool   `json:"httpDebugging,omitempty" mapstructure:"httpDebugging"`
	HTTPUserAgent string `json:"httpUserAgent,omitempty" mapstructure:"httpUserAgent"`
	ProxyAddress  string `json:"proxyAddress,omitempty" mapstructure:"proxyAddress"`
	// HTTPTimeout is the fallback bound for calls without their own timeout,
	// PublicTimeout and PrivateTimeout bound each individual call. The
	// underlying http.Client is bounded by the largest of the three.
	HTTPTimeout    time.Duration `json:"httpTimeout" mapstructure:"httpTimeout"`
	PublicTimeout  time.Duration `json:"publicTimeout" mapstructure:"publicTimeout"`
	PrivateTimeout time.Duration `json:"privateTimeout" mapstructure:"privateTimeout"`
	API            APIConfig     `json:"api" mapstructure:"api"`
}

// APIConfig stores the exchange API config
type APIConfig struct {
	URL         string               `json:"url" mapstructure:"url"`
	Credentials APICredentialsConfig `json:"credentials" mapstructure:"credentials"`
}

// APICredentialsConfig stores the API credentials
type APICredentialsConfig struct {
	Key    string `json:"key,omitempty" mapstructure:"key"`
	Secret string `json:"secret,omitempty" mapstructure:"secret"`
}
