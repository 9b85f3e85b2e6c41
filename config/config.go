package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kat-co/vala"
	"github.com/spf13/viper"
	"github.com/thrasher-corp/bfxrest/encoding/json"
	"github.com/thrasher-corp/bfxrest/log"
)

var (
	errConfigIsNil      = errors.New("config is nil")
	errExchangeIsNil    = errors.New("exchange config is nil")
	errInvalidLogConfig = errors.New("invalid logging config")
)

// DefaultExchange returns the exchange settings used when nothing is
// configured
func DefaultExchange() Exchange {
	return Exchange{
		Name:           DefaultExchangeName,
		HTTPTimeout:    defaultHTTPTimeout,
		PublicTimeout:  defaultPublicTimeout,
		PrivateTimeout: defaultPrivateTimeout,
		API: APIConfig{
			URL: DefaultAPIURL,
			Credentials: APICredentialsConfig{
				Key:    DefaultUnsetAPIKey,
				Secret: DefaultUnsetAPISecret,
			},
		},
	}
}

// DefaultConfig returns a config with known sane/working settings
func DefaultConfig() *Config {
	return &Config{
		Name:     "bfxrest",
		Exchange: DefaultExchange(),
		Logging:  log.GenDefaultSettings(),
	}
}

// Load reads the config file at path, when set, and overlays any BFX_
// prefixed environment variables, e.g. BFX_EXCHANGE_API_CREDENTIALS_KEY or the
// shorter BFX_API_KEY and BFX_API_SECRET. The result is checked before it is
// returned.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("exchange.api.credentials.key", EnvPrefix+"_API_KEY", EnvPrefix+"_EXCHANGE_API_CREDENTIALS_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("exchange.api.credentials.secret", EnvPrefix+"_API_SECRET", EnvPrefix+"_EXCHANGE_API_CREDENTIALS_SECRET"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
		log.Debugf(log.ConfigMgr, "Using config file %s", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.CheckConfig(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("name", c.Name)

	e := &c.Exchange
	v.SetDefault("exchange.name", e.Name)
	v.SetDefault("exchange.verbose", e.Verbose)
	v.SetDefault("exchange.httpDebugging", e.HTTPDebugging)
	v.SetDefault("exchange.httpUserAgent", e.HTTPUserAgent)
	v.SetDefault("exchange.proxyAddress", e.ProxyAddress)
	v.SetDefault("exchange.httpTimeout", e.HTTPTimeout)
	v.SetDefault("exchange.publicTimeout", e.PublicTimeout)
	v.SetDefault("exchange.privateTimeout", e.PrivateTimeout)
	v.SetDefault("exchange.api.url", e.API.URL)
	v.SetDefault("exchange.api.credentials.key", e.API.Credentials.Key)
	v.SetDefault("exchange.api.credentials.secret", e.API.Credentials.Secret)

	l := &c.Logging
	v.SetDefault("logging.enabled", l.Enabled)
	v.SetDefault("logging.level", l.Level)
	v.SetDefault("logging.output", l.Output)
	v.SetDefault("logging.advancedSettings.showLogSystemName", l.AdvancedSettings.ShowLogSystemName)
	v.SetDefault("logging.advancedSettings.spacer", l.AdvancedSettings.Spacer)
	v.SetDefault("logging.advancedSettings.timeStampFormat", l.AdvancedSettings.TimeStampFormat)
	v.SetDefault("logging.advancedSettings.headers.info", l.AdvancedSettings.Headers.Info)
	v.SetDefault("logging.advancedSettings.headers.warn", l.AdvancedSettings.Headers.Warn)
	v.SetDefault("logging.advancedSettings.headers.debug", l.AdvancedSettings.Headers.Debug)
	v.SetDefault("logging.advancedSettings.headers.error", l.AdvancedSettings.Headers.Error)
}

// CheckConfig checks all config settings
func (c *Config) CheckConfig() error {
	if c == nil {
		return errConfigIsNil
	}
	if err := c.CheckLoggerConfig(); err != nil {
		return err
	}
	return c.Exchange.CheckExchangeConfigValues()
}

// CheckLoggerConfig checks to see logger values are present and valid in
// config, if not it creates a default instance of the logger
func (c *Config) CheckLoggerConfig() error {
	if c.Logging.Output == "" && c.Logging.Level == "" {
		c.Logging = log.GenDefaultSettings()
		return nil
	}
	if _, err := log.ParseLevels(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", errInvalidLogConfig, err)
	}
	if err := log.ValidateOutput(c.Logging.Output); err != nil {
		return fmt.Errorf("%w: %w", errInvalidLogConfig, err)
	}
	for i := range c.Logging.SubLoggers {
		if _, err := log.ParseLevels(c.Logging.SubLoggers[i].Level); err != nil {
			return fmt.Errorf("%w: sublogger %s: %w", errInvalidLogConfig, c.Logging.SubLoggers[i].Name, err)
		}
		if err := log.ValidateOutput(c.Logging.SubLoggers[i].Output); err != nil {
			return fmt.Errorf("%w: sublogger %s: %w", errInvalidLogConfig, c.Logging.SubLoggers[i].Name, err)
		}
	}
	return nil
}

// CheckExchangeConfigValues fills unset timeouts with defaults and validates
// the remaining exchange values
func (e *Exchange) CheckExchangeConfigValues() error {
	if e == nil {
		return errExchangeIsNil
	}

	if e.Name == "" {
		e.Name = DefaultExchangeName
	}
	if e.API.URL == "" {
		e.API.URL = DefaultAPIURL
	}
	e.HTTPTimeout = defaultTimeout(e.Name, "http", e.HTTPTimeout, defaultHTTPTimeout)
	e.PublicTimeout = defaultTimeout(e.Name, "public", e.PublicTimeout, defaultPublicTimeout)
	e.PrivateTimeout = defaultTimeout(e.Name, "private", e.PrivateTimeout, defaultPrivateTimeout)

	err := vala.BeginValidation().Validate(
		isAbsoluteURL(e.API.URL, "api.url"),
		isOptionalURL(e.ProxyAddress, "proxyAddress"),
		vala.StringNotEmpty(e.Name, "name"),
		vala.GreaterThan(int(e.PrivateTimeout), 0, "privateTimeout"),
		vala.GreaterThan(int(e.PublicTimeout), 0, "publicTimeout"),
	).Check()
	if err != nil {
		return fmt.Errorf("exchange %s: %w", e.Name, err)
	}
	return nil
}

// CredentialsSet returns whether both the API key and secret hold real values
func (e *Exchange) CredentialsSet() bool {
	if e == nil {
		return false
	}
	c := e.API.Credentials
	return c.Key != "" && c.Key != DefaultUnsetAPIKey &&
		c.Secret != "" && c.Secret != DefaultUnsetAPISecret
}

// SaveConfigToFile saves the config as indented JSON, file permissions are
// restricted as the file may hold credentials
func (c *Config) SaveConfigToFile(path string) error {
	if c == nil {
		return errConfigIsNil
	}
	payload, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func defaultTimeout(name, kind string, current, fallback time.Duration) time.Duration {
	if current > 0 {
		return current
	}
	log.Warnf(log.ConfigMgr, WarningHTTPTimeoutDefaulted, name, kind, fallback)
	return fallback
}

func isAbsoluteURL(raw, paramName string) vala.Checker {
	return func() (bool, string) {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return false, fmt.Sprintf("parameter %s is not an absolute URL: %q", paramName, raw)
		}
		return true, ""
	}
}

func isOptionalURL(raw, paramName string) vala.Checker {
	if raw == "" {
		return func() (bool, string) { return true, "" }
	}
	return isAbsoluteURL(raw, paramName)
}
