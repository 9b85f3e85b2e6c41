package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/bfxrest/log"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err, "Load must not error")
	assert.Equal(t, DefaultExchangeName, c.Exchange.Name)
	assert.Equal(t, DefaultAPIURL, c.Exchange.API.URL)
	assert.Equal(t, defaultPublicTimeout, c.Exchange.PublicTimeout)
	assert.Equal(t, defaultPrivateTimeout, c.Exchange.PrivateTimeout)
	assert.Equal(t, defaultHTTPTimeout, c.Exchange.HTTPTimeout)
	assert.False(t, c.Exchange.CredentialsSet(), "placeholder credentials must not count as set")
	assert.Equal(t, log.GenDefaultSettings().Level, c.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"name": "trader",
		"exchange": {
			"verbose": true,
			"httpUserAgent": "bfxrest/1.0",
			"publicTimeout": "3s",
			"api": {"url": "http://127.0.0.1:8080", "credentials": {"key": "k", "secret": "s"}}
		},
		"logging": {"enabled": true, "level": "INFO|DEBUG", "output": "stderr"}
	}`)
	c, err := Load(path)
	require.NoError(t, err, "Load must not error")
	assert.Equal(t, "trader", c.Name)
	assert.True(t, c.Exchange.Verbose)
	assert.Equal(t, "bfxrest/1.0", c.Exchange.HTTPUserAgent)
	assert.Equal(t, time.Second*3, c.Exchange.PublicTimeout)
	assert.Equal(t, defaultPrivateTimeout, c.Exchange.PrivateTimeout, "unset values must fall back to defaults")
	assert.Equal(t, "http://127.0.0.1:8080", c.Exchange.API.URL)
	assert.True(t, c.Exchange.CredentialsSet())
	assert.Equal(t, "stderr", c.Logging.Output)

	path = writeConfig(t, "config.yaml", "exchange:\n  privateTimeout: 45s\n")
	c, err = Load(path)
	require.NoError(t, err, "Load must read YAML")
	assert.Equal(t, time.Second*45, c.Exchange.PrivateTimeout)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err, "Load must error on a missing file")
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("BFX_API_KEY", "envkey")
	t.Setenv("BFX_API_SECRET", "envsecret")
	t.Setenv("BFX_EXCHANGE_API_URL", "http://localhost:1337")
	t.Setenv("BFX_EXCHANGE_PRIVATETIMEOUT", "1m")

	c, err := Load("")
	require.NoError(t, err, "Load must not error")
	assert.Equal(t, "envkey", c.Exchange.API.Credentials.Key)
	assert.Equal(t, "envsecret", c.Exchange.API.Credentials.Secret)
	assert.Equal(t, "http://localhost:1337", c.Exchange.API.URL)
	assert.Equal(t, time.Minute, c.Exchange.PrivateTimeout)
}

func TestCheckExchangeConfigValues(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, (*Exchange)(nil).CheckExchangeConfigValues(), errExchangeIsNil)

	e := &Exchange{}
	require.NoError(t, e.CheckExchangeConfigValues())
	assert.Equal(t, DefaultExchangeName, e.Name)
	assert.Equal(t, DefaultAPIURL, e.API.URL)
	assert.Equal(t, defaultPublicTimeout, e.PublicTimeout)

	e = &Exchange{API: APIConfig{URL: "api.bitfinex.com"}}
	assert.ErrorContains(t, e.CheckExchangeConfigValues(), "api.url", "relative URL must be rejected")

	e = &Exchange{ProxyAddress: "::not a url"}
	assert.ErrorContains(t, e.CheckExchangeConfigValues(), "proxyAddress")

	e = &Exchange{ProxyAddress: "http://proxy:3128"}
	assert.NoError(t, e.CheckExchangeConfigValues())
}

func TestCredentialsSet(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		key, secret string
		exp         bool
	}{
		{"", "", false},
		{"k", "", false},
		{"", "s", false},
		{DefaultUnsetAPIKey, "s", false},
		{"k", DefaultUnsetAPISecret, false},
		{"k", "s", true},
	} {
		e := &Exchange{API: APIConfig{Credentials: APICredentialsConfig{Key: tc.key, Secret: tc.secret}}}
		assert.Equalf(t, tc.exp, e.CredentialsSet(), "CredentialsSet should return correctly for key %q secret %q", tc.key, tc.secret)
	}
	assert.False(t, (*Exchange)(nil).CredentialsSet())
}

func TestCheckLoggerConfig(t *testing.T) {
	t.Parallel()
	c := &Config{}
	require.NoError(t, c.CheckLoggerConfig())
	assert.Equal(t, log.GenDefaultSettings(), c.Logging, "empty logging must be replaced with defaults")

	c.Logging.Level = "LOUD"
	assert.ErrorIs(t, c.CheckLoggerConfig(), errInvalidLogConfig)

	c.Logging.Level = "INFO"
	c.Logging.Output = "file"
	assert.ErrorIs(t, c.CheckLoggerConfig(), errInvalidLogConfig)

	c.Logging.Output = "stdout"
	c.Logging.SubLoggers = []log.SubLoggerConfig{{Name: "requester", Level: "", Output: "stdout"}}
	assert.ErrorIs(t, c.CheckLoggerConfig(), errInvalidLogConfig)

	assert.ErrorIs(t, (*Config)(nil).CheckConfig(), errConfigIsNil)
}

func TestSaveConfigToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), File)
	require.NoError(t, DefaultConfig().SaveConfigToFile(path))

	c, err := Load(path)
	require.NoError(t, err, "a saved default config must load")
	assert.Equal(t, DefaultConfig().Exchange, c.Exchange)

	assert.ErrorIs(t, (*Config)(nil).SaveConfigToFile(path), errConfigIsNil)
}
