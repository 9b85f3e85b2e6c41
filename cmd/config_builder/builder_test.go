package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/bfxrest/config"
)

func TestBuildStdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, build(&buf, ""))
	assert.Contains(t, buf.String(), config.DefaultAPIURL)
}

func TestBuildFileLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, build(nil, path))

	t.Setenv("BFX_API_KEY", "")
	t.Setenv("BFX_API_SECRET", "")
	cfg, err := config.Load(path)
	require.NoError(t, err, "a built config must load")
	assert.Equal(t, config.DefaultExchange(), cfg.Exchange)
}
