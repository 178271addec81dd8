package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	dir := t.TempDir()

	c1, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c1)
	assert.Equal(t, defaultProxyURL, c1.ProxyURL)

	c1.ProxyURL = "https://proxy.example.com"
	c1.CacheTTLHours = 6
	c1.ListLimit = 25

	err = Save(dir, c1)
	require.NoError(t, err)

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c2)
	assert.Equal(t, c1.ProxyURL, c2.ProxyURL)
	assert.Equal(t, c1.CacheTTLHours, c2.CacheTTLHours)
	assert.Equal(t, c1.ListLimit, c2.ListLimit)
}

func TestConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("proxy_url: \"\"\n"), fileMode))

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, defaultProxyURL, c.ProxyURL)
	assert.Equal(t, defaultCacheTTLHours, c.CacheTTLHours)
	assert.Equal(t, defaultListLimit, c.ListLimit)
}

func TestConfig_EmptyDir(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)

	assert.Error(t, Save("", getDefaultConfig()))
	assert.Error(t, Save(t.TempDir(), nil))
}

func TestCacheTTL(t *testing.T) {
	c := &Config{CacheTTLHours: 6}
	assert.Equal(t, 6*time.Hour, c.CacheTTL())
}
