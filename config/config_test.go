package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 89478485, cfg.Image.MaxPixels)
	assert.Empty(t, cfg.App.Proxies())
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,172.16.0.1 ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, cfg.App.Proxies())
}

func TestLoadRejectsInvalidTrustedProxy(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,lb.internal")

	_, err := Load()
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
}
