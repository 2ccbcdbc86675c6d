package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDashboardDefaults(t *testing.T) {
	cfg, err := LoadDashboard()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:10007", cfg.APIURL)
	assert.Equal(t, "/api/example/", cfg.BasePath)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, CloseOptimistic, cfg.ClosePolicy)
	assert.False(t, cfg.DemoMode)
}

func TestLoadDashboardOverrides(t *testing.T) {
	t.Setenv("NDA_API_BASE_PATH", "api/nda")
	t.Setenv("NDA_CLOSE_POLICY", "On-Response")
	t.Setenv("NDA_HTTP_TIMEOUT", "2s")

	cfg, err := LoadDashboard()
	require.NoError(t, err)

	assert.Equal(t, "/api/nda/", cfg.BasePath)
	assert.Equal(t, CloseOnResponse, cfg.ClosePolicy)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
}

func TestLoadDashboardRejectsUnknownPolicy(t *testing.T) {
	t.Setenv("NDA_CLOSE_POLICY", "whenever")

	_, err := LoadDashboard()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadBackendPeers(t *testing.T) {
	t.Setenv("NDA_BACKEND_PEERS", "O=A,L=X,C=GB;O=B,L=Y,C=US")

	cfg, err := LoadBackend()
	require.NoError(t, err)
	assert.Equal(t, []string{"O=A,L=X,C=GB", "O=B,L=Y,C=US"}, cfg.Peers)
}

func TestNormalizeBasePath(t *testing.T) {
	for in, want := range map[string]string{
		"":              "/",
		"/":             "/",
		"api/example":   "/api/example/",
		"/api/example/": "/api/example/",
	} {
		assert.Equal(t, want, NormalizeBasePath(in), in)
	}
}

func TestValidateAPIURL(t *testing.T) {
	assert.NoError(t, ValidateAPIURL("http://localhost:10007"))
	assert.Error(t, ValidateAPIURL(""))
	assert.Error(t, ValidateAPIURL("localhost:10007"))
	assert.Error(t, ValidateAPIURL("ftp://host"))
}
