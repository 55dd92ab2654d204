package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{
		"endpoint_addr": ":9999",
		"database_dsn": "postgres://json/db",
		"secret_key": "json-secret",
		"access_token_validity_duration": "5m",
		"refresh_token_validity_duration": "168h",
		"verification_token_validity_duration": "24h",
		"reset_token_validity_duration": "10m",
		"require_email_verification": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	origArgs := os.Args
	os.Args = []string{"server", "-c", path}
	defer func() { os.Args = origArgs }()

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":9999", c.EndpointAddr)
	assert.Equal(t, "postgres://json/db", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 5*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 168*time.Hour, c.RefreshTokenValidityDuration)
	assert.Equal(t, 10*time.Minute, c.ResetTokenValidityDuration)
	assert.True(t, c.RequireEmailVerification)
}

func TestParseJson_NoFileFlagIsNoop(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"server"}
	defer func() { os.Args = origArgs }()

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":4000", c.EndpointAddr)
}
