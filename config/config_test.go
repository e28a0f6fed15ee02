package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParse(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 15
store:
  driver: memory
identity:
  cache_ttl: 60
cors:
  allow_origins: ["https://example.org"]
`)

	c, err := parse(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 15*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, c.Server.WriteTimeout, "默认值应保留")
	assert.Equal(t, time.Minute, c.Identity.CacheTTL)
	assert.Equal(t, DriverMemory, c.Store.Driver)
	assert.Equal(t, []string{"https://example.org"}, c.CORS.AllowOrigins)
	assert.Equal(t, "0.0.0.0:9090", c.Server.Addr())
}

func TestParseEnvOverride(t *testing.T) {
	path := writeConfig(t, "store:\n  driver: memory\n")
	t.Setenv("DATABASE_HOST", "db.internal")

	c, err := parse(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", c.Database.Host)
}

func TestParseUnknownDriver(t *testing.T) {
	path := writeConfig(t, "store:\n  driver: mongo\n")

	_, err := parse(path)
	assert.Error(t, err)
}

func TestParseMissingFile(t *testing.T) {
	_, err := parse(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
