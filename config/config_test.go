package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/masnyjimmy/blogapi/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", settings.Server.Addr)
	assert.Equal(t, []string{"*"}, settings.Server.CORSOrigins)
	assert.Equal(t, 15*time.Minute, settings.JWT.AccessTTL)
	assert.Equal(t, 24*time.Hour, settings.JWT.RefreshTTL)
	assert.Equal(t, 10, settings.API.PageSize)
	assert.Equal(t, "Blog API", settings.Schema.Title)
	assert.Equal(t, "1.0.0", settings.Schema.Version)
	assert.Equal(t, "^/api/v1", settings.Schema.PathPrefix)
	assert.True(t, settings.UI.DeepLinking)
	assert.True(t, settings.UI.PersistAuthorization)
	assert.False(t, settings.UI.DisplayOperationId)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
jwt:
  secret: file-secret
  access_ttl: 5m
schema:
  title: Custom API
api:
  page_size: 25
`), 0o644))

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", settings.Server.Addr)
	assert.Equal(t, "file-secret", settings.JWT.Secret)
	assert.Equal(t, 5*time.Minute, settings.JWT.AccessTTL)
	assert.Equal(t, "Custom API", settings.Schema.Title)
	assert.Equal(t, 25, settings.API.PageSize)

	// unset keys keep their defaults
	assert.Equal(t, 24*time.Hour, settings.JWT.RefreshTTL)
	assert.Equal(t, "^/api/v1", settings.Schema.PathPrefix)
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: valid"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
