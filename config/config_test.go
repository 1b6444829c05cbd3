package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primecut/storefront/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := config.LoadConfig("")
	assert.Equal(t, "storefront", cfg.System.Appid)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.Equal(t, "raise", cfg.Checkout.QuantityPolicy)
	assert.Equal(t, 15*time.Second, cfg.Checkout.Timeout)
}

func TestLoadConfigFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "storefront.yml")
	body := `
web:
  port: 9090
checkout:
  quantity_policy: snap
  catalog_url: https://sheets.example.com/catalog
`
	require.NoError(t, os.WriteFile(cfile, []byte(body), 0644))

	cfg := config.LoadConfig(cfile)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "snap", cfg.Checkout.QuantityPolicy)
	assert.Equal(t, "https://sheets.example.com/catalog", cfg.Checkout.CatalogURL)
	// Untouched sections keep defaults.
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_WEB_PORT", "8088")
	t.Setenv("STOREFRONT_DB_HOST", "db.internal")
	t.Setenv("STOREFRONT_SYSTEM_DEBUG", "false")

	cfg := config.LoadConfig("")
	assert.Equal(t, 8088, cfg.Web.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.False(t, cfg.System.Debug)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg := config.LoadConfig("/nonexistent/storefront.yml")
	assert.Equal(t, 1816, cfg.Web.Port)
}
