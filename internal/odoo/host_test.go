package odoo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHostDefaults(t *testing.T) {
	t.Setenv("ODOOCTL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	h, err := LoadHost()
	require.NoError(t, err)
	assert.Equal(t, "/etc/odoo", h.ConfigDir)
	assert.Equal(t, 8069, h.HTTPPortBase)
	assert.Equal(t, 9069, h.GeventPortBase)
	assert.Equal(t, "odoo", h.ServiceUser)
}

func TestLoadHostEnvOverride(t *testing.T) {
	t.Setenv("ODOOCTL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ODOOCTL_CONFIG_DIR", "/tmp/odoo-conf")
	t.Setenv("ODOOCTL_HTTP_PORT_BASE", "28069")
	h, err := LoadHost()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/odoo-conf", h.ConfigDir)
	assert.Equal(t, 28069, h.HTTPPortBase)
}

func TestLoadHostConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service_user: odoo17\ndb_port: 5433\n"), 0o600))
	t.Setenv("ODOOCTL_CONFIG", path)

	h, err := LoadHost()
	require.NoError(t, err)
	assert.Equal(t, "odoo17", h.ServiceUser)
	assert.Equal(t, 5433, h.DBPort)
}
