package odoo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHost(t *testing.T) Host {
	t.Helper()
	root := t.TempDir()
	host := DefaultHost()
	host.ConfigDir = filepath.Join(root, "etc", "odoo")
	host.StateDir = filepath.Join(root, "var", "lib", "odooctl")
	host.InstancesDir = filepath.Join(root, "opt", "odoo")
	host.LogDir = filepath.Join(root, "var", "log", "odoo")
	host.SourceDir = filepath.Join(root, "opt", "odoo", "odoo-server")
	host.EnterpriseSourceDir = filepath.Join(root, "opt", "odoo", "enterprise-server")
	host.NginxAvailable = filepath.Join(root, "etc", "nginx", "sites-available")
	host.NginxEnabled = filepath.Join(root, "etc", "nginx", "sites-enabled")
	host.SystemdDir = filepath.Join(root, "etc", "systemd", "system")
	host.CertDir = filepath.Join(root, "etc", "odooctl", "certs")
	host.HTTPPortBase = 18069
	host.GeventPortBase = 19069
	return host
}

func pathsAsSlice(p Paths) []string {
	return []string{
		p.InstanceDir, p.CustomAddons, p.EnterpriseAddons, p.Venv,
		p.ConfigFile, p.LogFile, p.StateFile, p.UnitFile,
		p.VhostAvailable, p.VhostEnabled,
	}
}

func TestResolvePathsEmbedName(t *testing.T) {
	r := NewRegistry(testHost(t))
	for _, name := range []string{"demo", "prod_2", "a-b"} {
		p := r.Resolve(name)
		for _, path := range pathsAsSlice(p) {
			assert.Contains(t, path, name)
		}
	}
}

func TestResolvePathsDisjointBetweenNames(t *testing.T) {
	r := NewRegistry(testHost(t))
	a := pathsAsSlice(r.Resolve("alpha"))
	b := pathsAsSlice(r.Resolve("beta"))
	for _, pa := range a {
		for _, pb := range b {
			assert.NotEqual(t, pa, pb)
		}
	}
}

func TestListScansConfigDir(t *testing.T) {
	host := testHost(t)
	r := NewRegistry(host)

	names, err := r.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, os.MkdirAll(host.ConfigDir, 0o755))
	for _, f := range []string{"odoo-beta.conf", "odoo-alpha.conf", "odoo.conf", "readme.txt", "odoo-bad!name.conf"} {
		require.NoError(t, os.WriteFile(filepath.Join(host.ConfigDir, f), nil, 0o600))
	}

	names, err = r.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestSelectOutOfRange(t *testing.T) {
	host := testHost(t)
	r := NewRegistry(host)

	_, err := r.Select(1)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	require.NoError(t, os.MkdirAll(host.ConfigDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(host.ConfigDir, "odoo-demo.conf"), nil, 0o600))

	name, err := r.Select(1)
	require.NoError(t, err)
	assert.Equal(t, "demo", name)

	_, err = r.Select(2)
	assert.True(t, errors.As(err, &nf))
	_, err = r.Select(0)
	assert.True(t, errors.As(err, &nf))
}

func TestValidateName(t *testing.T) {
	r := NewRegistry(testHost(t))
	for _, ok := range []string{"demo", "Demo_2", "a-b-c", "X"} {
		assert.NoError(t, r.ValidateName(ok))
	}
	var ve *ValidationError
	for _, bad := range []string{"", "has space", "semi;colon", "dot.name", "slash/name", "quote'"} {
		err := r.ValidateName(bad)
		assert.ErrorAs(t, err, &ve, "name %q", bad)
	}
}

func TestValidateDomainAndEmail(t *testing.T) {
	r := NewRegistry(testHost(t))

	assert.NoError(t, r.ValidateDomain("demo.example.com"))
	var ve *ValidationError
	assert.ErrorAs(t, r.ValidateDomain("not a domain"), &ve)
	assert.ErrorAs(t, r.ValidateDomain(""), &ve)

	assert.NoError(t, r.ValidateEmail("ops@example.com"))
	assert.ErrorAs(t, r.ValidateEmail("nope"), &ve)
	assert.ErrorAs(t, r.ValidateEmail(""), &ve)
}

func TestConfigFileNamingConvention(t *testing.T) {
	r := NewRegistry(testHost(t))
	p := r.Resolve("demo")
	assert.True(t, strings.HasSuffix(p.ConfigFile, "odoo-demo.conf"))
	assert.Equal(t, "odoo-demo.service", p.UnitName)
	assert.Equal(t, "odoo-demo", p.UpstreamHTTP)
	assert.Equal(t, "odoo-demo-chat", p.UpstreamChat)
}
