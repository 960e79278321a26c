package odoo

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoOptions() CreateOptions {
	return CreateOptions{Name: "demo", Domain: "demo.example.com"}
}

func TestCreateEndToEnd(t *testing.T) {
	fx := newTestManager(t)
	ctx := context.Background()

	res, err := fx.m.Create(ctx, demoOptions())
	require.NoError(t, err)

	p := fx.m.Registry.Resolve("demo")

	// Two distinct ports at or above their bases, persisted in the config.
	assert.GreaterOrEqual(t, res.HTTPPort, fx.m.Host.HTTPPortBase)
	assert.GreaterOrEqual(t, res.GeventPort, fx.m.Host.GeventPortBase)
	assert.NotEqual(t, res.HTTPPort, res.GeventPort)

	httpPort, geventPort, err := ReadConfPorts(p.ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, res.HTTPPort, httpPort)
	assert.Equal(t, res.GeventPort, geventPort)

	// Config is owner-only and holds both secrets.
	info, err := os.Stat(p.ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	conf, err := os.ReadFile(p.ConfigFile)
	require.NoError(t, err)
	assert.Contains(t, string(conf), res.AdminSecret)
	assert.Contains(t, string(conf), res.DBSecret)

	// Unit installed, enabled and started.
	assert.FileExists(t, p.UnitFile)
	unit, err := os.ReadFile(p.UnitFile)
	require.NoError(t, err)
	assert.Contains(t, string(unit), "Restart=on-failure")
	assert.Contains(t, string(unit), "-c "+p.ConfigFile)
	assert.True(t, fx.run.saw("systemctl enable odoo-demo.service"))
	assert.True(t, fx.run.saw("systemctl start odoo-demo.service"))

	// Proxy routes the domain to both ports and is enabled.
	vhost, err := os.ReadFile(p.VhostAvailable)
	require.NoError(t, err)
	assert.Contains(t, string(vhost), "demo.example.com")
	assert.Contains(t, string(vhost), fmt.Sprintf("127.0.0.1:%d", res.HTTPPort))
	assert.Contains(t, string(vhost), fmt.Sprintf("127.0.0.1:%d", res.GeventPort))
	link, err := os.Readlink(p.VhostEnabled)
	require.NoError(t, err)
	assert.Equal(t, p.VhostAvailable, link)
	assert.True(t, fx.run.saw("systemctl reload nginx"))

	// Database role created with the generated secret.
	assert.Equal(t, res.DBSecret, fx.db.roles["demo"])

	// Runtime environment built through the injected runner.
	assert.True(t, fx.run.saw("python3 -m venv"))
	assert.True(t, fx.run.saw("install -r"))

	// Instance visible in the listing with its ports.
	infos, err := fx.m.Instances()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "demo", infos[0].Name)
	assert.Equal(t, res.HTTPPort, infos[0].HTTPPort)
	assert.Equal(t, "demo.example.com", infos[0].Domain)
}

func TestCreateTwiceFailsOnRole(t *testing.T) {
	fx := newTestManager(t)
	ctx := context.Background()

	_, err := fx.m.Create(ctx, demoOptions())
	require.NoError(t, err)

	_, err = fx.m.Create(ctx, demoOptions())
	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
}

func TestCreateRejectsBadInputs(t *testing.T) {
	fx := newTestManager(t)
	ctx := context.Background()
	var ve *ValidationError

	_, err := fx.m.Create(ctx, CreateOptions{Name: "bad name", Domain: "demo.example.com"})
	assert.ErrorAs(t, err, &ve)

	_, err = fx.m.Create(ctx, CreateOptions{Name: "demo", Domain: "not a domain"})
	assert.ErrorAs(t, err, &ve)

	_, err = fx.m.Create(ctx, CreateOptions{Name: "demo", Domain: "demo.example.com", SSL: true, Email: "nope"})
	assert.ErrorAs(t, err, &ve)

	// Nothing was provisioned for any of the rejected requests.
	names, err := fx.m.Registry.List()
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Empty(t, fx.db.roles)
}

func TestCreateWithSSL(t *testing.T) {
	fx := newTestManager(t)
	ctx := context.Background()

	opts := demoOptions()
	opts.SSL = true
	opts.Email = "ops@example.com"
	res, err := fx.m.Create(ctx, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"demo.example.com"}, fx.issuer.obtained)
	assert.NotEmpty(t, res.CertFile)

	p := fx.m.Registry.Resolve("demo")
	vhost, err := os.ReadFile(p.VhostAvailable)
	require.NoError(t, err)
	assert.Contains(t, string(vhost), "listen 443 ssl;")
	assert.Contains(t, string(vhost), res.CertFile)
	assert.Contains(t, string(vhost), "Strict-Transport-Security")

	conf, err := os.ReadFile(p.ConfigFile)
	require.NoError(t, err)
	assert.Contains(t, string(conf), "proxy_mode = True")
	assert.Contains(t, string(conf), "dbfilter = ^demo.*$")
}

func TestCreateWithEnterpriseAddons(t *testing.T) {
	fx := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(fx.m.Host.EnterpriseSourceDir, 0o755))
	require.NoError(t, os.WriteFile(
		fx.m.Host.EnterpriseSourceDir+"/module.py", []byte("pass\n"), 0o644))

	opts := demoOptions()
	opts.Enterprise = true
	_, err := fx.m.Create(ctx, opts)
	require.NoError(t, err)

	p := fx.m.Registry.Resolve("demo")
	assert.FileExists(t, p.EnterpriseAddons+"/module.py")

	conf, err := os.ReadFile(p.ConfigFile)
	require.NoError(t, err)
	assert.Contains(t, string(conf), p.EnterpriseAddons)
}

func TestCreateEnterpriseWithoutSourceFails(t *testing.T) {
	fx := newTestManager(t)
	opts := demoOptions()
	opts.Enterprise = true

	_, err := fx.m.Create(context.Background(), opts)
	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
}

func TestCreateFailsFastOnRuntimeSetup(t *testing.T) {
	fx := newTestManager(t)
	fx.run.failOn = "install -r"

	_, err := fx.m.Create(context.Background(), demoOptions())
	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)

	// Fail-fast, no rollback: the role from step 2 is still there.
	assert.Contains(t, fx.db.roles, "demo")
	// But the config was never written, so the registry does not list it.
	names, listErr := fx.m.Registry.List()
	require.NoError(t, listErr)
	assert.Empty(t, names)
}
