package odoo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveDeletesEverything(t *testing.T) {
	fx := newTestManager(t)
	ctx := context.Background()

	_, err := fx.m.Create(ctx, demoOptions())
	require.NoError(t, err)
	p := fx.m.Registry.Resolve("demo")

	// Simulate the instance having created two databases plus a stray
	// ownership of the administrative database.
	fx.db.owned["demo"] = []string{"demo", "demo_test", "postgres"}

	require.NoError(t, fx.m.Remove(ctx, "demo"))

	assert.NoFileExists(t, p.ConfigFile)
	assert.NoFileExists(t, p.UnitFile)
	assert.NoFileExists(t, p.StateFile)
	assert.NoDirExists(t, p.InstanceDir)
	assert.NoFileExists(t, p.VhostAvailable)
	assert.NoFileExists(t, p.VhostEnabled)

	assert.True(t, fx.run.saw("systemctl stop odoo-demo.service"))
	assert.True(t, fx.run.saw("systemctl disable odoo-demo.service"))

	assert.NotContains(t, fx.db.roles, "demo")
	assert.NotContains(t, fx.db.owned["demo"], "demo")
	assert.NotContains(t, fx.db.owned["demo"], "demo_test")
	// The administrative database is never dropped.
	assert.Contains(t, fx.db.owned["demo"], "postgres")
}

func TestRemoveThenList(t *testing.T) {
	fx := newTestManager(t)
	ctx := context.Background()

	_, err := fx.m.Create(ctx, demoOptions())
	require.NoError(t, err)
	_, err = fx.m.Create(ctx, CreateOptions{Name: "other", Domain: "other.example.com"})
	require.NoError(t, err)

	require.NoError(t, fx.m.Remove(ctx, "demo"))

	names, err := fx.m.Registry.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, names)
}

func TestRemoveIsIdempotent(t *testing.T) {
	fx := newTestManager(t)
	ctx := context.Background()

	_, err := fx.m.Create(ctx, demoOptions())
	require.NoError(t, err)

	require.NoError(t, fx.m.Remove(ctx, "demo"))

	// Second removal finds nothing and succeeds without touching systemctl
	// or nginx again.
	calls := len(fx.run.calls)
	require.NoError(t, fx.m.Remove(ctx, "demo"))
	assert.Equal(t, calls, len(fx.run.calls))
}

func TestRemoveValidatesName(t *testing.T) {
	fx := newTestManager(t)
	var ve *ValidationError
	err := fx.m.Remove(context.Background(), "../etc")
	require.ErrorAs(t, err, &ve)
}
