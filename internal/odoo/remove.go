package odoo

import (
	"context"

	"go.uber.org/zap"
)

// systemDatabase is PostgreSQL's own administrative database. Dropping it
// would break the cluster, so removal skips it even if the instance role
// somehow ended up owning it.
const systemDatabase = "postgres"

// Remove tears down every artifact derivable from name: service unit,
// all databases owned by the role, the role itself, config, directory
// tree, log, state sidecar and proxy configuration. Each deletion checks
// existence first, so removing an already-removed instance is a no-op.
// Failures abort the remaining steps, leaving a partially removed
// instance; re-running continues where it left off.
func (m *Manager) Remove(ctx context.Context, name string) error {
	if err := m.Registry.ValidateName(name); err != nil {
		return err
	}
	p := m.Registry.Resolve(name)

	m.Log.Info("stopping service", zap.String("unit", p.UnitName))
	if err := m.Services.Remove(ctx, p.UnitName); err != nil {
		return err
	}

	databases, err := m.DB.OwnedDatabases(ctx, name)
	if err != nil {
		return err
	}
	for _, db := range databases {
		if db == systemDatabase {
			m.Log.Warn("skipping system database", zap.String("database", db))
			continue
		}
		m.Log.Info("dropping database", zap.String("database", db))
		if err := m.DB.DropDatabase(ctx, db); err != nil {
			return err
		}
	}
	if err := m.DB.DropRole(ctx, name); err != nil {
		return err
	}

	for _, path := range []string{p.ConfigFile, p.InstanceDir, p.LogFile, p.StateFile} {
		if err := removeIfExists(path); err != nil {
			return err
		}
	}

	if err := m.Proxy.Remove(ctx, p); err != nil {
		return err
	}

	m.Log.Info("instance removed", zap.String("name", name))
	return nil
}
