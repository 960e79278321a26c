package odoo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ServiceManager registers and removes the per-instance systemd unit.
type ServiceManager interface {
	// Install writes the unit file and reloads the service manager.
	Install(ctx context.Context, unitName string, content []byte) error
	// EnableNow enables the unit and starts it.
	EnableNow(ctx context.Context, unitName string) error
	// Remove stops and disables the unit if present, deletes the unit file
	// and reloads. Absence of any piece is not an error.
	Remove(ctx context.Context, unitName string) error
}

type systemdManager struct {
	host Host
	run  Runner
}

func NewServiceManager(host Host, run Runner) ServiceManager {
	return &systemdManager{host: host, run: run}
}

func (m *systemdManager) unitPath(unitName string) string {
	return filepath.Join(m.host.SystemdDir, unitName)
}

func (m *systemdManager) Install(ctx context.Context, unitName string, content []byte) error {
	if err := ensureDir(m.host.SystemdDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(m.unitPath(unitName), content, 0o644); err != nil {
		return fmt.Errorf("write unit %s: %w", unitName, err)
	}
	return m.run.Run(ctx, "systemctl", "daemon-reload")
}

func (m *systemdManager) EnableNow(ctx context.Context, unitName string) error {
	if err := m.run.Run(ctx, "systemctl", "enable", unitName); err != nil {
		return err
	}
	return m.run.Run(ctx, "systemctl", "start", unitName)
}

func (m *systemdManager) Remove(ctx context.Context, unitName string) error {
	path := m.unitPath(unitName)
	if !fileExists(path) {
		return nil
	}
	if err := m.run.Run(ctx, "systemctl", "stop", unitName); err != nil {
		return err
	}
	if err := m.run.Run(ctx, "systemctl", "disable", unitName); err != nil {
		return err
	}
	if err := removeIfExists(path); err != nil {
		return err
	}
	return m.run.Run(ctx, "systemctl", "daemon-reload")
}
