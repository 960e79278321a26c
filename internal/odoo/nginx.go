package odoo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// vhostData feeds the nginx vhost templates. All values come from typed
// fields; instance names and domains are validated before they get here.
type vhostData struct {
	VhostName     string
	Domain        string
	HTTPPort      int
	GeventPort    int
	UpstreamHTTP  string
	UpstreamChat  string
	ChallengeRoot string
	CertFile      string
	KeyFile       string
}

// ProxyManager owns the reverse-proxy site for an instance: one vhost file
// in sites-available, a symlink in sites-enabled, and a reload.
type ProxyManager interface {
	Apply(ctx context.Context, p Paths, content []byte) error
	// Remove deletes the enabled symlink and the vhost file, then reloads
	// if anything was actually removed.
	Remove(ctx context.Context, p Paths) error
}

type nginxManager struct {
	host Host
	run  Runner
}

func NewProxyManager(host Host, run Runner) ProxyManager {
	return &nginxManager{host: host, run: run}
}

func (m *nginxManager) Apply(ctx context.Context, p Paths, content []byte) error {
	if err := ensureDir(m.host.NginxAvailable, 0o755); err != nil {
		return err
	}
	if err := ensureDir(m.host.NginxEnabled, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(p.VhostAvailable, content, 0o644); err != nil {
		return fmt.Errorf("write vhost %s: %w", p.VhostName, err)
	}
	if _, err := os.Lstat(p.VhostEnabled); os.IsNotExist(err) {
		if err := os.Symlink(p.VhostAvailable, p.VhostEnabled); err != nil {
			return fmt.Errorf("enable vhost %s: %w", p.VhostName, err)
		}
	}
	return m.reload(ctx)
}

func (m *nginxManager) Remove(ctx context.Context, p Paths) error {
	removed := fileOrLinkExists(p.VhostEnabled) || fileOrLinkExists(p.VhostAvailable)
	if err := removeIfExists(p.VhostEnabled); err != nil {
		return err
	}
	if err := removeIfExists(p.VhostAvailable); err != nil {
		return err
	}
	if !removed {
		return nil
	}
	return m.reload(ctx)
}

func (m *nginxManager) reload(ctx context.Context) error {
	if err := m.run.Run(ctx, "nginx", "-t"); err != nil {
		return err
	}
	return m.run.Run(ctx, "systemctl", "reload", "nginx")
}

func fileOrLinkExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// challengeRoot is the webroot nginx serves ACME HTTP-01 tokens from.
func challengeRoot(host Host) string {
	return filepath.Join(host.CertDir, "webroot")
}
