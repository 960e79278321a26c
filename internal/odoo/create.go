package odoo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const secretLength = 16

// CreateOptions carries the user's answers for a new instance.
type CreateOptions struct {
	Name       string
	Domain     string
	Enterprise bool
	SSL        bool
	Email      string
}

// CreateResult is the only durable record of the generated secrets; they
// are printed once and otherwise live only inside the instance config and
// the database role.
type CreateResult struct {
	Name        string
	Domain      string
	SSL         bool
	HTTPPort    int
	GeventPort  int
	AdminSecret string
	DBSecret    string
	Paths       Paths
	CertFile    string
}

// Create provisions a new instance end to end: role, directory tree,
// runtime, ports, config, unit, vhost and optionally a certificate. Steps
// run in order and fail fast with no rollback; a failed create is cleaned
// up manually or with Remove.
func (m *Manager) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	if err := m.Registry.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if err := m.Registry.ValidateDomain(opts.Domain); err != nil {
		return nil, err
	}
	if opts.SSL {
		if err := m.Registry.ValidateEmail(opts.Email); err != nil {
			return nil, err
		}
	}
	p := m.Registry.Resolve(opts.Name)

	adminSecret, err := GenerateSecret(secretLength)
	if err != nil {
		return nil, err
	}
	dbSecret, err := GenerateSecret(secretLength)
	if err != nil {
		return nil, err
	}

	m.Log.Info("creating database role", zap.String("role", opts.Name))
	if err := m.DB.CreateRole(ctx, opts.Name, dbSecret); err != nil {
		return nil, err
	}

	m.Log.Info("creating instance directories", zap.String("dir", p.InstanceDir))
	if err := ensureDir(p.CustomAddons, 0o755); err != nil {
		return nil, err
	}
	if opts.Enterprise {
		if !dirExists(m.Host.EnterpriseSourceDir) {
			return nil, &DependencyError{
				Step: "enterprise addons",
				Err:  fmt.Errorf("enterprise source tree missing at %s", m.Host.EnterpriseSourceDir),
			}
		}
		if err := copyTree(m.Host.EnterpriseSourceDir, p.EnterpriseAddons); err != nil {
			return nil, &DependencyError{Step: "enterprise addons", Err: err}
		}
	}

	m.Log.Info("building runtime environment", zap.String("venv", p.Venv))
	if err := m.Run.Run(ctx, "python3", "-m", "venv", p.Venv); err != nil {
		return nil, &DependencyError{Step: "create venv", Err: err}
	}
	pip := filepath.Join(p.Venv, "bin", "pip3")
	requirements := filepath.Join(m.Host.SourceDir, "requirements.txt")
	if err := m.Run.Run(ctx, pip, "install", "--upgrade", "pip", "wheel"); err != nil {
		return nil, &DependencyError{Step: "upgrade pip", Err: err}
	}
	if err := m.Run.Run(ctx, pip, "install", "-r", requirements); err != nil {
		return nil, &DependencyError{Step: "install requirements", Err: err}
	}

	httpPort, err := FindFreePort(m.Host.HTTPPortBase)
	if err != nil {
		return nil, err
	}
	geventPort, err := FindFreePort(m.Host.GeventPortBase)
	if err != nil {
		return nil, err
	}
	if geventPort == httpPort {
		// Probe closes its listener, so overlapping bases can hand out the
		// same port twice within one run.
		if geventPort, err = FindFreePort(geventPort + 1); err != nil {
			return nil, err
		}
	}
	m.Log.Info("allocated ports", zap.Int("http", httpPort), zap.Int("gevent", geventPort))

	cfg := newInstanceConfig(m.Host, p)
	cfg.AdminSecret = adminSecret
	cfg.DBSecret = dbSecret
	cfg.HTTPPort = httpPort
	cfg.GeventPort = geventPort
	if opts.Enterprise {
		cfg.AddonsPath = append([]string{p.EnterpriseAddons}, cfg.AddonsPath...)
	}
	if opts.SSL {
		cfg.ProxyMode = true
		cfg.DBFilter = fmt.Sprintf("^%s.*$", opts.Name)
	}
	confText, err := cfg.Render()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(m.Host.ConfigDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(p.ConfigFile, confText, 0o600); err != nil {
		return nil, fmt.Errorf("write config %s: %w", p.ConfigFile, err)
	}
	if err := ensureDir(m.Host.LogDir, 0o755); err != nil {
		return nil, err
	}
	if err := m.chownServiceUser(p.ConfigFile); err != nil {
		return nil, err
	}
	if err := m.chownServiceUser(p.InstanceDir); err != nil {
		return nil, err
	}

	m.Log.Info("registering service", zap.String("unit", p.UnitName))
	unitText, err := renderTemplate("odoo.service.tmpl", struct {
		Name       string
		VhostName  string
		User       string
		Venv       string
		SourceDir  string
		ConfigFile string
	}{
		Name:       opts.Name,
		VhostName:  p.VhostName,
		User:       m.Host.ServiceUser,
		Venv:       p.Venv,
		SourceDir:  m.Host.SourceDir,
		ConfigFile: p.ConfigFile,
	})
	if err != nil {
		return nil, err
	}
	if err := m.Services.Install(ctx, p.UnitName, unitText); err != nil {
		return nil, err
	}
	if err := m.Services.EnableNow(ctx, p.UnitName); err != nil {
		return nil, err
	}

	m.Log.Info("writing proxy configuration", zap.String("domain", opts.Domain))
	vhost := vhostData{
		VhostName:     p.VhostName,
		Domain:        opts.Domain,
		HTTPPort:      httpPort,
		GeventPort:    geventPort,
		UpstreamHTTP:  p.UpstreamHTTP,
		UpstreamChat:  p.UpstreamChat,
		ChallengeRoot: challengeRoot(m.Host),
	}
	site, err := renderTemplate("vhost-http.tmpl", vhost)
	if err != nil {
		return nil, err
	}
	if err := m.Proxy.Apply(ctx, p, site); err != nil {
		return nil, err
	}

	result := &CreateResult{
		Name:        opts.Name,
		Domain:      opts.Domain,
		SSL:         opts.SSL,
		HTTPPort:    httpPort,
		GeventPort:  geventPort,
		AdminSecret: adminSecret,
		DBSecret:    dbSecret,
		Paths:       p,
	}

	if opts.SSL {
		cert, err := m.Certs.Obtain(ctx, opts.Domain, opts.Email)
		if err != nil {
			return nil, err
		}
		vhost.CertFile = cert.CertFile
		vhost.KeyFile = cert.KeyFile
		site, err := renderTemplate("vhost-https.tmpl", vhost)
		if err != nil {
			return nil, err
		}
		if err := m.Proxy.Apply(ctx, p, site); err != nil {
			return nil, err
		}
		result.CertFile = cert.CertFile
	}

	st := InstanceState{
		Name:       opts.Name,
		Domain:     opts.Domain,
		SSL:        opts.SSL,
		Enterprise: opts.Enterprise,
		CreatedAt:  time.Now().UTC(),
	}
	if err := writeState(p.StateFile, st); err != nil {
		return nil, err
	}

	m.Log.Info("instance created", zap.String("name", opts.Name))
	return result, nil
}
