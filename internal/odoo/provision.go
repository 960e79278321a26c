package odoo

import (
	"context"
	"fmt"
	"os/user"

	"go.uber.org/zap"
)

// hostPackages is everything an instance needs at the OS level: the
// database cluster, the Python toolchain and build deps for the
// application's wheels, the proxy, and the PDF renderer.
var hostPackages = []string{
	"postgresql",
	"python3-dev",
	"python3-venv",
	"python3-pip",
	"python3-wheel",
	"build-essential",
	"libxml2-dev",
	"libxslt1-dev",
	"libzip-dev",
	"libldap2-dev",
	"libsasl2-dev",
	"libjpeg-dev",
	"libpq-dev",
	"node-less",
	"nginx",
	"git",
	"wkhtmltopdf",
}

const communityRepo = "https://github.com/odoo/odoo.git"
const enterpriseRepo = "https://github.com/odoo/enterprise.git"

// Provision prepares the host once: system packages, the service OS user,
// the shared directories and the application source checkout. Every step
// checks for existing state first, so re-running is safe.
func (m *Manager) Provision(ctx context.Context, enterprise bool) error {
	m.Log.Info("installing system packages")
	if err := m.Run.Run(ctx, "apt-get", "update"); err != nil {
		return err
	}
	installArgs := append([]string{"install", "-y"}, hostPackages...)
	if err := m.Run.Run(ctx, "apt-get", installArgs...); err != nil {
		return err
	}

	if _, err := user.Lookup(m.Host.ServiceUser); err != nil {
		m.Log.Info("creating service user", zap.String("user", m.Host.ServiceUser))
		err := m.Run.Run(ctx, "adduser", "--system", "--quiet",
			"--home", m.Host.InstancesDir, "--group", m.Host.ServiceUser)
		if err != nil {
			return err
		}
	}

	for _, dir := range []string{
		m.Host.ConfigDir,
		m.Host.StateDir,
		m.Host.InstancesDir,
		m.Host.LogDir,
		m.Host.CertDir,
	} {
		if err := ensureDir(dir, 0o755); err != nil {
			return err
		}
	}
	if err := m.chownServiceUser(m.Host.LogDir); err != nil {
		return err
	}

	if !dirExists(m.Host.SourceDir) {
		m.Log.Info("cloning community source",
			zap.String("branch", m.Host.OdooVersion), zap.String("dir", m.Host.SourceDir))
		err := m.Run.Run(ctx, "git", "clone", "--depth", "1",
			"--branch", m.Host.OdooVersion, communityRepo, m.Host.SourceDir)
		if err != nil {
			return err
		}
	}

	if enterprise && !dirExists(m.Host.EnterpriseSourceDir) {
		// Requires GitHub credentials with access to the enterprise repo;
		// git prompts for them or picks them up from the credential helper.
		m.Log.Info("cloning enterprise source", zap.String("dir", m.Host.EnterpriseSourceDir))
		err := m.Run.Run(ctx, "git", "clone", "--depth", "1",
			"--branch", m.Host.OdooVersion, enterpriseRepo, m.Host.EnterpriseSourceDir)
		if err != nil {
			return err
		}
	}

	fmt.Println("host provisioned")
	fmt.Println("next: odooctl create")
	return nil
}
