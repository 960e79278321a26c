package odoo

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// Manager sequences the instance lifecycle: create, remove, list. All side
// effects go through the injected adapters, so every step can be faked in
// tests. Operations are sequential and fail fast; a mid-create failure
// leaves a partially provisioned instance for Remove to clean up.
type Manager struct {
	Host     Host
	Registry *Registry
	DB       DatabaseAdmin
	Services ServiceManager
	Proxy    ProxyManager
	Certs    CertificateIssuer
	Run      Runner
	Log      *zap.Logger
}

// NewManager wires the production adapters around host. The database
// connection is established eagerly; commands that never touch the
// cluster build their own Registry instead.
func NewManager(host Host, log *zap.Logger) (*Manager, error) {
	db, err := NewDatabaseAdmin(host)
	if err != nil {
		return nil, err
	}
	run := NewRunner(log)
	return &Manager{
		Host:     host,
		Registry: NewRegistry(host),
		DB:       db,
		Services: NewServiceManager(host, run),
		Proxy:    NewProxyManager(host, run),
		Certs:    NewCertificateIssuer(host, log),
		Run:      run,
		Log:      log,
	}, nil
}

// InstanceInfo is one row of the instance listing.
type InstanceInfo struct {
	Name       string
	HTTPPort   int
	GeventPort int
	Domain     string
	SSL        bool
}

// Instances combines the registry scan with the persisted ports and the
// advisory state sidecar. A missing or unreadable sidecar leaves the
// domain and SSL columns empty rather than failing the listing.
func (m *Manager) Instances() ([]InstanceInfo, error) {
	names, err := m.Registry.List()
	if err != nil {
		return nil, err
	}
	infos := make([]InstanceInfo, 0, len(names))
	for _, name := range names {
		p := m.Registry.Resolve(name)
		info := InstanceInfo{Name: name}
		if httpPort, geventPort, err := ReadConfPorts(p.ConfigFile); err == nil {
			info.HTTPPort = httpPort
			info.GeventPort = geventPort
		}
		if st, err := readState(p.StateFile); err == nil {
			info.Domain = st.Domain
			info.SSL = st.SSL
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// chownServiceUser hands path (recursively for directories) to the service
// OS user. On hosts where the user does not exist yet, such as test
// sandboxes, it logs and leaves ownership alone.
func (m *Manager) chownServiceUser(path string) error {
	u, err := user.Lookup(m.Host.ServiceUser)
	if err != nil {
		m.Log.Warn("service user missing, keeping current ownership",
			zap.String("user", m.Host.ServiceUser))
		return nil
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return err
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return err
	}
	return filepath.Walk(path, func(p string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		return os.Chown(p, uid, gid)
	})
}
