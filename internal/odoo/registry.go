package odoo

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	confPrefix = "odoo-"
	confSuffix = ".conf"
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Paths is the full set of on-disk and service identifiers derived from an
// instance name. Every field is a pure function of the name and the host
// layout; nothing here is ever stored.
type Paths struct {
	Name string

	InstanceDir      string
	CustomAddons     string
	EnterpriseAddons string
	Venv             string

	ConfigFile string
	LogFile    string
	StateFile  string

	UnitName string
	UnitFile string

	VhostName      string
	VhostAvailable string
	VhostEnabled   string

	UpstreamHTTP string
	UpstreamChat string
}

// Registry derives per-instance identifiers and enumerates existing
// instances by scanning the config directory. It is the single source of
// truth for the naming convention.
type Registry struct {
	host     Host
	validate *validator.Validate
}

func NewRegistry(host Host) *Registry {
	return &Registry{
		host:     host,
		validate: validator.New(),
	}
}

// Resolve derives the identifiers for name. It never touches disk and does
// not check that the instance exists.
func (r *Registry) Resolve(name string) Paths {
	dir := filepath.Join(r.host.InstancesDir, name)
	service := confPrefix + name
	return Paths{
		Name:             name,
		InstanceDir:      dir,
		CustomAddons:     filepath.Join(dir, "custom-addons"),
		EnterpriseAddons: filepath.Join(dir, "enterprise-addons"),
		Venv:             filepath.Join(dir, "venv"),
		ConfigFile:       filepath.Join(r.host.ConfigDir, service+confSuffix),
		LogFile:          filepath.Join(r.host.LogDir, service+".log"),
		StateFile:        filepath.Join(r.host.StateDir, name+".yml"),
		UnitName:         service + ".service",
		UnitFile:         filepath.Join(r.host.SystemdDir, service+".service"),
		VhostName:        service,
		VhostAvailable:   filepath.Join(r.host.NginxAvailable, service),
		VhostEnabled:     filepath.Join(r.host.NginxEnabled, service),
		UpstreamHTTP:     service,
		UpstreamChat:     service + "-chat",
	}
}

// List returns the names of all registered instances, sorted, by scanning
// the config directory for files matching the odoo-<name>.conf convention.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.host.ConfigDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %s: %w", r.host.ConfigDir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if !strings.HasPrefix(n, confPrefix) || !strings.HasSuffix(n, confSuffix) {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(n, confPrefix), confSuffix)
		if nameRe.MatchString(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether name is currently registered.
func (r *Registry) Exists(name string) (bool, error) {
	names, err := r.List()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// Select resolves a 1-based index from the current listing, for interactive
// removal. Returns NotFoundError when there are no instances or the index
// is out of range.
func (r *Registry) Select(index int) (string, error) {
	names, err := r.List()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", &NotFoundError{}
	}
	if index < 1 || index > len(names) {
		return "", &NotFoundError{Name: fmt.Sprintf("#%d", index)}
	}
	return names[index-1], nil
}

// ValidateName enforces the instance name character class. The name is used
// verbatim as a database role, a path component and a service name, so
// nothing outside [A-Za-z0-9_-] is allowed.
func (r *Registry) ValidateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Value: name, Reason: "must not be empty"}
	}
	if !nameRe.MatchString(name) {
		return &ValidationError{Field: "name", Value: name, Reason: "only letters, digits, '_' and '-' are allowed"}
	}
	return nil
}

func (r *Registry) ValidateDomain(domain string) error {
	if err := r.validate.Var(domain, "required,fqdn"); err != nil {
		return &ValidationError{Field: "domain", Value: domain, Reason: "not a fully-qualified hostname"}
	}
	return nil
}

func (r *Registry) ValidateEmail(email string) error {
	if err := r.validate.Var(email, "required,email"); err != nil {
		return &ValidationError{Field: "email", Value: email, Reason: "not a valid email address"}
	}
	return nil
}
