package odoo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// fakeRunner records every invocation and succeeds unless failOn matches
// the command line.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []string
	failOn string
}

func (r *fakeRunner) record(name string, args ...string) string {
	line := name + " " + strings.Join(args, " ")
	r.mu.Lock()
	r.calls = append(r.calls, line)
	r.mu.Unlock()
	return line
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	line := r.record(name, args...)
	if r.failOn != "" && strings.Contains(line, r.failOn) {
		return &ExternalToolError{Tool: name, Args: args, Err: fmt.Errorf("simulated failure")}
	}
	return nil
}

func (r *fakeRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	return "", r.Run(ctx, name, args...)
}

func (r *fakeRunner) saw(fragment string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range r.calls {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

// fakeDB keeps roles and database ownership in memory.
type fakeDB struct {
	roles map[string]string
	owned map[string][]string
}

func newFakeDB() *fakeDB {
	return &fakeDB{roles: map[string]string{}, owned: map[string][]string{}}
}

func (d *fakeDB) Ping(context.Context) error { return nil }

func (d *fakeDB) CreateRole(_ context.Context, name, password string) error {
	if _, ok := d.roles[name]; ok {
		return &DatabaseError{Op: "create role", Err: fmt.Errorf("role %q already exists", name)}
	}
	d.roles[name] = password
	return nil
}

func (d *fakeDB) DropRole(_ context.Context, name string) error {
	delete(d.roles, name)
	return nil
}

func (d *fakeDB) OwnedDatabases(_ context.Context, role string) ([]string, error) {
	return append([]string(nil), d.owned[role]...), nil
}

func (d *fakeDB) DropDatabase(_ context.Context, name string) error {
	for role, dbs := range d.owned {
		kept := dbs[:0]
		for _, db := range dbs {
			if db != name {
				kept = append(kept, db)
			}
		}
		d.owned[role] = kept
	}
	return nil
}

// fakeIssuer writes nothing; it just hands back fixed paths.
type fakeIssuer struct {
	obtained []string
}

func (i *fakeIssuer) Obtain(_ context.Context, domain, _ string) (Certificate, error) {
	i.obtained = append(i.obtained, domain)
	return Certificate{
		CertFile: filepath.Join("/certs", domain, "fullchain.pem"),
		KeyFile:  filepath.Join("/certs", domain, "privkey.pem"),
	}, nil
}

type testFixture struct {
	m      *Manager
	db     *fakeDB
	run    *fakeRunner
	issuer *fakeIssuer
}

func newTestManager(t *testing.T) *testFixture {
	t.Helper()
	host := testHost(t)
	db := newFakeDB()
	run := &fakeRunner{}
	issuer := &fakeIssuer{}
	m := &Manager{
		Host:     host,
		Registry: NewRegistry(host),
		DB:       db,
		Services: NewServiceManager(host, run),
		Proxy:    NewProxyManager(host, run),
		Certs:    issuer,
		Run:      run,
		Log:      zap.NewNop(),
	}
	return &testFixture{m: m, db: db, run: run, issuer: issuer}
}
