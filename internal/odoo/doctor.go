package odoo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
)

// Doctor prints a host health report. Checks warn instead of failing so
// the whole table always renders.
func (m *Manager) Doctor(ctx context.Context) error {
	fmt.Println("odooctl doctor")
	fmt.Printf("runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	checks := []struct {
		name string
		fn   func() error
	}{
		{"psql binary", func() error {
			_, err := exec.LookPath("psql")
			return err
		}},
		{"nginx binary", func() error {
			_, err := exec.LookPath("nginx")
			return err
		}},
		{"git binary", func() error {
			_, err := exec.LookPath("git")
			return err
		}},
		{"postgres reachable", func() error {
			// Connect lazily so a down cluster shows as a warning instead
			// of aborting the whole report.
			db := m.DB
			if db == nil {
				var err error
				if db, err = NewDatabaseAdmin(m.Host); err != nil {
					return err
				}
			}
			return db.Ping(ctx)
		}},
		{"config dir writable", func() error {
			return writableCheck(m.Host.ConfigDir)
		}},
		{"instances dir writable", func() error {
			return writableCheck(m.Host.InstancesDir)
		}},
		{"disk space >= 5GiB", func() error {
			return diskCheck(m.Host.InstancesDir, 5)
		}},
		{"community source checkout", func() error {
			if !dirExists(m.Host.SourceDir) {
				return fmt.Errorf("%s missing, run: odooctl provision", m.Host.SourceDir)
			}
			return nil
		}},
		{"ports 80/443 status", func() error {
			out, err := m.Run.Output(ctx, "ss", "-ltn")
			if err != nil {
				return err
			}
			if !strings.Contains(out, ":80 ") || !strings.Contains(out, ":443 ") {
				return fmt.Errorf("nginx not listening on 80/443 yet")
			}
			return nil
		}},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			fmt.Printf("[WARN] %s: %v\n", check.name, err)
		} else {
			fmt.Printf("[ OK ] %s\n", check.name)
		}
	}
	return nil
}

func writableCheck(dir string) error {
	if err := ensureDir(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "odooctl-write-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

func diskCheck(path string, minGiB uint64) error {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return err
	}
	free := (stat.Bavail * uint64(stat.Bsize)) / (1024 * 1024 * 1024)
	if free < minGiB {
		return fmt.Errorf("free space %dGiB < %dGiB", free, minGiB)
	}
	return nil
}
