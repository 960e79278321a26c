package odoo

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Backup dumps every database owned by the instance role into
// <stateDir>/backups/<name>/, one gzipped SQL file per database. The dump
// output is piped through Go's gzip writer rather than a shell pipeline.
// Returns the written file paths.
func (m *Manager) Backup(ctx context.Context, name string) ([]string, error) {
	exists, err := m.Registry.Exists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotFoundError{Name: name}
	}

	databases, err := m.DB.OwnedDatabases(ctx, name)
	if err != nil {
		return nil, err
	}

	backupDir := filepath.Join(m.Host.StateDir, "backups", name)
	if err := ensureDir(backupDir, 0o750); err != nil {
		return nil, err
	}

	ts := time.Now().UTC().Format("20060102T150405Z")
	var written []string
	for _, db := range databases {
		if db == systemDatabase {
			continue
		}
		outPath := filepath.Join(backupDir, fmt.Sprintf("%s_%s.sql.gz", db, ts))
		m.Log.Info("dumping database", zap.String("database", db), zap.String("file", outPath))
		if err := m.dumpDatabase(ctx, db, outPath); err != nil {
			return written, err
		}
		written = append(written, outPath)
	}
	return written, nil
}

func (m *Manager) dumpDatabase(ctx context.Context, db, outPath string) error {
	cmd := exec.CommandContext(ctx, "pg_dump", db)
	cmd.Env = append(os.Environ(),
		"PGHOST="+m.Host.DBHost,
		fmt.Sprintf("PGPORT=%d", m.Host.DBPort),
		"PGUSER="+m.Host.DBUser,
		"PGPASSWORD="+m.Host.DBPassword,
	)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s dump setup failed: %w", db, err)
	}

	outFile, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer outFile.Close()

	gz := gzip.NewWriter(outFile)
	if err := cmd.Start(); err != nil {
		gz.Close()
		return &ExternalToolError{Tool: "pg_dump", Args: []string{db}, Err: err}
	}
	if _, err := io.Copy(gz, stdout); err != nil {
		gz.Close()
		return fmt.Errorf("%s dump copy failed: %w", db, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("%s gzip close failed: %w", db, err)
	}
	if err := cmd.Wait(); err != nil {
		return &ExternalToolError{Tool: "pg_dump", Args: []string{db}, Err: err}
	}
	return nil
}
