package odoo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// InstanceState is the advisory metadata sidecar written next to an
// instance at creation. The config file remains the registry's source of
// truth; a missing sidecar is tolerated everywhere.
type InstanceState struct {
	Name       string    `yaml:"name"`
	Domain     string    `yaml:"domain"`
	SSL        bool      `yaml:"ssl"`
	Enterprise bool      `yaml:"enterprise"`
	CreatedAt  time.Time `yaml:"created_at"`
}

func writeState(path string, st InstanceState) error {
	if err := ensureDir(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal instance state: %w", err)
	}
	return os.WriteFile(path, data, 0o640)
}

func readState(path string) (InstanceState, error) {
	var st InstanceState
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("parse instance state %s: %w", path, err)
	}
	return st, nil
}
