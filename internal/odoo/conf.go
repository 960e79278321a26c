package odoo

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// InstanceConfig is the typed model behind an instance's odoo.conf. It is
// rendered whole from the template; the file is never patched in place.
type InstanceConfig struct {
	Name        string
	AdminSecret string
	DBHost      string
	DBUser      string
	DBSecret    string
	AddonsPath  []string
	HTTPPort    int
	GeventPort  int
	LogFile     string

	LimitMemoryHard int64
	LimitMemorySoft int64
	LimitRequest    int
	LimitTimeCPU    int
	LimitTimeReal   int
	MaxCronThreads  int
	Workers         int

	ProxyMode bool
	DBFilter  string
}

// newInstanceConfig fills in the host defaults for resource limits and
// worker counts; ports and secrets are set by the create path.
func newInstanceConfig(host Host, p Paths) InstanceConfig {
	addons := []string{host.SourceDir + "/addons", p.CustomAddons}
	return InstanceConfig{
		Name:            p.Name,
		DBHost:          host.DBHost,
		DBUser:          p.Name,
		AddonsPath:      addons,
		LogFile:         p.LogFile,
		LimitMemoryHard: 2684354560,
		LimitMemorySoft: 2147483648,
		LimitRequest:    8192,
		LimitTimeCPU:    600,
		LimitTimeReal:   1200,
		MaxCronThreads:  1,
		Workers:         2,
	}
}

func (c InstanceConfig) Render() ([]byte, error) {
	return renderTemplate("odoo.conf.tmpl", c)
}

// ReadConfPorts extracts http_port and gevent_port from an instance config
// file, for listing running port assignments.
func ReadConfPorts(path string) (httpPort, geventPort int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "http_port":
			httpPort, err = strconv.Atoi(value)
		case "gevent_port":
			geventPort, err = strconv.Atoi(value)
		}
		if err != nil {
			return 0, 0, fmt.Errorf("parse %s in %s: %w", key, path, err)
		}
	}
	if err := s.Err(); err != nil {
		return 0, 0, err
	}
	return httpPort, geventPort, nil
}
