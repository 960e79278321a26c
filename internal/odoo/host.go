package odoo

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const (
	defaultConfigDir    = "/etc/odoo"
	defaultStateDir     = "/var/lib/odooctl"
	defaultInstancesDir = "/opt/odoo"
	defaultLogDir       = "/var/log/odoo"
)

// Host describes the shared directories, base ports and credentials of the
// machine odooctl manages. It is the single context object handed to every
// component, so tests can point all of it at a temp dir.
type Host struct {
	ConfigDir    string `mapstructure:"config_dir"`
	StateDir     string `mapstructure:"state_dir"`
	InstancesDir string `mapstructure:"instances_dir"`
	LogDir       string `mapstructure:"log_dir"`

	SourceDir           string `mapstructure:"source_dir"`
	EnterpriseSourceDir string `mapstructure:"enterprise_source_dir"`
	OdooVersion         string `mapstructure:"odoo_version"`

	NginxAvailable string `mapstructure:"nginx_available"`
	NginxEnabled   string `mapstructure:"nginx_enabled"`
	SystemdDir     string `mapstructure:"systemd_dir"`
	CertDir        string `mapstructure:"cert_dir"`

	ServiceUser string `mapstructure:"service_user"`

	HTTPPortBase   int `mapstructure:"http_port_base"`
	GeventPortBase int `mapstructure:"gevent_port_base"`

	DBHost     string `mapstructure:"db_host"`
	DBPort     int    `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`

	ACMEDirectoryURL string `mapstructure:"acme_directory_url"`
}

// DefaultHost returns the conventional layout for a production host.
func DefaultHost() Host {
	return Host{
		ConfigDir:           defaultConfigDir,
		StateDir:            defaultStateDir,
		InstancesDir:        defaultInstancesDir,
		LogDir:              defaultLogDir,
		SourceDir:           defaultInstancesDir + "/odoo-server",
		EnterpriseSourceDir: defaultInstancesDir + "/enterprise-server",
		OdooVersion:         "17.0",
		NginxAvailable:      "/etc/nginx/sites-available",
		NginxEnabled:        "/etc/nginx/sites-enabled",
		SystemdDir:          "/etc/systemd/system",
		CertDir:             "/etc/odooctl/certs",
		ServiceUser:         "odoo",
		HTTPPortBase:        8069,
		GeventPortBase:      9069,
		DBHost:              "localhost",
		DBPort:              5432,
		DBUser:              "postgres",
		DBPassword:          "",
	}
}

// LoadHost reads /etc/odooctl/config.yaml (or $ODOOCTL_CONFIG) when present
// and applies ODOOCTL_* environment overrides on top of the defaults.
// A missing config file is not an error; the defaults stand.
func LoadHost() (Host, error) {
	v := viper.New()
	def := DefaultHost()

	v.SetDefault("config_dir", def.ConfigDir)
	v.SetDefault("state_dir", def.StateDir)
	v.SetDefault("instances_dir", def.InstancesDir)
	v.SetDefault("log_dir", def.LogDir)
	v.SetDefault("source_dir", def.SourceDir)
	v.SetDefault("enterprise_source_dir", def.EnterpriseSourceDir)
	v.SetDefault("odoo_version", def.OdooVersion)
	v.SetDefault("nginx_available", def.NginxAvailable)
	v.SetDefault("nginx_enabled", def.NginxEnabled)
	v.SetDefault("systemd_dir", def.SystemdDir)
	v.SetDefault("cert_dir", def.CertDir)
	v.SetDefault("service_user", def.ServiceUser)
	v.SetDefault("http_port_base", def.HTTPPortBase)
	v.SetDefault("gevent_port_base", def.GeventPortBase)
	v.SetDefault("db_host", def.DBHost)
	v.SetDefault("db_port", def.DBPort)
	v.SetDefault("db_user", def.DBUser)
	v.SetDefault("db_password", def.DBPassword)
	v.SetDefault("acme_directory_url", def.ACMEDirectoryURL)

	v.SetEnvPrefix("ODOOCTL")
	v.AutomaticEnv()

	if custom := os.Getenv("ODOOCTL_CONFIG"); custom != "" {
		v.SetConfigFile(custom)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/odooctl")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Host{}, fmt.Errorf("read host config: %w", err)
		}
	}

	var h Host
	if err := v.Unmarshal(&h); err != nil {
		return Host{}, fmt.Errorf("parse host config: %w", err)
	}
	return h, nil
}
