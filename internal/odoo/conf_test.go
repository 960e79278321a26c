package odoo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInstanceConfig(t *testing.T) InstanceConfig {
	host := testHost(t)
	cfg := newInstanceConfig(host, NewRegistry(host).Resolve("demo"))
	cfg.AdminSecret = "adminsecret"
	cfg.DBSecret = "dbsecret"
	cfg.HTTPPort = 18069
	cfg.GeventPort = 19069
	return cfg
}

func TestRenderConf(t *testing.T) {
	cfg := testInstanceConfig(t)
	out, err := cfg.Render()
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "[options]")
	assert.Contains(t, text, "admin_passwd = adminsecret")
	assert.Contains(t, text, "db_user = demo")
	assert.Contains(t, text, "db_password = dbsecret")
	assert.Contains(t, text, "http_port = 18069")
	assert.Contains(t, text, "gevent_port = 19069")
	assert.Contains(t, text, "workers = 2")
	assert.NotContains(t, text, "proxy_mode")
	assert.NotContains(t, text, "dbfilter")
}

func TestRenderConfProxyMode(t *testing.T) {
	cfg := testInstanceConfig(t)
	cfg.ProxyMode = true
	cfg.DBFilter = "^demo.*$"
	out, err := cfg.Render()
	require.NoError(t, err)

	assert.Contains(t, string(out), "proxy_mode = True")
	assert.Contains(t, string(out), "dbfilter = ^demo.*$")
}

func TestReadConfPorts(t *testing.T) {
	cfg := testInstanceConfig(t)
	out, err := cfg.Render()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "odoo-demo.conf")
	require.NoError(t, os.WriteFile(path, out, 0o600))

	httpPort, geventPort, err := ReadConfPorts(path)
	require.NoError(t, err)
	assert.Equal(t, 18069, httpPort)
	assert.Equal(t, 19069, geventPort)
}

func TestRenderVhostTemplates(t *testing.T) {
	data := vhostData{
		VhostName:     "odoo-demo",
		Domain:        "demo.example.com",
		HTTPPort:      18069,
		GeventPort:    19069,
		UpstreamHTTP:  "odoo-demo",
		UpstreamChat:  "odoo-demo-chat",
		ChallengeRoot: "/tmp/webroot",
		CertFile:      "/certs/fullchain.pem",
		KeyFile:       "/certs/privkey.pem",
	}

	plain, err := renderTemplate("vhost-http.tmpl", data)
	require.NoError(t, err)
	text := string(plain)
	assert.Contains(t, text, "server_name demo.example.com;")
	assert.Contains(t, text, "server 127.0.0.1:18069;")
	assert.Contains(t, text, "server 127.0.0.1:19069;")
	assert.Contains(t, text, "location /websocket")
	assert.NotContains(t, text, "ssl_certificate")

	tls, err := renderTemplate("vhost-https.tmpl", data)
	require.NoError(t, err)
	text = string(tls)
	assert.Contains(t, text, "listen 443 ssl;")
	assert.Contains(t, text, "ssl_certificate /certs/fullchain.pem;")
	assert.Contains(t, text, "Strict-Transport-Security")
	assert.Contains(t, text, "proxy_cookie_flags ~ secure")
	assert.Contains(t, text, "return 301 https://$host$request_uri;")
	assert.Contains(t, text, "gzip on;")
}
