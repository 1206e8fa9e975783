package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
read_timeout = 5
write_timeout = 5
idle_timeout = 30
shutdown_timeout = 10

[database]
host = "db.local"
port = 5433
user = "svc"
password = "secret"
dbname = "matching"
sslmode = "require"
max_open_conns = 50
max_idle_conns = 10
conn_max_lifetime = 600

[redis]
addr = "redis.local:6379"
password = "secret"
db = 2

[logs]
file = "logs/app.log"
level = "debug"

[metrics]
enabled = true
path = "/metrics"
service_name = "matching"

[matching]
search_radius_km = 10.5
max_request_age_minutes = 15
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db.local port=5433 user=svc password=secret dbname=matching sslmode=require", cfg.Database.DSN())
	assert.Equal(t, "redis.local:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 10.5, cfg.Matching.SearchRadiusKM)
	assert.Equal(t, 15, cfg.Matching.MaxRequestAgeMinutes)
}

func TestLoad_FillsDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
user = "svc"
password = "secret"
dbname = "matching"

[redis]
addr = "localhost:6379"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "qa-matching-service", cfg.Metrics.ServiceName)
	assert.Equal(t, 20.0, cfg.Matching.SearchRadiusKM)
	assert.Equal(t, 30, cfg.Matching.MaxRequestAgeMinutes)
}

func TestLoad_RequiresDatabaseHost(t *testing.T) {
	path := writeConfig(t, `
[redis]
addr = "localhost:6379"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RequiresRedisAddr(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
