package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, SessionBolt, cfg.Sessions.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Sessions.TTL)
	assert.Equal(t, "postgres://progress:@localhost:5432/progress?sslmode=disable", cfg.Storage.Database.URL)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_name: tracker-test
timezone: Europe/Berlin
storage:
  driver: postgres
  postgres:
    url: postgres://file/db
sessions:
  driver: redis
  ttl: 2h
http:
  port: "9000"
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("SESSION_TTL", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tracker-test", cfg.AppName)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://file/db", cfg.Storage.Database.URL)
	assert.Equal(t, SessionRedis, cfg.Sessions.Driver)
	assert.Equal(t, 30*time.Second, cfg.Sessions.TTL)
	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Storage.Driver = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Sessions.Driver = "memcached"
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Environment = "production"
	assert.Error(t, cfg.Validate())
	cfg.JWT.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())
}
