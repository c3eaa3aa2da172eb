package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/anthill/internal/config"
)

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anthill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
protocol:
  strict_setup: true
agent:
  name: random
record:
  backend: redis
  keep_worlds: 50
  redis:
    addr: localhost:6379
    db: 2
    ttl: 10m
metrics:
  textfile: /var/lib/node_exporter/anthill.prom
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep their default")
	assert.True(t, cfg.Protocol.StrictSetup)
	assert.Equal(t, 4096, cfg.Protocol.MaxLineSize)
	assert.Equal(t, "random", cfg.Agent.Name)
	assert.Equal(t, config.BackendRedis, cfg.Record.Backend)
	assert.Equal(t, 50, cfg.Record.KeepWorlds)
	assert.Equal(t, "localhost:6379", cfg.Record.Redis.Addr)
	assert.Equal(t, 2, cfg.Record.Redis.DB)
	assert.Equal(t, 10*time.Minute, cfg.Record.Redis.TTL)
	assert.Equal(t, "/var/lib/node_exporter/anthill.prom", cfg.Metrics.Textfile)
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := config.Parse([]byte("# nothing here\n"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"Unknown Top Level Key", "colour: blue\n", "colour"},
		{"Bad Level", "log:\n  level: loud\n", "level"},
		{"Bad Backend", "record:\n  backend: s3\n", "backend"},
		{"Wrong Type", "protocol:\n  strict_setup: maybe\n", "strict_setup"},
		{"Negative Size", "protocol:\n  max_line_size: -1\n", "max_line_size"},
		{"Bad TTL", "record:\n  redis:\n    ttl: forever\n", "ttl"},
		{"File Without Path", "record:\n  backend: file\n", "record.path is required"},
		{"Redis Without Addr", "record:\n  backend: redis\n", "record.redis.addr is required"},
		{"Not YAML", "log: [\n", "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
