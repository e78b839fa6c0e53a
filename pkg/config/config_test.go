package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
server:
  listen: ":9090"
  timeout: 15s

database:
  dsn: "file:test.db"
  max_open_conns: 3

schedule:
  min_interval: 10m
  max_interval: 12h
  deactivate_after: 72h
  max_workers: 2

fetch:
  timeout: 5s
  user_agent: "test-agent/1.0"
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "file:test.db", cfg.Database.DSN)
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10*time.Minute, cfg.Schedule.MinInterval)
	assert.Equal(t, 12*time.Hour, cfg.Schedule.MaxInterval)
	assert.Equal(t, 72*time.Hour, cfg.Schedule.DeactivateAfter)
	assert.Equal(t, 2, cfg.Schedule.MaxWorkers)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "test-agent/1.0", cfg.Fetch.UserAgent)

	// defaults applied for unset values
	assert.InEpsilon(t, 0.9, cfg.Schedule.Speedup, 0.0001)
	assert.InEpsilon(t, 1.1, cfg.Schedule.Slowdown, 0.0001)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 15*time.Minute, cfg.Schedule.MinInterval)
	assert.Equal(t, 24*time.Hour, cfg.Schedule.MaxInterval)
	assert.Equal(t, 7*24*time.Hour, cfg.Schedule.DeactivateAfter)
	assert.Equal(t, 5, cfg.Schedule.MaxWorkers)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "feedloop/1.0", cfg.Fetch.UserAgent)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_DSN", "file:env.db")
	content := "database:\n  dsn: \"${TEST_DSN}\"\n"

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file:env.db", cfg.Database.DSN)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "max interval below min",
			content: "schedule:\n  min_interval: 1h\n  max_interval: 30m\n",
			errMsg:  "max_interval",
		},
		{
			name:    "speedup above one",
			content: "schedule:\n  speedup: 1.5\n",
			errMsg:  "speedup",
		},
		{
			name:    "slowdown below one",
			content: "schedule:\n  slowdown: 0.5\n",
			errMsg:  "slowdown",
		},
		{
			name:    "bad yaml",
			content: "schedule: [",
			errMsg:  "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}
