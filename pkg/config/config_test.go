package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshworks/meshcoord/pkg/persist"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "meshcoordd.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `{
		"bridge": {
			"nats_url": "nats://127.0.0.1:4222",
			"request_timeout": "30s"
		},
		"persistence": {
			"mode": "file",
			"path": "/var/lib/meshcoord/store.json"
		},
		"logging": {
			"level": "debug"
		},
		"auto_connect": true
	}`)

	cfg, err := LoadFromFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Bridge.URL)
	assert.Equal(t, 30*time.Second, time.Duration(cfg.Bridge.RequestTimeout))
	assert.Equal(t, PersistFile, cfg.Persistence.Mode)
	assert.True(t, cfg.AutoConnect)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadFromFileInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)

	_, err := LoadFromFile(context.Background(), path)
	require.Error(t, err)
}

func TestValidateDefaultsPersistenceMode(t *testing.T) {
	cfg := &CoordConfig{}
	cfg.Bridge.URL = "nats://127.0.0.1:4222"
	cfg.Persistence.Path = "/tmp/store.json"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, PersistFile, cfg.Persistence.Mode)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *CoordConfig)
	}{
		{
			name:   "missing bridge url",
			mutate: func(cfg *CoordConfig) { cfg.Bridge.URL = "" },
		},
		{
			name:   "file mode without path",
			mutate: func(cfg *CoordConfig) { cfg.Persistence.Path = "" },
		},
		{
			name: "nats mode without bucket",
			mutate: func(cfg *CoordConfig) {
				cfg.Persistence.Mode = PersistNats
				cfg.Persistence.Nats = &persist.NatsConfig{URL: "nats://127.0.0.1:4222"}
			},
		},
		{
			name:   "unknown mode",
			mutate: func(cfg *CoordConfig) { cfg.Persistence.Mode = "etcd" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &CoordConfig{}
			cfg.Bridge.URL = "nats://127.0.0.1:4222"
			cfg.Persistence.Mode = PersistFile
			cfg.Persistence.Path = "/tmp/store.json"

			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
