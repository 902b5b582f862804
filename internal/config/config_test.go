package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"SERVER_PORT", "STORE_DSN", "GEMINI_API_KEY", "API_KEY", "MAX_ENCODE_SIZE", "ACCESS_TOKEN_DURATION"} {
		t.Setenv(key, "")
	}
	t.Setenv("STORE_DRIVER", StoreSQLite)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "data/elenco.db", cfg.Store.DSN)
	assert.Equal(t, int64(3*1024*1024), cfg.MaxEncodeSize)
	assert.Equal(t, 12*time.Hour, cfg.AccessTokenDuration)
	assert.Equal(t, "gemini-2.5-flash", cfg.Assist.Model)
	assert.Empty(t, cfg.Assist.APIKey)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", StoreMemory)
	t.Setenv("STORE_DSN", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("MINIO_ENABLED", "true")
	t.Setenv("ACCESS_TOKEN_DURATION", "not-a-duration")
	t.Setenv("MAX_ENCODE_SIZE", "-5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Empty(t, cfg.Store.DSN)
	assert.Equal(t, "legacy-key", cfg.Assist.APIKey)
	assert.True(t, cfg.MinIO.Enabled)
	assert.Equal(t, 12*time.Hour, cfg.AccessTokenDuration)
	assert.Equal(t, int64(3*1024*1024), cfg.MaxEncodeSize)
}
