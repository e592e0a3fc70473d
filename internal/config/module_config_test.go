package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
module_name: moderation
listen_address: 127.0.0.1:9103
debug: true
`), 0644))

	cfg, err := LoadModule(path)
	require.NoError(t, err)
	assert.Equal(t, "moderation", cfg.ModuleName)
	assert.Equal(t, "127.0.0.1:9103", cfg.ListenAddress)
	assert.True(t, cfg.Debug)

	// 이후 호출은 같은 설정을 반환함
	again, err := LoadModule("")
	require.NoError(t, err)
	assert.Same(t, cfg, again)
}

func TestGetEnvSeconds(t *testing.T) {
	t.Setenv("TEST_TIMEOUT_SEC", "7")
	assert.Equal(t, "7s", getEnvSeconds("TEST_TIMEOUT_SEC", 30).String())

	t.Setenv("TEST_TIMEOUT_SEC", "not-a-number")
	assert.Equal(t, "30s", getEnvSeconds("TEST_TIMEOUT_SEC", 30).String())

	assert.Equal(t, "15s", getEnvSeconds("TEST_TIMEOUT_UNSET", 15).String())
}
