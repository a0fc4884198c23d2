package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvReadsAllVariables(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("TERM_WIDTH", "100")
	t.Setenv("ARGC_COMPGEN_DESCRIPTION", "true")
	t.Setenv("ARGC_DEBUG_FILE", "/tmp/argc-debug.log")

	cfg := FromEnv()

	assert.True(t, cfg.NoColor)
	assert.Equal(t, 100, cfg.Width)
	assert.True(t, cfg.CompgenDescription)
	assert.Equal(t, "/tmp/argc-debug.log", cfg.DebugFile)
}

func TestFromEnvDefaultsWhenUnset(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	os.Unsetenv("TERM_WIDTH")
	os.Unsetenv("ARGC_COMPGEN_DESCRIPTION")
	os.Unsetenv("ARGC_DEBUG_FILE")

	cfg := FromEnv()

	assert.False(t, cfg.NoColor)
	assert.Equal(t, 0, cfg.Width)
	assert.False(t, cfg.CompgenDescription)
	assert.Equal(t, "", cfg.DebugFile)
}

func TestDebugfAppendsToFileWhenSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")

	cfg := Config{DebugFile: path}
	cfg.Debugf("hello %s\n", "world")
	cfg.Debugf("again\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world\nagain\n", string(data))
}

func TestDebugfNoopWhenUnset(t *testing.T) {
	cfg := Config{}
	cfg.Debugf("should not panic")
}
