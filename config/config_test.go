package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/ifc.git/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("test", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.STORE_BADGER, cfg.Store.Kind)
	assert.Equal(t, "data/badger", cfg.Store.BadgerPath)
	assert.Empty(t, cfg.Header.Author)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	content := "LOG_LEVEL=debug\nSTORE_KIND=postgres\nDATABASE_URL=postgres://localhost/ifc\nHEADER_AUTHOR=Jane\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte(content), 0o600))

	cfg, err := config.Load("test", dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.STORE_POSTGRES, cfg.Store.Kind)
	assert.Equal(t, "postgres://localhost/ifc", cfg.Store.DatabaseURL)
	assert.Equal(t, "Jane", cfg.Header.Author)

	// environment takes precedence over file
	t.Setenv("IFC_HEADER_AUTHOR", "John")
	t.Setenv("IFC_LOG_LEVEL", "warn")
	cfg, err = config.Load("test", dir)
	require.NoError(t, err)
	assert.Equal(t, "John", cfg.Header.Author)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "level", env: map[string]string{"IFC_LOG_LEVEL": "verbose"}},
		{name: "store", env: map[string]string{"IFC_STORE_KIND": "mysql"}},
		{name: "postgres url", env: map[string]string{"IFC_STORE_KIND": "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load("test", t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := config.NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = config.NewLogger("loud")
	assert.Error(t, err)
}
