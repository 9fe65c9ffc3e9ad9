package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigDir(t *testing.T, meta string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.yaml"), []byte(meta), 0644))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		configDir   func(t *testing.T) string
		expectError bool
	}{
		{
			name: "loads listed files",
			configDir: func(t *testing.T) string {
				return writeConfigDir(t, "files:\n  - base.yaml\n  - local.yaml\n", map[string]string{
					"base.yaml": "service:\n  name: polyls\nlogging:\n  level: info\n",
				})
			},
			expectError: false,
		},
		{
			name: "missing meta.yaml",
			configDir: func(t *testing.T) string {
				return t.TempDir()
			},
			expectError: true,
		},
		{
			name: "no listed files exist",
			configDir: func(t *testing.T) string {
				return writeConfigDir(t, "files:\n  - base.yaml\n", nil)
			},
			expectError: true,
		},
		{
			name: "config directory doesn't exist",
			configDir: func(t *testing.T) string {
				return "/nonexistent/path"
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POLYLS_CONFIG_DIR", tt.configDir(t))

			provider, err := NewConfig()

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, provider)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, provider)

			config := provider.(Config)
			assert.Equal(t, "config", config.Name())

			serviceName := config.Get("service.name")
			assert.True(t, serviceName.HasValue())
			assert.Equal(t, "polyls", serviceName.String())

			loggingLevel := config.Get("logging.level")
			assert.True(t, loggingLevel.HasValue())
		})
	}
}

func TestConfigOverride(t *testing.T) {
	dir := writeConfigDir(t, "files:\n  - base.yaml\n  - local.yaml\n", map[string]string{
		"base.yaml":  "http:\n  address: 127.0.0.1:8000\n",
		"local.yaml": "http:\n  address: 127.0.0.1:9000\n",
	})
	t.Setenv("POLYLS_CONFIG_DIR", dir)

	provider, err := NewConfig()
	require.NoError(t, err)

	var address string
	require.NoError(t, provider.Get("http.address").Populate(&address))
	assert.Equal(t, "127.0.0.1:9000", address)
}
