package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Server struct {
		Port    int           `koanf:"port"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"server"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func (c *testConfig) Validate() error {
	if c.Server.Port <= 0 {
		return errors.New("port is required")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_SourcePrecedence(t *testing.T) {
	// given
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yaml", "server:\n  port: 8080\n  timeout: 5s\nlog:\n  level: info\n")
	envFile := writeFile(t, dir, ".env", "TESTSVC_LOG_LEVEL=warn\nTESTSVC_SERVER_PORT=8081\nOTHER_SERVER_PORT=1\n")
	t.Setenv("TESTSVC_SERVER_PORT", "9090")

	// when
	cfg, err := Load[*testConfig]("testsvc", WithConfigFile(cfgFile), WithEnvFile(envFile))

	// then
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "process env wins over .env and yaml")
	assert.Equal(t, "warn", cfg.Log.Level, ".env wins over yaml")
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
}

func TestLoad_MissingFilesAreTolerated(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TESTSVC_SERVER_PORT", "7070")

	cfg, err := Load[*testConfig]("testsvc",
		WithConfigFile(filepath.Join(dir, "absent.yaml")),
		WithEnvFile(filepath.Join(dir, "absent.env")))

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_ValidationError(t *testing.T) {
	dir := t.TempDir()

	_, err := Load[*testConfig]("testsvc",
		WithConfigFile(filepath.Join(dir, "absent.yaml")),
		WithEnvFile(filepath.Join(dir, "absent.env")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
