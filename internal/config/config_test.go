package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/bank-marketing-api/internal/config"
)

const baseConfig = `
[server]
host = "127.0.0.1"
port = 9000
read_timeout = "10s"

[artifacts]
model_path = "artifacts/stacking.onnx"
encoder_path = "artifacts/labels.json"

[cors]
enabled = true
origins = ["http://localhost:3000"]
`

const overlayConfig = `
[server]
port = 9090

[artifacts]
metadata_path = "prod/metadata.json"
`

func writeConfig(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeoutDuration())
	assert.Equal(t, "models/model.onnx", cfg.Artifacts.ModelPath)
	assert.Equal(t, "models/model_metadata.json", cfg.Artifacts.MetadataPath)
	assert.Equal(t, "models/label_encoder.json", cfg.Artifacts.EncoderPath)
	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, "local", cfg.Env())
}

func TestLoadBaseFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, "artifacts/stacking.onnx", cfg.Artifacts.ModelPath)
	assert.Equal(t, "models/model_metadata.json", cfg.Artifacts.MetadataPath)
	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.Origins)
	assert.Equal(t, []string{"POST", "GET", "OPTIONS"}, cfg.CORS.AllowedMethods)
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.toml", baseConfig)
	chdir(t, t.TempDir())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.prod.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv(config.EnvInferEnv, "prod")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "prod/metadata.json", cfg.Artifacts.MetadataPath)
	assert.Equal(t, "artifacts/stacking.onnx", cfg.Artifacts.ModelPath)
	assert.Equal(t, "prod", cfg.Env())
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(config.EnvPort, "7000")
	t.Setenv(config.EnvModelPath, "/srv/model.onnx")
	t.Setenv(config.EnvONNXLibrary, "/usr/lib/libonnxruntime.so")
	t.Setenv(config.EnvCORSEnabled, "true")
	t.Setenv(config.EnvCORSOrigins, "http://a.com, http://b.com,")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/srv/model.onnx", cfg.Artifacts.ModelPath)
	assert.Equal(t, "/usr/lib/libonnxruntime.so", cfg.Artifacts.Paths().ONNXLibrary)
	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.CORS.Origins)
}

func TestServerPortPrecedence(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(config.EnvPort, "7000")
	t.Setenv(config.EnvServerPort, "7001")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"bad port":     "[server]\nport = 70000\n",
		"bad timeout":  "[server]\nread_timeout = \"soon\"\n",
		"same paths":   "[artifacts]\nmodel_path = \"m\"\nencoder_path = \"m\"\n",
		"corrupt toml": "[server\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeConfig(t, dir, "config.toml", content)
			chdir(t, dir)

			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := config.Load("absent.toml")
	assert.Error(t, err)
}

func TestOverlayKeepsCORS(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv(config.EnvInferEnv, "staging")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.Origins)
}

func TestServerOverride(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.NoError(t, cfg.Server.Override("127.0.0.1", 9001))
	assert.Equal(t, "127.0.0.1:9001", cfg.Server.Addr())

	require.NoError(t, cfg.Server.Override("", 0))
	assert.Equal(t, "127.0.0.1:9001", cfg.Server.Addr())

	assert.Error(t, cfg.Server.Override("", 70000))
	assert.Error(t, cfg.Server.Override("", -1))
}
