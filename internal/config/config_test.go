package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"qrvalidator/internal/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "environment: production\n"))
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
	require.Equal(t, int64(32<<20), cfg.HTTP.MaxUploadBytes)
	require.Equal(t, config.UploadBackendLocal, cfg.Upload.Backend)
	require.Equal(t, "upload", cfg.Upload.Dir)
	require.Empty(t, cfg.Datavalid.URL)
	require.Zero(t, cfg.Datavalid.Timeout)
	require.InDelta(t, 72, cfg.PDF.DPI, 0)
	require.Equal(t, 10*time.Second, cfg.GracefulShutdownTimeout)
}

func TestLoad_FileValues(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
upload:
  backend: s3
  s3:
    bucket: cnh
    endpoint: http://localhost:9000
datavalid:
  url: https://validator.example/v4
  token: secret
  timeout: 30s
pdf:
  dpi: 150
`))
	require.NoError(t, err)

	require.Equal(t, config.UploadBackendS3, cfg.Upload.Backend)
	require.Equal(t, "cnh", cfg.Upload.S3.Bucket)
	require.Equal(t, "http://localhost:9000", cfg.Upload.S3.Endpoint)
	require.Equal(t, "https://validator.example/v4", cfg.Datavalid.URL)
	require.Equal(t, "secret", cfg.Datavalid.Token)
	require.Equal(t, 30*time.Second, cfg.Datavalid.Timeout)
	require.InDelta(t, 150, cfg.PDF.DPI, 0)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "/tmp/cnh")

	cfg, err := config.Load(writeConfig(t, "upload:\n  dir: files\n"))
	require.NoError(t, err)
	require.Equal(t, "/tmp/cnh", cfg.Upload.Dir)
}

func TestLoad_UnknownBackend(t *testing.T) {
	_, err := config.Load(writeConfig(t, "upload:\n  backend: ftp\n"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
