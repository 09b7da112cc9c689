package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultWithGeneratedSovereignKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.SovereignKey)
	_, err = hex.DecodeString(cfg.SovereignKey)
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestLoadReadsExistingFileAndFillsMissingSovereignKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`ListenAddress = ":7001"
RPCAddress = ":8081"
DataDir = "./custom-data"
DatabaseDriver = "postgres"
DatabaseDSN = "postgres://localhost/covenant"
RateLimitRequestsPerSecond = 10
RateLimitBurst = 20
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7001", cfg.ListenAddress)
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.NotEmpty(t, cfg.SovereignKey)
}

func TestValidateConfigRejectsBadRateLimit(t *testing.T) {
	g := Global{
		RateLimit: RateLimit{RequestsPerSecond: 0, Burst: 10},
		Database:  Database{Driver: "sqlite", DSN: "./x.db"},
	}
	require.Error(t, ValidateConfig(g))
}

func TestValidateConfigRejectsUnsupportedDriver(t *testing.T) {
	g := Global{
		RateLimit: RateLimit{RequestsPerSecond: 1, Burst: 1},
		Database:  Database{Driver: "mysql", DSN: "./x.db"},
	}
	require.Error(t, ValidateConfig(g))
}

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	cfg := &Config{
		DatabaseDriver:             "sqlite",
		DatabaseDSN:                "./x.db",
		RateLimitRequestsPerSecond: 50,
		RateLimitBurst:             100,
	}
	require.NoError(t, ValidateConfig(cfg.AsGlobal()))
}
