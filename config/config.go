package config

import (
	"encoding/hex"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/covenant-finance/covenant/crypto"
)

// Config is the on-disk configuration for a covenant node: where it
// listens, where it persists World state, which database backs the audit
// ledger, and the Sovereign signing key it holds on the operator's behalf.
type Config struct {
	ListenAddress string `toml:"ListenAddress"`
	RPCAddress    string `toml:"RPCAddress"`
	DataDir       string `toml:"DataDir"`
	ExportDir     string `toml:"ExportDir"`

	SovereignKey string `toml:"SovereignKey"`

	DatabaseDriver string `toml:"DatabaseDriver"`
	DatabaseDSN    string `toml:"DatabaseDSN"`

	JWTSecret string `toml:"JWTSecret"`

	RateLimitRequestsPerSecond float64 `toml:"RateLimitRequestsPerSecond"`
	RateLimitBurst             int     `toml:"RateLimitBurst"`
}

// Load reads the configuration at path, writing a freshly generated default
// (including a new Sovereign key) if no file exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if cfg.SovereignKey == "" {
		key, err := crypto.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		cfg.SovereignKey = hex.EncodeToString(key.Bytes())

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, os.ModePerm)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// createDefault writes and returns a fresh default configuration, including
// a newly generated Sovereign signing key.
func createDefault(path string) (*Config, error) {
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ListenAddress:              ":7000",
		RPCAddress:                 ":8080",
		DataDir:                    "./covenant-data",
		ExportDir:                  "./covenant-data/export",
		SovereignKey:               hex.EncodeToString(key.Bytes()),
		DatabaseDriver:             "sqlite",
		DatabaseDSN:                "./covenant-data/ledger.db",
		RateLimitRequestsPerSecond: 50,
		RateLimitBurst:             100,
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
