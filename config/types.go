package config

// RateLimit controls the rpc package's token-bucket limiter.
type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

// Database selects and configures the ledger package's backing SQL
// database.
type Database struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
}

// Global bundles the parsed runtime configuration values ValidateConfig
// enforces before a node is allowed to start serving.
type Global struct {
	RateLimit RateLimit
	Database  Database
}

// AsGlobal extracts the validated subset of Config used at startup.
func (c *Config) AsGlobal() Global {
	return Global{
		RateLimit: RateLimit{
			RequestsPerSecond: c.RateLimitRequestsPerSecond,
			Burst:             c.RateLimitBurst,
		},
		Database: Database{
			Driver: c.DatabaseDriver,
			DSN:    c.DatabaseDSN,
		},
	}
}
