package config

import "fmt"

func ValidateConfig(g Global) error {
	if g.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit: requests_per_second must be positive")
	}
	if g.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit: burst must be positive")
	}
	switch g.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database: unsupported driver %q", g.Database.Driver)
	}
	if g.Database.DSN == "" {
		return fmt.Errorf("database: dsn must not be empty")
	}
	return nil
}
