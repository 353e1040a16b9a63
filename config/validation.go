package config

import (
	"fmt"
)

// Validate checks that the configuration is complete enough to start the
// server with.
func Validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DB_DRIVER is sqlite")
		}
	case "postgres":
		if cfg.DBUser == "" || cfg.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required when DB_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}

	if cfg.ModelDir == "" {
		return fmt.Errorf("MODEL_DIR is required")
	}

	return nil
}
