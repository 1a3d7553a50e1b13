package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/nasomail/internal/filex"
)

// parseEnv loads dotenv (if the file exists) into the process environment
// without overriding variables that are already set, then overlays every
// NASOMAIL_* variable onto config. Unset variables leave fields untouched.
func parseEnv(config *Config, dotenv string) error {
	if dotenv != "" {
		ok, err := filex.Exists(dotenv)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", dotenv, err)
		}
		if ok {
			if err := godotenv.Load(dotenv); err != nil {
				return fmt.Errorf("failed to load %s: %w", dotenv, err)
			}
		}
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}
