package config

import "errors"

func ValidateForRun(cfg *Config) error {
	if cfg.ConfigSourceURL == "" {
		return errors.New("CONFIG_SOURCE_URL environment variable is required")
	}
	return nil
}
