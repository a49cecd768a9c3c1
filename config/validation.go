package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the loaded configuration. Struct tags cover the simple
// range checks; rules that span fields are checked explicitly.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	// A password without a name has nothing to authenticate as
	if cfg.Credentials.Name == "" && cfg.Credentials.Password != "" {
		return fmt.Errorf("credentials password set without a name")
	}

	return nil
}
