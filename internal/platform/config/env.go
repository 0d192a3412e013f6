package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvWithLookup loads configuration from the given lookup instead of
// the process environment. A nil lookup behaves like ParseEnv.
func ParseEnvWithLookup(target any, lookup func(string) (string, bool)) error {
	if lookup == nil {
		return ParseEnv(target)
	}
	params, err := env.GetFieldParams(target)
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	values := make(map[string]string, len(params))
	for _, param := range params {
		if value, ok := lookup(param.Key); ok {
			values[param.Key] = value
		}
	}
	if err := env.ParseWithOptions(target, env.Options{Environment: values}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
