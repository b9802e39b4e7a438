package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GRIDIRON_CONFIG is set
//  3. env (prefix GRIDIRON_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("GRIDIRON_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: GRIDIRON_LEAGUE_ID, GRIDIRON_USERNAME, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("GRIDIRON_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gridiron_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot start with. These are
// fatal: no retry, surfaced to the operator directly.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.LeagueID) == "":
		return fmt.Errorf("%w: league_id must be set", ErrInvalidConfig)
	case strings.TrimSpace(c.Username) == "":
		return fmt.Errorf("%w: username must be set", ErrInvalidConfig)
	case c.RefreshIntervalSec <= 0:
		return fmt.Errorf("%w: refresh_interval_sec must be positive", ErrInvalidConfig)
	}
	return nil
}
