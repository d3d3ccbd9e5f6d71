package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// minTimeout is the smallest accepted API timeout. Anything shorter cannot
// survive a single round trip to the vendor.
const minTimeout = time.Second

// validLogLevels are the accepted log_level values.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks all configuration values and returns all errors found.
// It accumulates every error rather than stopping at the first, so users
// see a complete report and can fix all issues in one pass.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateBaseURL(cfg.BaseURL)...)
	errs = append(errs, validateAuthFile(cfg.AuthFile)...)
	errs = append(errs, validateEntityGIDs(cfg.EntityGIDs)...)
	errs = append(errs, validateTimeout(cfg.Timeout)...)
	errs = append(errs, validateLogLevel(cfg.LogLevel)...)

	return errors.Join(errs...)
}

func validateBaseURL(raw string) []error {
	if raw == "" {
		return []error{errors.New("base_url: must not be empty")}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return []error{fmt.Errorf("base_url: %w", err)}
	}

	var errs []error

	if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf("base_url: scheme must be http or https, got %q", raw))
	}

	if u.Host == "" {
		errs = append(errs, fmt.Errorf("base_url: missing host in %q", raw))
	}

	return errs
}

func validateAuthFile(path string) []error {
	if path == "" {
		return []error{errors.New("auth_file: must not be empty")}
	}

	return nil
}

func validateEntityGIDs(gids []string) []error {
	if len(gids) == 0 {
		return []error{errors.New("entity_gids: must list at least one profile group")}
	}

	var errs []error

	for _, gid := range gids {
		if _, err := uuid.Parse(gid); err != nil {
			errs = append(errs, fmt.Errorf("entity_gids: %q is not a UUID: %w", gid, err))
		}
	}

	return errs
}

func validateTimeout(s string) []error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return []error{fmt.Errorf("timeout: %w", err)}
	}

	if d < minTimeout {
		return []error{fmt.Errorf("timeout: must be at least %s, got %s", minTimeout, d)}
	}

	return nil
}

func validateLogLevel(level string) []error {
	if !validLogLevels[level] {
		return []error{fmt.Errorf("log_level: must be one of debug, info, warn, error; got %q", level)}
	}

	return nil
}
