// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for vistacli. It supports a four-layer
// override chain (defaults -> config file -> environment -> CLI flags).
package config

import "time"

// Config is the top-level configuration structure parsed from a TOML file.
// All fields are flat top-level keys; there are no sections.
type Config struct {
	// BaseURL is the Vista Social endpoint every API call is built on.
	BaseURL string `toml:"base_url"`

	// AuthFile is the JSON credential file written by auth-extract and read
	// by every authenticated command. A leading "~/" expands to the user's
	// home directory at resolve time.
	AuthFile string `toml:"auth_file"`

	// EntityGIDs are the social profile identifiers uploaded media is
	// associated with. Each must be a UUID.
	EntityGIDs []string `toml:"entity_gids"`

	// Timeout bounds every vendor API call, as a Go duration string.
	// Transfers to the pre-signed storage host are not subject to it.
	Timeout string `toml:"timeout"`

	LogLevel string `toml:"log_level"`

	// FirefoxProfile points auth-extract at a specific profile directory.
	// Empty means auto-discover via profiles.ini.
	FirefoxProfile string `toml:"firefox_profile"`
}

// TimeoutDuration returns the parsed Timeout. Validation guarantees the
// string parses; the fallback covers hand-built Configs in tests.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return defaultTimeoutDuration
	}

	return d
}

// CLIOverrides holds values from CLI flags that override config file and
// environment settings. Pointer fields distinguish "not specified" (nil)
// from "explicitly set to empty" — passing --auth-file="" is different from
// not passing the flag at all.
type CLIOverrides struct {
	ConfigPath string  // --config flag (empty = use default)
	AuthFile   *string // --auth-file flag
	LogLevel   *string // --log-level flag
}
