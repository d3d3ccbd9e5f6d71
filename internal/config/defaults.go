package config

import "time"

// Default values for configuration options. These are the "layer 0" of the
// override chain and match the hosted Vista Social deployment, so the tool
// works without any config file at all.
const (
	DefaultBaseURL         = "https://vistasocial.com"
	defaultAuthFile        = "~/.vsauth"
	defaultTimeout         = "30s"
	defaultTimeoutDuration = 30 * time.Second
	defaultLogLevel        = "warn"
)

// defaultEntityGID is the profile group media is associated with when the
// config file does not name any.
const defaultEntityGID = "1b0e4760-3503-11f0-8a9e-d56e42db09d2"

// DefaultConfig returns a Config populated with all default values. It is
// both the starting point for TOML decoding (so unset fields keep their
// defaults) and the fallback when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		AuthFile:   defaultAuthFile,
		EntityGIDs: []string{defaultEntityGID},
		Timeout:    defaultTimeout,
		LogLevel:   defaultLogLevel,
	}
}
