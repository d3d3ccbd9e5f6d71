package config

import "os"

// Environment variable names for overrides.
const (
	EnvConfig   = "VISTACLI_CONFIG"
	EnvAuthFile = "VISTACLI_AUTH_FILE"
)

// EnvOverrides holds values derived from environment variables.
// These are read once by ReadEnvOverrides and applied during Resolve.
type EnvOverrides struct {
	ConfigPath string // VISTACLI_CONFIG: override config file path
	AuthFile   string // VISTACLI_AUTH_FILE: override credential file path
}

// ReadEnvOverrides reads environment variables and returns any overrides found.
// This does not modify the Config; Resolve applies the relevant fields.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath: os.Getenv(EnvConfig),
		AuthFile:   os.Getenv(EnvAuthFile),
	}
}
