package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func TestLoad_ValidFullConfig(t *testing.T) {
	tomlContent := `
base_url = "https://staging.vistasocial.com"
auth_file = "/tmp/vsauth-test.json"
entity_gids = ["6ba7b810-9dad-11d1-80b4-00c04fd430c8", "6ba7b811-9dad-11d1-80b4-00c04fd430c8"]
timeout = "45s"
log_level = "debug"
firefox_profile = "/home/u/.mozilla/firefox/abcd.default"
`

	path := writeTestConfig(t, tomlContent)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.vistasocial.com", cfg.BaseURL)
	assert.Equal(t, "/tmp/vsauth-test.json", cfg.AuthFile)
	assert.Equal(t, []string{
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"6ba7b811-9dad-11d1-80b4-00c04fd430c8",
	}, cfg.EntityGIDs)
	assert.Equal(t, "45s", cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/home/u/.mozilla/firefox/abcd.default", cfg.FirefoxProfile)
}

func TestLoad_MinimalConfig_UsesDefaults(t *testing.T) {
	path := writeTestConfig(t, "")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://vistasocial.com", cfg.BaseURL)
	assert.Equal(t, "~/.vsauth", cfg.AuthFile)
	assert.Equal(t, []string{"1b0e4760-3503-11f0-8a9e-d56e42db09d2"}, cfg.EntityGIDs)
	assert.Equal(t, "30s", cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.FirefoxProfile)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeTestConfig(t, `base_url = "unclosed`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_UnknownKeySuggestion(t *testing.T) {
	path := writeTestConfig(t, `time_out = "10s"`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown config key "time_out"`)
	assert.Contains(t, err.Error(), `did you mean "timeout"`)
}

func TestLoad_UnknownKeyNoSuggestion(t *testing.T) {
	path := writeTestConfig(t, `completely_unrelated_setting = true`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown config key "completely_unrelated_setting"`)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOrDefault_ExistingFile(t *testing.T) {
	path := writeTestConfig(t, `log_level = "info"`)
	cfg, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestResolve_PrecedenceChain(t *testing.T) {
	path := writeTestConfig(t, `
auth_file = "/from/file"
log_level = "info"
`)

	flagAuth := "/from/flag"
	cfg, err := Resolve(
		EnvOverrides{ConfigPath: path, AuthFile: "/from/env"},
		CLIOverrides{AuthFile: &flagAuth},
	)
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.AuthFile, "CLI flag outranks env and file")
	assert.Equal(t, "info", cfg.LogLevel, "file value survives when no override given")
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := writeTestConfig(t, `auth_file = "/from/file"`)

	cfg, err := Resolve(
		EnvOverrides{ConfigPath: path, AuthFile: "/from/env"},
		CLIOverrides{},
	)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.AuthFile)
}

func TestResolve_CLIConfigPathWins(t *testing.T) {
	envPath := writeTestConfig(t, `log_level = "error"`)
	cliPath := writeTestConfig(t, `log_level = "debug"`)

	cfg, err := Resolve(
		EnvOverrides{ConfigPath: envPath},
		CLIOverrides{ConfigPath: cliPath},
	)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestResolve_ExpandsAuthFileTilde(t *testing.T) {
	path := writeTestConfig(t, "")

	cfg, err := Resolve(EnvOverrides{ConfigPath: path}, CLIOverrides{})
	require.NoError(t, err)

	home, homeErr := os.UserHomeDir()
	require.NoError(t, homeErr)
	assert.Equal(t, filepath.Join(home, ".vsauth"), cfg.AuthFile)
}

func TestResolve_TrimsBaseURLSlash(t *testing.T) {
	path := writeTestConfig(t, `base_url = "https://vistasocial.com/"`)

	cfg, err := Resolve(EnvOverrides{ConfigPath: path}, CLIOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "https://vistasocial.com", cfg.BaseURL)
}

func TestResolve_BadFlagValueRejected(t *testing.T) {
	path := writeTestConfig(t, "")

	level := "verbose"
	_, err := Resolve(EnvOverrides{ConfigPath: path}, CLIOverrides{LogLevel: &level})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".vsauth"), expandTilde("~/.vsauth"))
	assert.Equal(t, "/abs/path", expandTilde("/abs/path"))
	assert.Equal(t, "relative", expandTilde("relative"))
	assert.Equal(t, "~elsewhere", expandTilde("~elsewhere"), "only ~/ expands")
}
