package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vistacli/internal/config"
	"vistacli/internal/vista"
)

// Global flag reset pattern: newRootCmd() binds flags via StringVar, which
// resets the global flag variables to their zero values. Tests must either:
//   - Set globals AFTER newRootCmd() returns (direct function tests), or
//   - Use cmd.SetArgs() + cmd.Execute() to let Cobra parse flags (integration tests).
//
// Setting a global before newRootCmd() and expecting it to survive is a bug.

// --- buildLogger tests ---

func TestBuildLogger_Default(t *testing.T) {
	oldCfg := resolvedCfg

	t.Cleanup(func() { resolvedCfg = oldCfg })

	resolvedCfg = nil

	logger := buildLogger()

	// Default level is Warn: Warn enabled, Info not.
	assert.True(t, logger.Handler().Enabled(context.Background(), slog.LevelWarn))
	assert.False(t, logger.Handler().Enabled(context.Background(), slog.LevelInfo))
}

func TestBuildLogger_ConfigLevels(t *testing.T) {
	oldCfg := resolvedCfg

	t.Cleanup(func() { resolvedCfg = oldCfg })

	tests := []struct {
		level    string
		enabled  slog.Level
		disabled slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.LogLevel = tt.level
			resolvedCfg = cfg

			logger := buildLogger()

			assert.True(t, logger.Handler().Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Handler().Enabled(context.Background(), tt.disabled))
		})
	}
}

// --- Cobra structure tests ---

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	expected := []string{"auth-extract", "folder", "upload"}
	for _, name := range expected {
		found := false

		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true

				break
			}
		}

		assert.True(t, found, "expected subcommand %q not found", name)
	}
}

func TestNewRootCmd_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()

	expectedFlags := []string{"config", "auth-file", "log-level"}
	for _, name := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(name)
		assert.NotNil(t, flag, "expected persistent flag %q not found", name)
	}
}

func TestNewRootCmd_FolderSubcommands(t *testing.T) {
	cmd := newRootCmd()

	folderSub, _, err := cmd.Find([]string{"folder"})
	require.NoError(t, err)
	require.Equal(t, "folder", folderSub.Name())

	expectedSubs := []string{"list", "add", "delete"}
	for _, name := range expectedSubs {
		found := false

		for _, sub := range folderSub.Commands() {
			if sub.Name() == name {
				found = true

				break
			}
		}

		assert.True(t, found, "expected folder subcommand %q not found", name)
	}
}

// --- loadConfig tests ---

func TestLoadConfig_ValidTOML(t *testing.T) {
	oldCfg := resolvedCfg
	oldConfigPath := flagConfigPath

	t.Cleanup(func() {
		resolvedCfg = oldCfg
		flagConfigPath = oldConfigPath
	})

	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "config.toml")

	tomlContent := `base_url = "https://vistasocial.test"
auth_file = "` + tmpDir + `/creds.json"
log_level = "info"
`
	err := os.WriteFile(cfgFile, []byte(tomlContent), 0o600)
	require.NoError(t, err)

	cmd := newRootCmd()
	flagConfigPath = cfgFile

	err = loadConfig(cmd)
	require.NoError(t, err)
	require.NotNil(t, resolvedCfg)

	assert.Equal(t, "https://vistasocial.test", resolvedCfg.BaseURL)
	assert.Equal(t, "info", resolvedCfg.LogLevel)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	oldCfg := resolvedCfg

	t.Cleanup(func() { resolvedCfg = oldCfg })

	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "config.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`log_level = "error"`), 0o600))

	authPath := filepath.Join(tmpDir, "nonexistent-creds.json")

	// Execute with a real subcommand so Cobra parses the persistent flags and
	// marks them as changed — matching a real CLI invocation. folder list
	// fails later (no credential file), but PersistentPreRunE has already
	// populated resolvedCfg by then.
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", cfgFile, "--log-level", "debug", "--auth-file", authPath, "folder", "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, vista.ErrNotAuthenticated)

	require.NotNil(t, resolvedCfg)
	assert.Equal(t, "debug", resolvedCfg.LogLevel, "flag should beat the file's error level")
	assert.Equal(t, authPath, resolvedCfg.AuthFile)
}

func TestLoadConfig_BadFlagValue(t *testing.T) {
	oldCfg := resolvedCfg

	t.Cleanup(func() { resolvedCfg = oldCfg })

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "--log-level", "loud", "folder", "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

// --- newVistaClient tests ---

func TestNewVistaClient_NotAuthenticated(t *testing.T) {
	oldCfg := resolvedCfg

	t.Cleanup(func() { resolvedCfg = oldCfg })

	cfg := config.DefaultConfig()
	cfg.AuthFile = filepath.Join(t.TempDir(), "missing.json")
	resolvedCfg = cfg

	_, err := newVistaClient(slog.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, vista.ErrNotAuthenticated)
	assert.Contains(t, err.Error(), "auth-extract")
}
