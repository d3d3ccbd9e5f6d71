package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"vistacli/internal/config"
	"vistacli/internal/vista"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagAuthFile   string
	flagLogLevel   string
)

// resolvedCfg holds the effective configuration loaded by PersistentPreRunE.
// It is available to all subcommands after the root pre-run phase completes.
var resolvedCfg *config.Config

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vistacli",
		Short: "Vista Social media-library CLI",
		Long: `vistacli drives Vista Social's private publishing API with a session
borrowed from your Firefox login: run auth-extract once to copy the
browser cookies, then manage media folders and upload files.`,
		Version: version,
		// Silence Cobra's default error/usage printing — we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		// PersistentPreRunE loads configuration before every command. Every
		// subcommand needs at least the base URL and credential path.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&flagAuthFile, "auth-file", "", "credential file path (default ~/.vsauth)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	// Register subcommands.
	cmd.AddCommand(newAuthExtractCmd())
	cmd.AddCommand(newFolderCmd())
	cmd.AddCommand(newUploadCmd())

	return cmd
}

// loadConfig resolves the effective configuration from the four-layer override
// chain and stores the result in resolvedCfg for use by subcommands.
func loadConfig(cmd *cobra.Command) error {
	cli := config.CLIOverrides{
		ConfigPath: flagConfigPath,
	}

	// Only pass flags to the resolver that the user explicitly set, so an
	// unset flag never clobbers file or environment values.
	if cmd.Flags().Changed("auth-file") {
		cli.AuthFile = &flagAuthFile
	}

	if cmd.Flags().Changed("log-level") {
		cli.LogLevel = &flagLogLevel
	}

	env := config.ReadEnvOverrides()

	resolved, err := config.Resolve(env, cli)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolvedCfg = resolved

	return nil
}

// buildLogger creates an slog.Logger at the resolved config's level.
// Interactive terminals get human-readable text; pipes and scripts get JSON.
func buildLogger() *slog.Logger {
	level := slog.LevelWarn

	if resolvedCfg != nil {
		switch resolvedCfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "error":
			level = slog.LevelError
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// newVistaClient loads the saved session and builds a publishing-API client
// from the resolved config. The vendor-facing client carries the configured
// timeout; pre-signed storage and CDN requests use the default client so a
// slow transfer is not cut off.
func newVistaClient(logger *slog.Logger) (*vista.Client, error) {
	sess, err := vista.LoadSession(resolvedCfg.AuthFile)
	if err != nil {
		return nil, err
	}

	apiClient := &http.Client{Timeout: resolvedCfg.TimeoutDuration()}

	return vista.NewClient(resolvedCfg.BaseURL, apiClient, http.DefaultClient, sess, resolvedCfg.EntityGIDs, logger), nil
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
