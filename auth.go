package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"vistacli/internal/authfile"
	"vistacli/internal/firefox"
)

func newAuthExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth-extract",
		Short: "Copy Vista Social cookies from Firefox into the credential file",
		Long: `auth-extract locates your default Firefox profile, reads the cookies for
the configured Vista Social host from its cookie store, and saves them to
the credential file. Log in to Vista Social in Firefox first.`,
		Args: cobra.NoArgs,
		RunE: runAuthExtract,
	}
}

func runAuthExtract(cmd *cobra.Command, _ []string) error {
	logger := buildLogger()

	domain, err := cookieDomain(resolvedCfg.BaseURL)
	if err != nil {
		return err
	}

	profileDir := resolvedCfg.FirefoxProfile
	if profileDir == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return fmt.Errorf("locating home directory: %w", homeErr)
		}

		profileDir, err = firefox.FindProfileDir(home)
		if err != nil {
			return err
		}

		logger.Debug("discovered firefox profile", "dir", profileDir)
	}

	cookies, err := firefox.Cookies(cmd.Context(), profileDir, domain)
	if err != nil {
		return err
	}

	logger.Info("cookies extracted", "domain", domain, "count", len(cookies))

	if err := authfile.Save(resolvedCfg.AuthFile, cookies); err != nil {
		return err
	}

	statusf("Extracted %d cookies for %s\n", len(cookies), domain)
	statusf("Saved credentials to %s\n", resolvedCfg.AuthFile)

	return nil
}

// cookieDomain derives the cookie host filter from the configured base URL.
func cookieDomain(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}

	if u.Hostname() == "" {
		return "", fmt.Errorf("base URL %q has no host", baseURL)
	}

	return u.Hostname(), nil
}
