package firefox

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoProfile means no Firefox profile could be located under the user's
// home directory.
var ErrNoProfile = errors.New("firefox: no profile found")

// profilesIniDirs are the per-OS locations of the Firefox profile registry,
// relative to the user's home directory.
var profilesIniDirs = []string{
	".mozilla/firefox",
	"Library/Application Support/Firefox",
}

// FindProfileDir locates the default Firefox profile under home. It reads
// profiles.ini the way Firefox itself does: an [Install*] section's Default
// entry names the active profile; otherwise the [Profile*] section flagged
// Default=1 wins, otherwise the first profile listed.
func FindProfileDir(home string) (string, error) {
	for _, rel := range profilesIniDirs {
		base := filepath.Join(home, filepath.FromSlash(rel))

		ini := filepath.Join(base, "profiles.ini")
		if _, err := os.Stat(ini); err != nil {
			continue
		}

		return profileFromIni(ini, base)
	}

	return "", fmt.Errorf("%w under %s (is Firefox installed?)", ErrNoProfile, home)
}

type iniProfile struct {
	path       string
	isRelative bool
	isDefault  bool
}

func profileFromIni(iniPath, baseDir string) (string, error) {
	f, err := os.Open(iniPath)
	if err != nil {
		return "", fmt.Errorf("firefox: opening %s: %w", iniPath, err)
	}
	defer f.Close()

	var (
		section        string
		installDefault string
		profiles       []iniProfile
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			if strings.HasPrefix(section, "Profile") {
				// IsRelative defaults to 1 when Firefox omits it.
				profiles = append(profiles, iniProfile{isRelative: true})
			}

			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch {
		case strings.HasPrefix(section, "Install") && key == "Default" && installDefault == "":
			installDefault = value
		case strings.HasPrefix(section, "Profile") && len(profiles) > 0:
			p := &profiles[len(profiles)-1]
			switch key {
			case "Path":
				p.path = value
			case "IsRelative":
				p.isRelative = value != "0"
			case "Default":
				p.isDefault = value == "1"
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("firefox: reading %s: %w", iniPath, err)
	}

	// Install sections record the profile Firefox actually starts with.
	if installDefault != "" {
		for _, p := range profiles {
			if p.path == installDefault {
				return joinProfile(baseDir, p.path, p.isRelative), nil
			}
		}

		return joinProfile(baseDir, installDefault, !filepath.IsAbs(installDefault)), nil
	}

	for _, p := range profiles {
		if p.isDefault && p.path != "" {
			return joinProfile(baseDir, p.path, p.isRelative), nil
		}
	}

	for _, p := range profiles {
		if p.path != "" {
			return joinProfile(baseDir, p.path, p.isRelative), nil
		}
	}

	return "", fmt.Errorf("%w in %s", ErrNoProfile, iniPath)
}

func joinProfile(baseDir, path string, relative bool) string {
	if relative {
		return filepath.Join(baseDir, filepath.FromSlash(path))
	}

	return filepath.Clean(path)
}
