// Package firefox reads cookies out of a local Firefox installation.
//
// The browser keeps its cookie jar in a per-profile SQLite database
// (cookies.sqlite). A running Firefox holds that file locked, so the
// extractor copies the database (plus its WAL sidecars) to a scratch
// directory and queries the copy. Nothing here ever writes to the
// browser's own files.
package firefox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, registers as "sqlite".
)

// ErrNoCookies means the profile's cookie store holds nothing for the
// requested domain. The user needs to log in to the site in Firefox first.
var ErrNoCookies = errors.New("firefox: no cookies found")

// Cookies returns the cookies stored for domain (exact host or any
// subdomain) as a name → value map. When the store holds several cookies
// with the same name, the newest-created one wins.
func Cookies(ctx context.Context, profileDir, domain string) (map[string]string, error) {
	dbCopy, cleanup, err := copyCookieStore(profileDir)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	db, err := sql.Open("sqlite", dbCopy)
	if err != nil {
		return nil, fmt.Errorf("firefox: opening cookie store copy: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	// Domain cookies are stored with a leading dot (".example.com"),
	// host-only cookies without one. The LIKE arm catches both dotted
	// forms and subdomains; ORDER BY makes newer rows overwrite older
	// ones in the map.
	rows, err := db.QueryContext(ctx,
		`SELECT name, value FROM moz_cookies
		 WHERE host = ? OR host LIKE ?
		 ORDER BY creationTime`,
		domain, "%."+domain)
	if err != nil {
		return nil, fmt.Errorf("firefox: querying cookies for %s: %w", domain, err)
	}
	defer rows.Close()

	cookies := make(map[string]string)

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("firefox: scanning cookie row: %w", err)
		}

		cookies[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("firefox: iterating cookie rows: %w", err)
	}

	if len(cookies) == 0 {
		return nil, fmt.Errorf("%w for %s in %s", ErrNoCookies, domain, profileDir)
	}

	return cookies, nil
}

// copyCookieStore duplicates the profile's cookie database into a scratch
// directory so it can be opened even while Firefox holds the original
// locked. The -wal and -shm sidecars hold writes not yet checkpointed into
// the main file, so they are carried along when present.
func copyCookieStore(profileDir string) (string, func(), error) {
	src := filepath.Join(profileDir, "cookies.sqlite")

	if _, err := os.Stat(src); err != nil {
		return "", nil, fmt.Errorf("firefox: no cookie store in %s: %w", profileDir, err)
	}

	scratch, err := os.MkdirTemp("", "vistacli-cookies-")
	if err != nil {
		return "", nil, fmt.Errorf("firefox: creating scratch dir: %w", err)
	}

	cleanup := func() { _ = os.RemoveAll(scratch) }

	dst := filepath.Join(scratch, "cookies.sqlite")
	if err := copyFile(src, dst); err != nil {
		cleanup()

		return "", nil, err
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		if _, err := os.Stat(src + suffix); err != nil {
			continue
		}

		if err := copyFile(src+suffix, dst+suffix); err != nil {
			cleanup()

			return "", nil, err
		}
	}

	return dst, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("firefox: opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("firefox: creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()

		return fmt.Errorf("firefox: copying %s: %w", src, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("firefox: closing %s: %w", dst, err)
	}

	return nil
}
