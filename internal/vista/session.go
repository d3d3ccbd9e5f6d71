package vista

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"vistacli/internal/authfile"
)

// Header values shared by every publishing-API request. The API only serves
// its own web frontend, so requests must look like they came from it.
const (
	vendorUserAgent  = "VistaSocialUI"
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:141.0) Gecko/20100101 Firefox/141.0"
	acceptLanguage   = "en-US,en;q=0.5"
)

// Session carries the browser cookies and the fixed header set attached to
// every publishing-API request. It is built once per invocation and is
// read-only afterwards — Set-Cookie responses never mutate it, so a
// mid-sequence cookie rotation cannot change request identity.
type Session struct {
	cookieHeader string
}

// NewSession builds a session from extracted cookie name/value pairs.
// The Cookie header is precomputed with names in sorted order so request
// identity is deterministic.
func NewSession(cookies map[string]string) *Session {
	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}

	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+cookies[name])
	}

	return &Session{cookieHeader: strings.Join(pairs, "; ")}
}

// LoadSession reads the credential file and builds a session from it.
// A missing or unreadable file reports ErrNotAuthenticated.
func LoadSession(path string) (*Session, error) {
	cookies, err := authfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w (run auth-extract first)", ErrNotAuthenticated, err)
	}

	return NewSession(cookies), nil
}

// apply sets the session headers on a publishing-API request.
func (s *Session) apply(req *http.Request) {
	req.Header.Set("User-Agent", vendorUserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("DNT", "1")
	req.Header.Set("Sec-GPC", "1")

	if s.cookieHeader != "" {
		req.Header.Set("Cookie", s.cookieHeader)
	}
}
