package vista

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// Client is an HTTP client for the Vista Social publishing API.
// It handles request construction, session authentication, browser header
// mimicry, and error classification. Requests are never retried — the
// vendor's upload flow is replayed from scratch on failure instead.
type Client struct {
	baseURL    string
	httpClient *http.Client // publishing-API calls: session cookies + blanket timeout
	bareClient *http.Client // storage and CDN calls: pre-signed URLs, no cookies
	session    *Session
	entityGIDs []string
	logger     *slog.Logger
}

// NewClient creates a publishing-API client.
// baseURL is typically "https://vistasocial.com". httpClient carries the
// vendor-call timeout; bareClient serves pre-signed storage and CDN URLs
// and must not share the session's cookies.
func NewClient(
	baseURL string, httpClient, bareClient *http.Client,
	sess *Session, entityGIDs []string, logger *slog.Logger,
) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if bareClient == nil {
		bareClient = http.DefaultClient
	}

	if entityGIDs == nil {
		entityGIDs = []string{}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		bareClient: bareClient,
		session:    sess,
		entityGIDs: entityGIDs,
		logger:     logger,
	}
}

// do executes a single HTTP request against the publishing API.
// The path is appended to the client's base URL; query and extra headers
// are optional. Non-2xx responses are classified into *APIError.
// The caller is responsible for closing the response body on success.
func (c *Client) do(
	ctx context.Context, method, path string,
	query url.Values, body io.Reader, hdr map[string]string,
) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("vista: creating request: %w", err)
	}

	c.session.apply(req)

	for k, v := range hdr {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vista: %s %s: %w", method, path, err)
	}

	// 2xx — success.
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		c.logger.Debug("request succeeded",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return resp, nil
	}

	// Read and close body for error responses.
	errBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()

	if readErr != nil {
		errBody = []byte("(failed to read response body)")
	}

	c.logger.Debug("request failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Message:    string(errBody),
		Err:        classifyStatus(resp.StatusCode),
	}
}

// doBare executes a single request on the cookie-less client, used for
// pre-signed storage URLs and the CDN. Non-2xx responses are classified
// into *APIError. The caller closes the response body on success.
func (c *Client) doBare(req *http.Request, step string) (*http.Response, error) {
	resp, err := c.bareClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vista: %s request failed: %w", step, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, _ := io.ReadAll(resp.Body) //nolint:errcheck // best-effort read for error message
		resp.Body.Close()

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(errBody),
			Err:        classifyStatus(resp.StatusCode),
		}
	}

	return resp, nil
}

// vendorHeaders returns the per-request headers a browser attaches to
// same-origin publishing-API calls. Origin is only sent on state-changing
// methods, matching browser CORS behavior.
func (c *Client) vendorHeaders(method, referer, priority string) map[string]string {
	h := map[string]string{
		"Content-Type":   "application/json",
		"Referer":        referer,
		"Sec-Fetch-Dest": "empty",
		"Sec-Fetch-Mode": "cors",
		"Sec-Fetch-Site": "same-origin",
		"Priority":       priority,
	}

	if method != http.MethodGet {
		h["Origin"] = c.baseURL
	}

	return h
}

// browserHeaders applies the Firefox header set used for storage and CDN
// requests. Those hosts sit on other origins, so Sec-Fetch-Site is
// cross-site and the session's API identity does not apply.
func (c *Client) browserHeaders(req *http.Request, priority string) {
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("DNT", "1")
	req.Header.Set("Sec-GPC", "1")
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "cross-site")

	if priority != "" {
		req.Header.Set("Priority", priority)
	}
}

// mediaReferer returns the media-library page URL the browser would be on:
// the folder page when a folder is in play, the library root otherwise.
func (c *Client) mediaReferer(folderID string) string {
	if folderID == "" {
		return c.baseURL + "/media"
	}

	return c.baseURL + "/media/" + folderID
}
