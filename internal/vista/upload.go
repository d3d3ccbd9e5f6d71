package vista

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type startUploadRequest struct {
	Name       string `json:"name"`
	MimeType   string `json:"mimetype"`
	Size       int64  `json:"size"`
	Hibernated bool   `json:"hibernated"`
}

// metadataKeys are the probe attributes copied onto the batch-update item.
// Keys the CDN omitted are sent as JSON null; when no metadata was offered
// at all, none of these keys appear in the payload.
var metadataKeys = []string{
	"width", "height", "aspect_ratio", "codec_name",
	"codec_long_name", "r_frame_rate", "time_base", "pix_fmt",
}

// newTempID returns the correlation id for one upload flow: the current
// Unix millisecond timestamp plus a random offset in [1000, 9999]. The
// start and finish calls must present the same id.
func newTempID() string {
	offset := int64(rand.IntN(9000) + 1000) //nolint:gosec // correlation id, not a secret

	return strconv.FormatInt(time.Now().UnixMilli()+offset, 10)
}

// UploadFile pushes one local file into the media library through the
// vendor's fixed flow: start, store, preflight, finish, metadata (when
// offered), associate. Steps run strictly in order and the first failure
// aborts the whole upload — there is no rollback, the flow is simply
// replayed from scratch on the next attempt.
//
// subfolder, when non-empty, files the asset under that folder id.
// The returned receipt is the finish response.
func (c *Client) UploadFile(ctx context.Context, path, subfolder string) (*UploadReceipt, error) {
	info, err := validateFile(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)

	mimeType := guessMIMEType(name)
	if mimeType == "" {
		mimeType = defaultMIMEType
	}

	tempID := newTempID()

	c.logger.Debug("starting upload",
		slog.String("file", path),
		slog.String("temp_id", tempID),
		slog.String("mime_type", mimeType),
		slog.Int64("size", info.Size()),
	)

	ticket, err := c.startUpload(ctx, name, mimeType, info.Size(), tempID, subfolder)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vista: reading %s: %w", path, err)
	}

	if err := c.storeObject(ctx, ticket.UploadURL, mimeType, data); err != nil {
		return nil, err
	}

	if err := c.preflight(ctx, ticket.UploadURL); err != nil {
		return nil, err
	}

	receipt, err := c.finishUpload(ctx, tempID, ticket.MediaGID)
	if err != nil {
		return nil, err
	}

	var meta map[string]any

	if ticket.MetaURL != "" {
		meta, err = c.fetchMetadata(ctx, ticket.MetaURL)
		if err != nil {
			return nil, err
		}
	}

	if err := c.associate(ctx, ticket.MediaGID, meta, subfolder); err != nil {
		return nil, err
	}

	c.logger.Info("uploaded file",
		slog.String("file", path),
		slog.String("media_gid", ticket.MediaGID),
	)

	return receipt, nil
}

// startUpload registers the upload and obtains the ticket: the pre-signed
// storage URL, the media id, and the optional metadata location.
func (c *Client) startUpload(
	ctx context.Context, name, mimeType string, size int64, tempID, subfolder string,
) (*UploadTicket, error) {
	q := url.Values{}
	q.Set("tempId", tempID)
	q.Set("replacement_type", "")

	reqBody := startUploadRequest{
		Name:       name,
		MimeType:   mimeType,
		Size:       size,
		Hibernated: true,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("vista: marshaling start request: %w", err)
	}

	hdr := c.vendorHeaders(http.MethodPost, c.mediaReferer(subfolder), "u=4")
	hdr["TE"] = "trailers"

	resp, err := c.do(ctx, http.MethodPost, "/api/publishing/media/upload/start", q, bytes.NewReader(bodyBytes), hdr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ticket UploadTicket
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		return nil, fmt.Errorf("vista: decoding start response: %w", err)
	}

	if ticket.UploadURL == "" || ticket.MediaGID == "" {
		return nil, fmt.Errorf("vista: start response missing upload_url or media_gid")
	}

	c.logger.Debug("upload started",
		slog.String("media_gid", ticket.MediaGID),
		slog.Bool("has_meta_url", ticket.MetaURL != ""),
	)

	return &ticket, nil
}

// storeObject PUTs the file bytes to the pre-signed storage URL. The URL is
// pre-authenticated, so the request goes out on the bare client with no
// session cookies attached.
func (c *Client) storeObject(ctx context.Context, uploadURL, mimeType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("vista: creating store request: %w", err)
	}

	c.browserHeaders(req, "")
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Content-Disposition", "inline")

	resp, err := c.doBare(req, "store")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, drainErr := io.Copy(io.Discard, resp.Body); drainErr != nil {
		return fmt.Errorf("vista: draining store response body: %w", drainErr)
	}

	c.logger.Debug("stored object",
		slog.Int("bytes", len(data)),
	)

	return nil
}

// preflight replays the CORS probe a browser sends around the cross-origin
// PUT. The storage host expects the probe as part of the browser traffic
// pattern, so its failure fails the upload.
func (c *Client) preflight(ctx context.Context, uploadURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, uploadURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("vista: creating preflight request: %w", err)
	}

	c.browserHeaders(req, "u=4")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "content-disposition,content-type")

	resp, err := c.doBare(req, "preflight")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, drainErr := io.Copy(io.Discard, resp.Body); drainErr != nil {
		return fmt.Errorf("vista: draining preflight response body: %w", drainErr)
	}

	return nil
}

// finishUpload confirms the stored object under the same correlation id the
// flow started with and returns the vendor's receipt.
func (c *Client) finishUpload(ctx context.Context, tempID, mediaGID string) (*UploadReceipt, error) {
	q := url.Values{}
	q.Set("tempId", tempID)
	q.Set("hibernated", "true")
	q.Set("id", mediaGID)
	q.Set("success", "true")
	q.Set("replacement_type", "")

	hdr := c.vendorHeaders(http.MethodPost, c.baseURL+"/media", "u=4")

	resp, err := c.do(ctx, http.MethodPost, "/api/publishing/media/upload/finish", q, nil, hdr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var receipt UploadReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("vista: decoding finish response: %w", err)
	}

	c.logger.Debug("upload finished",
		slog.String("media_gid", receipt.MediaGID),
	)

	return &receipt, nil
}

// fetchMetadata pulls the probe results the transcoder wrote next to the
// stored object. The attribute set varies by media kind, so the shape stays
// a loose map.
func (c *Client) fetchMetadata(ctx context.Context, metaURL string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metaURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("vista: creating metadata request: %w", err)
	}

	c.browserHeaders(req, "u=4")

	resp, err := c.doBare(req, "metadata")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var meta map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("vista: decoding metadata: %w", err)
	}

	c.logger.Debug("fetched metadata",
		slog.Int("attributes", len(meta)),
	)

	return meta, nil
}

// associate files the media under its folder and entities and attaches the
// probe attributes. Built as a loose map so attribute keys can be absent
// (no metadata) or explicitly null (metadata without that attribute).
func (c *Client) associate(ctx context.Context, mediaGID string, meta map[string]any, subfolder string) error {
	item := map[string]any{
		"media_gid":   mediaGID,
		"labels":      []string{},
		"description": "",
		"title":       "",
		"entity_gids": c.entityGIDs,
		"media_path":  []string{},
	}

	if subfolder != "" {
		item["media_path"] = []string{subfolder}
	}

	if len(meta) > 0 {
		for _, key := range metadataKeys {
			item[key] = meta[key]
		}
	}

	bodyBytes, err := json.Marshal([]map[string]any{item})
	if err != nil {
		return fmt.Errorf("vista: marshaling batch request: %w", err)
	}

	hdr := c.vendorHeaders(http.MethodPut, c.mediaReferer(subfolder), "u=4")

	resp, err := c.do(ctx, http.MethodPut, "/api/publishing/media/batch", nil, bytes.NewReader(bodyBytes), hdr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, drainErr := io.Copy(io.Discard, resp.Body); drainErr != nil {
		return fmt.Errorf("vista: draining batch response body: %w", drainErr)
	}

	c.logger.Debug("associated media",
		slog.String("media_gid", mediaGID),
		slog.String("subfolder", subfolder),
	)

	return nil
}
