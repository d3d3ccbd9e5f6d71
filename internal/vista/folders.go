package vista

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

type listFoldersResponse struct {
	Data []json.RawMessage `json:"data"`
}

type createFolderBody struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MediaPath   []string `json:"media_path"` // null when creating at the library root
	Labels      []string `json:"labels"`
	EntityGIDs  []string `json:"entity_gids"`
}

// ListFolders returns the media-library folders visible to the session.
// parentID, when non-empty, lists the subfolders of that folder instead of
// the library root. query filters by title ("" returns everything).
// An empty library yields an empty, non-nil slice.
func (c *Client) ListFolders(ctx context.Context, parentID, query string) ([]Folder, error) {
	c.logger.Info("listing folders",
		slog.String("parent_id", parentID),
	)

	q := url.Values{}
	q.Set("q", query)

	if parentID != "" {
		q.Set("media_path", parentID)
	}

	hdr := c.vendorHeaders(http.MethodGet, c.baseURL+"/media", "u=4")

	resp, err := c.do(ctx, http.MethodGet, "/api/publishing/media/folders", q, nil, hdr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var lfr listFoldersResponse
	if err := json.NewDecoder(resp.Body).Decode(&lfr); err != nil {
		return nil, fmt.Errorf("vista: decoding folders response: %w", err)
	}

	folders := make([]Folder, 0, len(lfr.Data))

	for _, raw := range lfr.Data {
		var f Folder
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("vista: decoding folder: %w", err)
		}

		f.Raw = raw
		folders = append(folders, f)
	}

	c.logger.Info("listed folders",
		slog.Int("count", len(folders)),
	)

	return folders, nil
}

// CreateFolder creates a media-library folder. The API reports some
// rejections (duplicate titles, bad parents) inside a 2xx body; those fail
// with ErrRejected.
func (c *Client) CreateFolder(ctx context.Context, req CreateFolderRequest) (*Folder, error) {
	c.logger.Info("creating folder",
		slog.String("title", req.Title),
		slog.String("parent_id", req.ParentID),
	)

	body := createFolderBody{
		Title:       req.Title,
		Description: req.Description,
		Labels:      req.Labels,
		EntityGIDs:  req.EntityGIDs,
	}

	if req.ParentID != "" {
		body.MediaPath = []string{req.ParentID}
	}

	// labels and entity_gids marshal as [] rather than null when unset.
	if body.Labels == nil {
		body.Labels = []string{}
	}

	if body.EntityGIDs == nil {
		body.EntityGIDs = []string{}
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("vista: marshaling create folder request: %w", err)
	}

	// The trailing "?" mirrors the referer captured from browser traffic.
	referer := c.baseURL + "/media?"
	if req.ParentID != "" {
		referer = c.mediaReferer(req.ParentID)
	}

	hdr := c.vendorHeaders(http.MethodPost, referer, "u=0")
	hdr["TE"] = "trailers"

	resp, err := c.do(ctx, http.MethodPost, "/api/publishing/media/folder", nil, bytes.NewReader(bodyBytes), hdr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("vista: reading create folder response: %w", err)
	}

	// The error member's presence marks a rejection, whatever its value.
	var probe struct {
		Error json.RawMessage `json:"error"`
	}

	if err := json.Unmarshal(respBytes, &probe); err != nil {
		return nil, fmt.Errorf("vista: decoding create folder response: %w", err)
	}

	if probe.Error != nil {
		var msg string
		if err := json.Unmarshal(probe.Error, &msg); err != nil {
			msg = string(probe.Error)
		}

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Err:        ErrRejected,
		}
	}

	var folder Folder
	if err := json.Unmarshal(respBytes, &folder); err != nil {
		return nil, fmt.Errorf("vista: decoding created folder: %w", err)
	}

	folder.Raw = respBytes

	return &folder, nil
}

// DeleteFolder deletes a folder by id. Success is judged on the HTTP
// status alone.
func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	c.logger.Info("deleting folder",
		slog.String("folder_id", folderID),
	)

	hdr := c.vendorHeaders(http.MethodDelete, c.baseURL+"/media?", "u=0")

	resp, err := c.do(ctx, http.MethodDelete, "/api/publishing/media/folder/"+url.PathEscape(folderID), nil, nil, hdr)
	if err != nil {
		return err
	}

	// Drain and close to reuse the connection.
	defer resp.Body.Close()

	if _, copyErr := io.Copy(io.Discard, resp.Body); copyErr != nil {
		return fmt.Errorf("vista: draining delete response body: %w", copyErr)
	}

	return nil
}
