package vista

import "encoding/json"

// Folder is one media-library folder as the publishing API reports it.
// Raw keeps the untouched vendor object so list output can reproduce
// fields this client does not model.
type Folder struct {
	ID          string
	Title       string
	Description string
	CreatedAt   string // passed through verbatim; vendor format is undocumented

	Raw json.RawMessage
}

// UnmarshalJSON tolerates both string and numeric folder ids; the vendor
// is not consistent about id types across endpoints.
func (f *Folder) UnmarshalJSON(data []byte) error {
	var probe struct {
		ID          json.RawMessage `json:"id"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		CreatedAt   string          `json:"created_at"`
	}

	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	f.ID = idText(probe.ID)
	f.Title = probe.Title
	f.Description = probe.Description
	f.CreatedAt = probe.CreatedAt

	return nil
}

// idText renders a raw JSON id as plain text: strings lose their quotes,
// numbers keep their decimal form, null and absent become "".
func idText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return string(raw)
}

// CreateFolderRequest describes a folder to create. ParentID, when set,
// nests the new folder under an existing one.
type CreateFolderRequest struct {
	Title       string
	Description string
	Labels      []string
	EntityGIDs  []string
	ParentID    string
}

// UploadTicket is the start-upload response: a pre-signed storage URL, the
// server-assigned media id, and an optional metadata location on the CDN.
type UploadTicket struct {
	UploadURL string `json:"upload_url"` // pre-authenticated, ephemeral; never log
	MediaGID  string `json:"media_gid"`
	MetaURL   string `json:"meta_url"`
}

// UploadReceipt is the finish-upload response. TempID echoes the
// correlation id the client generated for the flow.
type UploadReceipt struct {
	MediaGID string `json:"media_gid"`
	TempID   string `json:"tempId"`
}
