package resource

import (
	"mime"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/tidwall/gjson"
)

// Envelope is the normalized response handed to the caller, both when a call
// resolves and, inside a Rejection, when it is rejected.
type Envelope struct {
	// StatusCode is the HTTP status, 0 when no response arrived.
	StatusCode int `json:"status"`
	// StatusText is the reason phrase.
	StatusText string `json:"status_text"`
	// Headers holds the response headers with names as delivered.
	Headers map[string]string `json:"headers"`
	// Data is the decoded payload for JSON responses, otherwise the payload
	// exactly as the transport delivered it.
	Data any `json:"data"`
	// Raw is the undecoded payload when the transport delivered raw bytes.
	Raw []byte `json:"-"`
	// DataType is the declared response type.
	DataType string `json:"data_type"`
	// MIMEType is the payload media type, from Content-Type or sniffed.
	MIMEType string `json:"mime_type,omitempty"`
	// Method and URL identify the originating request.
	Method string `json:"method"`
	URL    string `json:"url"`
}

// Header returns the value of the named header. Lookup is case-insensitive.
func (e *Envelope) Header(name string) string {
	if v, ok := e.Headers[name]; ok {
		return v
	}
	for k, v := range e.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Query evaluates a gjson path against the payload. Pre-decoded payloads are
// re-serialized first.
func (e *Envelope) Query(path string) gjson.Result {
	if len(e.Raw) > 0 {
		return gjson.GetBytes(e.Raw, path)
	}
	if e.Data == nil {
		return gjson.Result{}
	}
	data, err := sonic.ConfigStd.Marshal(e.Data)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(data, path)
}

// OK reports whether the status is in the 2xx range.
func (e *Envelope) OK() bool {
	return e.StatusCode >= 200 && e.StatusCode < 300
}

// parseHeaderBlock splits a raw header block into a mapping. Each non-empty
// line is split at its first colon; lines without one are skipped and later
// duplicates win.
func parseHeaderBlock(block string) map[string]string {
	headers := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers
}

// detectMIME prefers the declared Content-Type and falls back to sniffing raw.
func detectMIME(contentType string, raw []byte) string {
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			return mt
		}
	}
	if len(raw) == 0 {
		return ""
	}
	mt, _, err := mime.ParseMediaType(mimetype.Detect(raw).String())
	if err != nil {
		return ""
	}
	return mt
}
