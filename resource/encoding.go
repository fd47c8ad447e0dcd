package resource

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"slices"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cast"

	"github.com/kbukum/neysla/errors"
)

// RequestType selects how a request body is encoded.
type RequestType string

const (
	// RequestTypeDefault encodes the body as application/x-www-form-urlencoded.
	RequestTypeDefault RequestType = "default"
	// RequestTypeJSON encodes the body as application/json.
	RequestTypeJSON RequestType = "json"
	// RequestTypeMultipart encodes the body as multipart/form-data.
	RequestTypeMultipart RequestType = "multipart"
)

// MIME labels attached as Content-Type.
const (
	MIMEJSON      = "application/json"
	MIMEForm      = "application/x-www-form-urlencoded"
	MIMEMultipart = "multipart/form-data"
)

// ResponseTypeJSON is the response type that triggers payload decoding.
const ResponseTypeJSON = "json"

// RequestTypes lists the accepted request type names.
var RequestTypes = []string{string(RequestTypeJSON), string(RequestTypeMultipart), string(RequestTypeDefault)}

// Valid reports whether rt is a known request type. The empty value is valid
// and means "not set".
func (rt RequestType) Valid() bool {
	return rt == "" || slices.Contains(RequestTypes, string(rt))
}

// or returns rt, or fallback when rt is not set.
func (rt RequestType) or(fallback RequestType) RequestType {
	if rt == "" {
		return fallback
	}
	return rt
}

// FileField is a body value sent as a file part by the multipart encoding.
// Other encodings send its FileName.
type FileField struct {
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the part MIME type. Defaults to application/octet-stream.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader is an alternative to Data for content produced on the fly.
	Reader io.Reader
}

func (f FileField) String() string { return f.FileName }

// MarshalJSON encodes the field as its file name. The content is only sent
// by the multipart encoding.
func (f FileField) MarshalJSON() ([]byte, error) {
	return sonic.ConfigStd.Marshal(f.FileName)
}

// encoded is the output of the content encoder.
type encoded struct {
	body        []byte
	contentType string
}

// encodeBody serializes body with the strategy selected by rt. A nil body
// sends no payload but keeps the strategy's Content-Type; multipart has no
// label without a boundary.
func encodeBody(rt RequestType, body map[string]any) (encoded, error) {
	var (
		encode func(map[string]any) (encoded, error)
		label  string
	)
	switch rt.or(RequestTypeDefault) {
	case RequestTypeJSON:
		encode, label = encodeJSON, MIMEJSON
	case RequestTypeMultipart:
		encode = encodeMultipart
	case RequestTypeDefault:
		encode, label = encodeForm, MIMEForm
	default:
		return encoded{}, errors.InvalidConfig("requestType", fmt.Sprintf("must be one of: %s", strings.Join(RequestTypes, ", ")))
	}
	if body == nil {
		return encoded{contentType: label}, nil
	}
	enc, err := encode(body)
	if err != nil {
		return encoded{}, errors.Encoding(string(rt.or(RequestTypeDefault)), err)
	}
	return enc, nil
}

func encodeJSON(body map[string]any) (encoded, error) {
	data, err := sonic.ConfigStd.Marshal(body)
	if err != nil {
		return encoded{}, err
	}
	return encoded{body: data, contentType: MIMEJSON}, nil
}

func encodeForm(body map[string]any) (encoded, error) {
	s, err := joinPairs(body)
	if err != nil {
		return encoded{}, err
	}
	return encoded{body: []byte(s), contentType: MIMEForm}, nil
}

func encodeMultipart(body map[string]any) (encoded, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range sortedKeys(body) {
		var err error
		switch v := body[k].(type) {
		case FileField:
			err = writeFilePart(w, k, v)
		case *FileField:
			if v != nil {
				err = writeFilePart(w, k, *v)
			}
		default:
			var s string
			if s, err = formatValue(v); err == nil {
				err = w.WriteField(k, s)
			}
		}
		if err != nil {
			return encoded{}, fmt.Errorf("field %q: %w", k, err)
		}
	}

	if err := w.Close(); err != nil {
		return encoded{}, err
	}
	return encoded{body: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}

func writeFilePart(w *multipart.Writer, name string, f FileField) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		`form-data; name="`+escapeQuotes(name)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	if f.Reader != nil && f.Data == nil {
		_, err = io.Copy(part, f.Reader)
		return err
	}
	_, err = part.Write(f.Data)
	return err
}

// escapeQuotes escapes characters that would end a quoted header parameter.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}

// joinPairs renders m as k=v pairs joined by "&", keys sorted, both sides
// query-escaped.
func joinPairs(m map[string]any) (string, error) {
	var b strings.Builder
	for _, k := range sortedKeys(m) {
		v, err := formatValue(m[k])
		if err != nil {
			return "", fmt.Errorf("field %q: %w", k, err)
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	return b.String(), nil
}

// formatValue renders a scalar as text. Composite values fall back to their
// JSON form.
func formatValue(v any) (string, error) {
	if s, err := cast.ToStringE(v); err == nil {
		return s, nil
	}
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
