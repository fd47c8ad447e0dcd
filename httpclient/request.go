package httpclient

import "fmt"

// ProgressFunc receives download progress notifications. It may be called any
// number of times before the Outcome is returned.
type ProgressFunc func(Progress)

// Progress describes how much of the response payload has been read.
type Progress struct {
	// Loaded is the number of payload bytes read so far.
	Loaded int64
	// Total is the announced payload size, valid when LengthComputable is set.
	Total int64
	// LengthComputable reports whether the server announced a Content-Length.
	LengthComputable bool
}

// Request is a fully resolved, transport-ready request.
type Request struct {
	// Method is the HTTP method (GET, HEAD, POST, PATCH, PUT or DELETE).
	Method string
	// URL is the absolute URL, query string included.
	URL string
	// Headers are the custom request headers, applied after ContentType.
	Headers map[string]string
	// ContentType labels Body. It may be set with a nil Body.
	ContentType string
	// Body is the encoded payload. Nil means no body is sent.
	Body []byte
	// ResponseType is the declared interpretation of the response payload.
	ResponseType string
	// Progress is notified while the response payload is read. Never nil
	// once assembled.
	Progress ProgressFunc
}

func (r *Request) progress() ProgressFunc {
	if r.Progress == nil {
		return func(Progress) {}
	}
	return r.Progress
}

// Event identifies the terminal notification that ended a transaction.
type Event int

const (
	// EventLoad means a response was received, whatever its status.
	EventLoad Event = iota
	// EventError means the exchange failed before a response was complete.
	EventError
	// EventAbort means the transaction was cancelled.
	EventAbort
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventLoad:
		return "load"
	case EventError:
		return "error"
	case EventAbort:
		return "abort"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Outcome is the single terminal report of a transport transaction.
type Outcome struct {
	// Event is the terminal notification.
	Event Event
	// StatusCode is the HTTP status, 0 when no response arrived.
	StatusCode int
	// StatusText is the reason phrase, e.g. "Not Found".
	StatusText string
	// Payload is the response payload: raw []byte or string as delivered on
	// the wire, or an already-decoded value when the transport decodes itself.
	Payload any
	// RawHeaders is the newline-delimited response header block.
	RawHeaders string
	// Err is the underlying failure for error and abort events.
	Err error
}

// PayloadBytes returns the payload when it was delivered as raw text.
func (o *Outcome) PayloadBytes() ([]byte, bool) {
	switch p := o.Payload.(type) {
	case []byte:
		return p, true
	case string:
		return []byte(p), true
	default:
		return nil, false
	}
}
