package httpclient

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Transport sends a Request and reports exactly one Outcome. Implementations
// must be safe for concurrent use; each Send owns its own transaction.
type Transport interface {
	Send(ctx context.Context, req *Request) *Outcome
}

// TransportFunc adapts an ordinary function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) *Outcome

// Send calls f(ctx, req).
func (f TransportFunc) Send(ctx context.Context, req *Request) *Outcome {
	return f(ctx, req)
}

// NewTransport builds the transport selected by cfg.Transport.
func NewTransport(cfg Config, opts ...Option) (Transport, error) {
	switch cfg.Transport {
	case TransportResty:
		return NewResty(cfg, opts...)
	default:
		return New(cfg, opts...)
	}
}

// failedOutcome converts a transport error into an abort or error outcome.
func failedOutcome(ctx context.Context, err error) *Outcome {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return &Outcome{Event: EventAbort, Err: err}
	}
	return &Outcome{Event: EventError, Err: err}
}

// RawHeaderBlock renders h as "Name: value" lines joined by CRLF, one line per
// header with multiple values joined by ", ". Names keep the case h stores.
func RawHeaderBlock(h http.Header) string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.Join(h[name], ", "))
		b.WriteString("\r\n")
	}
	return b.String()
}

// statusText extracts the reason phrase from a status line like "404 Not Found".
func statusText(status string, code int) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		return http.StatusText(code)
	}
	return text
}
