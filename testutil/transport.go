package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/kbukum/neysla/component"
	"github.com/kbukum/neysla/httpclient"
)

// StubTransport is an httpclient.Transport that replays scripted Outcomes in
// order. Once the script runs out it answers every request with Fallback.
type StubTransport struct {
	// Fallback is returned when no scripted outcome is left. Defaults to
	// JSONOutcome(200, "{}").
	Fallback *httpclient.Outcome

	mu       sync.Mutex
	script   []*httpclient.Outcome
	requests []*httpclient.Request
	hold     bool
}

var (
	_ httpclient.Transport = (*StubTransport)(nil)
	_ TestComponent        = (*StubTransport)(nil)
)

// NewStubTransport returns a stub that will answer with outcomes in order.
func NewStubTransport(outcomes ...*httpclient.Outcome) *StubTransport {
	return &StubTransport{script: outcomes}
}

// Enqueue appends outcomes to the script.
func (s *StubTransport) Enqueue(outcomes ...*httpclient.Outcome) {
	s.mu.Lock()
	s.script = append(s.script, outcomes...)
	s.mu.Unlock()
}

// Hold makes Send block until its context is done and then report an abort.
func (s *StubTransport) Hold() {
	s.mu.Lock()
	s.hold = true
	s.mu.Unlock()
}

// Send records req and returns the next scripted outcome.
func (s *StubTransport) Send(ctx context.Context, req *httpclient.Request) *httpclient.Outcome {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	hold := s.hold
	var out *httpclient.Outcome
	if len(s.script) > 0 {
		out, s.script = s.script[0], s.script[1:]
	}
	s.mu.Unlock()

	if hold {
		<-ctx.Done()
		return &httpclient.Outcome{Event: httpclient.EventAbort, Err: ctx.Err()}
	}
	if out != nil {
		return out
	}
	if s.Fallback != nil {
		return s.Fallback
	}
	return JSONOutcome(http.StatusOK, "{}")
}

// Requests returns the requests seen so far.
func (s *StubTransport) Requests() []*httpclient.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*httpclient.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls returns how many times Send was invoked.
func (s *StubTransport) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Name implements component.Component.
func (s *StubTransport) Name() string { return "stub-transport" }

// Start is a no-op.
func (s *StubTransport) Start(context.Context) error { return nil }

// Stop is a no-op.
func (s *StubTransport) Stop(context.Context) error { return nil }

// Health is always healthy.
func (s *StubTransport) Health(context.Context) component.Health {
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// Reset clears the script, the recorded requests and Hold.
func (s *StubTransport) Reset(context.Context) error {
	s.mu.Lock()
	s.script, s.requests, s.hold = nil, nil, false
	s.mu.Unlock()
	return nil
}

// JSONOutcome is a load outcome carrying body with a JSON content type.
func JSONOutcome(status int, body string) *httpclient.Outcome {
	return &httpclient.Outcome{
		Event:      httpclient.EventLoad,
		StatusCode: status,
		StatusText: http.StatusText(status),
		Payload:    []byte(body),
		RawHeaders: "Content-Type: application/json\r\n",
	}
}

// TextOutcome is a load outcome with an arbitrary payload and header block.
func TextOutcome(status int, payload any, rawHeaders string) *httpclient.Outcome {
	return &httpclient.Outcome{
		Event:      httpclient.EventLoad,
		StatusCode: status,
		StatusText: http.StatusText(status),
		Payload:    payload,
		RawHeaders: rawHeaders,
	}
}

// ErrorOutcome is a network failure outcome.
func ErrorOutcome(err error) *httpclient.Outcome {
	return &httpclient.Outcome{Event: httpclient.EventError, Err: err}
}

// AbortOutcome is a cancelled-transaction outcome.
func AbortOutcome() *httpclient.Outcome {
	return &httpclient.Outcome{Event: httpclient.EventAbort, Err: context.Canceled}
}
