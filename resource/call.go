package resource

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/kbukum/neysla/httpclient"
)

// Call is the handle of one dispatched request. It settles exactly once,
// either resolved with an Envelope or rejected with a *Rejection.
type Call struct {
	id     string
	cancel context.CancelFunc

	once sync.Once
	done chan struct{}
	env  *Envelope
	err  error
}

func newCall(id string, cancel context.CancelFunc) *Call {
	return &Call{id: id, cancel: cancel, done: make(chan struct{})}
}

// ID returns the call identifier used in logs and spans.
func (c *Call) ID() string { return c.id }

// Done is closed once the call has settled.
func (c *Call) Done() <-chan struct{} { return c.done }

// Wait blocks until the call settles or ctx ends. Ending ctx stops the wait
// only; use Abort to cancel the request itself.
func (c *Call) Wait(ctx context.Context) (*Envelope, error) {
	select {
	case <-c.done:
		return c.env, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Abort cancels the in-flight request. The call then settles as rejected,
// unless it has already settled.
func (c *Call) Abort() {
	c.cancel()
}

// settle records the result. Only the first settlement takes effect.
func (c *Call) settle(env *Envelope, err error) bool {
	settled := false
	c.once.Do(func() {
		c.env, c.err = env, err
		settled = true
		close(c.done)
	})
	return settled
}

// Rejection is the error of a rejected call. It carries the same Envelope a
// resolved call would, so status, headers and data stay inspectable.
type Rejection struct {
	Envelope *Envelope
	// Err classifies the failure, typically an *httpclient.Error.
	Err error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("neysla: %s %s rejected: %v", r.Envelope.Method, r.Envelope.URL, r.Err)
}

func (r *Rejection) Unwrap() error { return r.Err }

// Code returns the transport classification of the failure.
func (r *Rejection) Code() httpclient.ErrorCode {
	var e *httpclient.Error
	if stderrors.As(r.Err, &e) {
		return e.Code
	}
	return httpclient.ErrorCode(-1)
}

// AsRejection extracts a *Rejection from err.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if stderrors.As(err, &r) {
		return r, true
	}
	return nil, false
}
