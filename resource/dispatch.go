package resource

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/kbukum/neysla/httpclient"
	"github.com/kbukum/neysla/logger"
	"github.com/kbukum/neysla/observability"
)

// dispatch sends req on its own goroutine and returns the pending Call.
func (r *Resource) dispatch(ctx context.Context, req *httpclient.Request) *Call {
	callCtx, cancel := context.WithCancel(ctx)
	c := newCall(uuid.NewString(), cancel)
	log := r.log.WithFields(logger.Fields(
		logger.FieldCallID, c.id,
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.URL,
	))
	log.Debug("dispatching call")

	go func() {
		defer cancel()
		start := time.Now()
		spanCtx, span := observability.StartCallSpan(callCtx, r.Name(), req.Method, req.URL, c.id)
		r.metrics.Begin(spanCtx, r.Name(), req.Method)

		var (
			env *Envelope
			err error
		)
		defer func() {
			if p := recover(); p != nil {
				env = nil
				err = &Rejection{
					Envelope: &Envelope{Method: req.Method, URL: req.URL, DataType: req.ResponseType, Headers: map[string]string{}},
					Err:      httpclient.NewConnectionError(fmt.Errorf("transport panic: %v", p)),
				}
			}
			status, outcome := 0, observability.OutcomeResolved
			if env != nil {
				status = env.StatusCode
			}
			if rej, ok := AsRejection(err); ok {
				status = rej.Envelope.StatusCode
			}
			if err != nil {
				outcome = observability.OutcomeRejected
			}
			observability.EndCallSpan(span, status, outcome, err)
			r.metrics.End(spanCtx, r.Name(), req.Method, status, outcome, time.Since(start))

			if err != nil {
				log.Warn("call rejected", logger.Fields(logger.FieldStatus, status, logger.FieldError, err.Error()))
			} else {
				log.Debug("call resolved", logger.Fields(logger.FieldStatus, status))
			}
			c.settle(env, err)
		}()

		out := r.transport.Send(spanCtx, req)
		env, err = normalize(req, out)
	}()
	return c
}

// normalize builds the Envelope for an outcome and classifies it.
func normalize(req *httpclient.Request, out *httpclient.Outcome) (*Envelope, error) {
	if out == nil {
		out = &httpclient.Outcome{Event: httpclient.EventError, Err: stderrors.New("transport reported no outcome")}
	}

	env := &Envelope{
		StatusCode: out.StatusCode,
		StatusText: out.StatusText,
		Headers:    parseHeaderBlock(out.RawHeaders),
		Data:       out.Payload,
		DataType:   req.ResponseType,
		Method:     req.Method,
		URL:        req.URL,
	}

	raw, isRaw := out.PayloadBytes()
	if isRaw {
		env.Raw = raw
	}
	env.MIMEType = detectMIME(env.Header("Content-Type"), raw)

	var decodeErr error
	if out.Event == httpclient.EventLoad && req.ResponseType == ResponseTypeJSON && isRaw {
		env.Data, decodeErr = decodeJSON(raw)
		if decodeErr != nil {
			env.Data = out.Payload
		}
	}

	if cause := httpclient.ClassifyOutcome(out); cause != nil {
		return nil, &Rejection{Envelope: env, Err: cause}
	}
	if decodeErr != nil {
		return nil, &Rejection{Envelope: env, Err: httpclient.NewDecodeError(out.StatusCode, raw, decodeErr)}
	}
	return env, nil
}

// decodeJSON parses raw. An empty payload decodes to nil.
func decodeJSON(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var v any
	if err := sonic.ConfigStd.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
