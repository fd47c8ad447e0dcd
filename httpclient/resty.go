package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/kbukum/neysla/component"
	"github.com/kbukum/neysla/logger"
)

// RestyTransport is a Transport backed by go-resty. Response parsing is left
// to the caller; resty only moves bytes.
type RestyTransport struct {
	client *resty.Client
	config Config
	log    *logger.Logger
}

var _ Transport = (*RestyTransport)(nil)

// NewResty creates a resty-backed transport with the given configuration.
func NewResty(cfg Config, opts ...Option) (*RestyTransport, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	log := o.log.WithComponent("httpclient.resty")

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetLogger(restyLogger{log: log}).
		SetHeader("User-Agent", cfg.UserAgent)

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			client.SetTLSClientConfig(tlsCfg)
		}
	}

	if cfg.Auth != nil {
		auth := cfg.Auth
		client.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
			return auth.apply(req)
		})
	}

	return &RestyTransport{client: client, config: cfg, log: log}, nil
}

// Send executes one transaction and reports its terminal Outcome.
func (t *RestyTransport) Send(ctx context.Context, req *Request) *Outcome {
	r := t.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)

	if req.ContentType != "" {
		r.SetHeader("Content-Type", req.ContentType)
	}
	r.SetHeaders(req.Headers)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		t.log.Debug("transaction failed", logger.Fields(logger.FieldMethod, req.Method, logger.FieldURL, req.URL, logger.FieldError, err.Error()))
		return failedOutcome(ctx, err)
	}

	raw := resp.RawBody()
	var contentLength int64 = -1
	if resp.RawResponse != nil {
		contentLength = resp.RawResponse.ContentLength
	}

	var body []byte
	if raw != nil {
		defer func() { _ = raw.Close() }()
		body, err = io.ReadAll(newProgressReader(raw, contentLength, req.progress()))
		if err != nil {
			out := failedOutcome(ctx, fmt.Errorf("read response body: %w", err))
			out.StatusCode = resp.StatusCode()
			out.StatusText = statusText(resp.Status(), resp.StatusCode())
			out.RawHeaders = RawHeaderBlock(resp.Header())
			return out
		}
	}

	return &Outcome{
		Event:      EventLoad,
		StatusCode: resp.StatusCode(),
		StatusText: statusText(resp.Status(), resp.StatusCode()),
		Payload:    body,
		RawHeaders: RawHeaderBlock(resp.Header()),
	}
}

// Name returns the transport name.
func (t *RestyTransport) Name() string {
	return t.config.Name
}

// Close releases idle connections held by the transport.
func (t *RestyTransport) Close(_ context.Context) error {
	t.client.GetClient().CloseIdleConnections()
	return nil
}

// Unwrap returns the underlying resty client.
func (t *RestyTransport) Unwrap() *resty.Client {
	return t.client
}

// Describe returns a summary for component listings.
func (t *RestyTransport) Describe() component.Description {
	return component.Description{
		Name:    t.config.Name,
		Type:    "http-transport",
		Details: fmt.Sprintf("%s timeout=%s", TransportResty, t.config.Timeout),
	}
}

// restyLogger routes resty's internal messages to the structured logger.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
