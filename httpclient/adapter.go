package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kbukum/neysla/component"
	"github.com/kbukum/neysla/logger"
)

// Adapter is the net/http Transport with built-in auth and TLS.
type Adapter struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
}

var _ Transport = (*Adapter)(nil)

// New creates a new net/http adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	return &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    o.log.WithComponent("httpclient"),
	}, nil
}

// Send executes one transaction and reports its terminal Outcome.
func (a *Adapter) Send(ctx context.Context, req *Request) *Outcome {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return &Outcome{Event: EventError, Err: err}
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		a.log.Debug("transaction failed", logger.Fields(logger.FieldMethod, req.Method, logger.FieldURL, req.URL, logger.FieldError, err.Error()))
		return failedOutcome(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(newProgressReader(resp.Body, resp.ContentLength, req.progress()))
	if err != nil {
		out := failedOutcome(ctx, fmt.Errorf("read response body: %w", err))
		out.StatusCode = resp.StatusCode
		out.StatusText = statusText(resp.Status, resp.StatusCode)
		out.RawHeaders = RawHeaderBlock(resp.Header)
		return out
	}

	return &Outcome{
		Event:      EventLoad,
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp.Status, resp.StatusCode),
		Payload:    body,
		RawHeaders: RawHeaderBlock(resp.Header),
	}
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (a *Adapter) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", a.config.UserAgent)
	}

	if err := a.config.Auth.apply(httpReq); err != nil {
		return nil, fmt.Errorf("apply auth: %w", err)
	}

	return httpReq, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// Close releases idle connections held by the adapter.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// GetConfig returns the adapter's configuration.
func (a *Adapter) GetConfig() Config {
	return a.config
}

// Describe returns a summary for component listings.
func (a *Adapter) Describe() component.Description {
	return component.Description{
		Name:    a.config.Name,
		Type:    "http-transport",
		Details: fmt.Sprintf("%s timeout=%s", TransportNetHTTP, a.config.Timeout),
	}
}
