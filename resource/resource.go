package resource

import (
	"context"
	"net/http"
	"slices"

	"github.com/kbukum/neysla/errors"
	"github.com/kbukum/neysla/httpclient"
	"github.com/kbukum/neysla/logger"
	"github.com/kbukum/neysla/observability"
	"github.com/kbukum/neysla/validation"
)

// Descriptor holds the defaults of one resource. It is copied by New and
// never modified afterwards.
type Descriptor struct {
	// Name is the logical resource name used in logs and spans.
	Name string `yaml:"name" mapstructure:"name"`
	// URL is the base the path is appended to, e.g. "https://api.example.com/".
	URL string `yaml:"url" mapstructure:"url"`
	// Segments are the path names, e.g. ["users", "posts"]. A single string
	// in configuration decodes to a one-element list.
	Segments []string `yaml:"segments" mapstructure:"segments" validate:"required,min=1,dive,required"`
	// Params are the default query parameters.
	Params map[string]any `yaml:"params" mapstructure:"params"`
	// Headers are the default request headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers" validate:"omitempty,header_names,header_values"`
	// RequestType is the default body encoding.
	RequestType RequestType `yaml:"request_type" mapstructure:"request_type" validate:"omitempty,oneof=json multipart default"`
	// ResponseType is the default response interpretation. Defaults to "json".
	ResponseType string `yaml:"response_type" mapstructure:"response_type"`
	// Body is the default body for payload-carrying verbs.
	Body map[string]any `yaml:"body" mapstructure:"body"`
}

func (d Descriptor) clone() Descriptor {
	d.Segments = slices.Clone(d.Segments)
	d.Params = cloneMap(d.Params)
	d.Headers = cloneMap(d.Headers)
	d.Body = cloneMap(d.Body)
	return d
}

// Resource issues requests against one REST resource. It is safe for
// concurrent use.
type Resource struct {
	desc      Descriptor
	transport httpclient.Transport
	log       *logger.Logger
	metrics   *observability.CallMetrics
}

// ResourceOption configures a Resource at construction.
type ResourceOption func(*Resource)

// WithLogger sets the logger that receives configuration errors and call
// diagnostics.
func WithLogger(l *logger.Logger) ResourceOption {
	return func(r *Resource) {
		r.log = l
	}
}

// WithMetrics sets the instruments calls are recorded on.
func WithMetrics(m *observability.CallMetrics) ResourceOption {
	return func(r *Resource) {
		r.metrics = m
	}
}

// New validates desc and binds it to transport.
func New(desc Descriptor, transport httpclient.Transport, opts ...ResourceOption) (*Resource, error) {
	if transport == nil {
		return nil, errors.InvalidConfig("transport", "is required")
	}
	if err := validation.Validate(desc); err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			appErr.Code = errors.ErrCodeInvalidConfig
			return nil, appErr
		}
		return nil, err
	}

	r := &Resource{desc: desc.clone(), transport: transport}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get("resource")
	}
	if r.metrics == nil {
		r.metrics = observability.DefaultCallMetrics()
	}
	r.log = r.log.WithFields(logger.Fields(logger.FieldResource, r.Name()))
	return r, nil
}

// Name returns the descriptor name, or the first segment when unnamed.
func (r *Resource) Name() string {
	if r.desc.Name != "" {
		return r.desc.Name
	}
	return r.desc.Segments[0]
}

// Descriptor returns a copy of the resource defaults.
func (r *Resource) Descriptor() Descriptor {
	return r.desc.clone()
}

// Get issues a GET request.
func (r *Resource) Get(ctx context.Context, opts ...Option) (*Call, error) {
	return r.call(ctx, http.MethodGet, opts)
}

// Head issues a HEAD request.
func (r *Resource) Head(ctx context.Context, opts ...Option) (*Call, error) {
	return r.call(ctx, http.MethodHead, opts)
}

// Post issues a POST request with the merged body.
func (r *Resource) Post(ctx context.Context, opts ...Option) (*Call, error) {
	return r.call(ctx, http.MethodPost, opts)
}

// Patch issues a PATCH request with the merged body.
func (r *Resource) Patch(ctx context.Context, opts ...Option) (*Call, error) {
	return r.call(ctx, http.MethodPatch, opts)
}

// Put issues a PUT request with the merged body.
func (r *Resource) Put(ctx context.Context, opts ...Option) (*Call, error) {
	return r.call(ctx, http.MethodPut, opts)
}

// Remove issues a DELETE request with the merged body.
func (r *Resource) Remove(ctx context.Context, opts ...Option) (*Call, error) {
	return r.call(ctx, http.MethodDelete, opts)
}

// Do issues a request with the given method and waits for it to settle.
func (r *Resource) Do(ctx context.Context, method string, opts ...Option) (*Envelope, error) {
	if !slices.Contains(Methods, method) {
		return nil, errors.InvalidInput("method", "unsupported method "+method)
	}
	c, err := r.call(ctx, method, opts)
	if err != nil {
		return nil, err
	}
	return c.Wait(ctx)
}

// Methods lists the HTTP methods a Resource issues.
var Methods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost,
	http.MethodPatch, http.MethodPut, http.MethodDelete,
}

func (r *Resource) call(ctx context.Context, method string, opts []Option) (*Call, error) {
	ov := buildOverrides(opts)
	req, err := r.assemble(method, ov)
	if err != nil {
		fields := logger.Fields(logger.FieldMethod, method, logger.FieldError, err.Error())
		if appErr, ok := errors.AsAppError(err); ok {
			fields[logger.FieldCode] = string(appErr.Code)
		}
		r.log.Error("invalid call configuration", fields)
		return nil, err
	}
	return r.dispatch(ctx, req), nil
}
