package resource

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/kbukum/neysla/errors"
	"github.com/kbukum/neysla/httpclient"
	"github.com/kbukum/neysla/validation"
)

// Overrides is the per-call configuration. Every field is optional; unset
// fields fall back to the resource Descriptor.
type Overrides struct {
	// Delimiters fill the path segments in order.
	Delimiters []any
	// Params are merged over the descriptor's query parameters.
	Params map[string]any
	// Headers are merged over the descriptor's headers.
	Headers map[string]string
	// Body is merged over the descriptor's body.
	Body map[string]any
	// RequestType overrides the body encoding.
	RequestType RequestType
	// ResponseType overrides the declared response interpretation.
	ResponseType string
	// Progress receives download progress notifications.
	Progress httpclient.ProgressFunc
}

// Option configures a single call.
type Option func(*Overrides)

// WithDelimiters sets the positional path values. A slice or array argument
// is spread in place, so WithDelimiters([]string{"7", "3"}) equals
// WithDelimiters("7", "3"). Each value is path-escaped: "a/b" fills a single
// segment as "a%2Fb" rather than adding a level.
func WithDelimiters(values ...any) Option {
	return func(o *Overrides) {
		o.Delimiters = spreadDelimiters(values)
	}
}

func spreadDelimiters(values []any) []any {
	if values == nil {
		return nil
	}
	out := make([]any, 0, len(values))
	for _, v := range values {
		if b, ok := v.([]byte); ok {
			out = append(out, string(b))
			continue
		}
		if !isScalar(v) {
			if list, err := parseDelimiters(v); err == nil {
				out = append(out, list...)
				continue
			}
		}
		out = append(out, v)
	}
	return out
}

// WithParams adds query parameters. Repeated calls merge, later keys win.
func WithParams(params map[string]any) Option {
	return func(o *Overrides) {
		o.Params = merge(o.Params, params)
	}
}

// WithParam adds a single query parameter.
func WithParam(key string, value any) Option {
	return WithParams(map[string]any{key: value})
}

// WithHeaders adds request headers. Repeated calls merge; a later name wins
// over an earlier one in any letter case.
func WithHeaders(headers map[string]string) Option {
	return func(o *Overrides) {
		o.Headers = mergeHeaders(o.Headers, headers)
	}
}

// WithHeader adds a single request header.
func WithHeader(name, value string) Option {
	return WithHeaders(map[string]string{name: value})
}

// WithBody adds body fields. Repeated calls merge, later keys win.
func WithBody(body map[string]any) Option {
	return func(o *Overrides) {
		o.Body = merge(o.Body, body)
	}
}

// WithRequestType sets the body encoding.
func WithRequestType(rt RequestType) Option {
	return func(o *Overrides) {
		o.RequestType = rt
	}
}

// WithResponseType sets the declared response interpretation.
func WithResponseType(rt string) Option {
	return func(o *Overrides) {
		o.ResponseType = rt
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn httpclient.ProgressFunc) Option {
	return func(o *Overrides) {
		o.Progress = fn
	}
}

// WithOverrides applies every set field of ov.
func WithOverrides(ov Overrides) Option {
	return func(o *Overrides) {
		if ov.Delimiters != nil {
			o.Delimiters = ov.Delimiters
		}
		o.Params = merge(o.Params, ov.Params)
		o.Headers = mergeHeaders(o.Headers, ov.Headers)
		o.Body = merge(o.Body, ov.Body)
		if ov.RequestType != "" {
			o.RequestType = ov.RequestType
		}
		if ov.ResponseType != "" {
			o.ResponseType = ov.ResponseType
		}
		if ov.Progress != nil {
			o.Progress = ov.Progress
		}
	}
}

func buildOverrides(opts []Option) Overrides {
	var ov Overrides
	for _, opt := range opts {
		if opt != nil {
			opt(&ov)
		}
	}
	return ov
}

// validate checks the typed overrides before anything is assembled.
func (o *Overrides) validate() error {
	v := validation.New().
		OneOf("requestType", string(o.RequestType), RequestTypes).
		Headers("headers", o.Headers)
	for i, d := range o.Delimiters {
		if !isScalar(d) {
			v.AddError("delimiters", fmt.Sprintf("value at position %d is not a scalar", i))
		}
	}
	if appErr := v.Validate(); appErr != nil {
		appErr.Code = errors.ErrCodeInvalidConfig
		return appErr
	}
	return nil
}

// ParseOverrides converts an untyped overrides object, such as one decoded
// from JSON or YAML, into Overrides. Recognized keys are delimiters, params,
// headers, body, requestType, responseType and progress; other keys are
// ignored. A non-string responseType and a progress value that is not a
// function are ignored as well, leaving the resource default in place.
func ParseOverrides(raw map[string]any) (Overrides, error) {
	var ov Overrides
	if raw == nil {
		return ov, nil
	}

	if v, ok := raw["delimiters"]; ok && v != nil {
		d, err := parseDelimiters(v)
		if err != nil {
			return Overrides{}, err
		}
		ov.Delimiters = d
	}

	var err error
	if ov.Params, err = parseMapping("params", raw["params"]); err != nil {
		return Overrides{}, err
	}
	if ov.Body, err = parseMapping("body", raw["body"]); err != nil {
		return Overrides{}, err
	}
	if ov.Headers, err = parseHeaders(raw["headers"]); err != nil {
		return Overrides{}, err
	}

	switch rt := raw["requestType"].(type) {
	case nil:
	case string:
		ov.RequestType = RequestType(rt)
	case RequestType:
		ov.RequestType = rt
	default:
		return Overrides{}, errors.InvalidConfig("requestType", "must be a string")
	}

	if rt, ok := raw["responseType"].(string); ok {
		ov.ResponseType = rt
	}

	switch fn := raw["progress"].(type) {
	case httpclient.ProgressFunc:
		ov.Progress = fn
	case func(httpclient.Progress):
		ov.Progress = fn
	}

	if err := ov.validate(); err != nil {
		return Overrides{}, err
	}
	return ov, nil
}

// parseDelimiters accepts a scalar or a list of scalars.
func parseDelimiters(v any) ([]any, error) {
	if isScalar(v) {
		return []any{v}, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.InvalidConfig("delimiters", "must be a string, a number or a list")
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, fmt.Stringer:
		return true
	}
	return false
}

// parseMapping accepts the string-keyed map shapes produced by common decoders.
func parseMapping(field string, v any) (map[string]any, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return cloneMap(m), nil
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return cloneMap(out), nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, errors.InvalidConfig(field, "must have string keys")
			}
			out[key] = val
		}
		return cloneMap(out), nil
	default:
		return nil, errors.InvalidConfig(field, "must be a key-value mapping")
	}
}

func parseHeaders(v any) (map[string]string, error) {
	if h, ok := v.(map[string]string); ok {
		return cloneMap(h), nil
	}
	m, err := parseMapping("headers", v)
	if err != nil || m == nil {
		return nil, err
	}
	out := make(map[string]string, len(m))
	var bad []string
	for k, val := range m {
		s, ok := val.(string)
		if !ok {
			bad = append(bad, k)
			continue
		}
		out[k] = s
	}
	if len(bad) > 0 {
		slices.Sort(bad)
		return nil, errors.InvalidConfig("headers", "values must be strings").
			WithDetail("headers", strings.Join(bad, ", "))
	}
	return out, nil
}
