package resource

import (
	"net/http"

	"github.com/kbukum/neysla/errors"
	"github.com/kbukum/neysla/httpclient"
)

// carriesBody reports whether method goes through the body stage.
func carriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// assemble resolves the descriptor and overrides into a transport request.
func (r *Resource) assemble(method string, ov Overrides) (*httpclient.Request, error) {
	if err := ov.validate(); err != nil {
		return nil, err
	}

	u, err := resolvePath(r.desc.URL, r.desc.Segments, ov.Delimiters)
	if err != nil {
		return nil, err
	}

	if params := merge(r.desc.Params, ov.Params); params != nil {
		q, err := joinPairs(params)
		if err != nil {
			return nil, errors.InvalidConfig("params", "cannot be rendered").WithCause(err)
		}
		u += "?" + q
	}

	req := &httpclient.Request{
		Method:       method,
		URL:          u,
		Headers:      mergeHeaders(r.desc.Headers, ov.Headers),
		ResponseType: firstNonEmpty(ov.ResponseType, r.desc.ResponseType, ResponseTypeJSON),
		Progress:     ov.Progress,
	}
	if req.Progress == nil {
		req.Progress = func(httpclient.Progress) {}
	}

	if carriesBody(method) {
		enc, err := encodeBody(ov.RequestType.or(r.desc.RequestType), merge(r.desc.Body, ov.Body))
		if err != nil {
			return nil, err
		}
		req.Body = enc.body
		req.ContentType = enc.contentType
	}
	return req, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
