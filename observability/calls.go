package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanCall is the span name of a resource call.
const SpanCall = "neysla.call"

// Call outcome labels.
const (
	OutcomeResolved = "resolved"
	OutcomeRejected = "rejected"
)

// Attribute keys set on call spans and metrics.
const (
	AttrResource   = "neysla.resource"
	AttrCallID     = "neysla.call.id"
	AttrOutcome    = "neysla.call.outcome"
	AttrMethod     = "http.request.method"
	AttrURL        = "url.full"
	AttrStatusCode = "http.response.status_code"
)

// StartCallSpan starts a client span for one resource call.
func StartCallSpan(ctx context.Context, resource, method, url, callID string) (context.Context, trace.Span) {
	return StartSpan(ctx, SpanCall,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrResource, resource),
			attribute.String(AttrMethod, method),
			attribute.String(AttrURL, url),
			attribute.String(AttrCallID, callID),
		),
	)
}

// EndCallSpan records the settlement of a call and ends span.
func EndCallSpan(span trace.Span, status int, outcome string, err error) {
	span.SetAttributes(attribute.String(AttrOutcome, outcome))
	if status > 0 {
		span.SetAttributes(attribute.Int(AttrStatusCode, status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
