// Package observability provides OpenTelemetry tracing and metrics for
// resource calls.
//
// Every dispatched call runs inside a client span started by StartCallSpan
// and is recorded on CallMetrics. Without an installed provider both are
// no-ops. To export them:
//
//	tp, err := observability.InitTracer(ctx, &tracerCfg)
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, &meterCfg)
//	defer mp.Shutdown(ctx)
//
// Setup does both from a Config.
package observability
