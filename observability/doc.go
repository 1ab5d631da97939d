// Package observability provides optional OpenTelemetry tracing and metrics
// for apikit requests.
//
// Exporters are OTLP over HTTP. Tracing and metrics are opt-in per service:
//
//	tp, _ := observability.InitTracer(ctx, observability.DefaultTracerConfig("checkout-tests"))
//	defer tp.Shutdown(ctx)
//
//	svc, _ := client.NewService("/orders", client.WithTracing())
package observability
