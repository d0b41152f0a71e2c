// Package observability exports pull-level metrics and traces for iterator
// chains through OpenTelemetry.
//
// Setup mirrors any OTLP service:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("iterx"))
//	defer mp.Shutdown(ctx)
//	metrics, err := observability.NewMetrics(observability.Meter("iterx"))
//
// A chain is observed by wrapping one of its stages. Every pull through the
// wrapper is counted by outcome (value, done, error) and timed; asynchronous
// pulls also get a span:
//
//	it := observability.InstrumentSync(src, metrics, observability.WithName("source"))
//	ait := observability.InstrumentAsync(asrc, metrics, observability.WithTracer(tp.Tracer("iterx")))
//
// Each wrapper carries a chain ID (a random UUID unless WithChainID or a
// context chain ID supplies one) so that metrics, spans and debug logs from
// the same chain can be correlated.
package observability
