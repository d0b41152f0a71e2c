package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/iterx/asynciter"
	apperrors "github.com/kbukum/iterx/errors"
	"github.com/kbukum/iterx/iterator"
	"github.com/kbukum/iterx/testutil"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

// sumWhere totals an int64 sum metric over data points whose attributes
// match every given key/value.
func sumWhere(t *testing.T, reader *sdkmetric.ManualReader, name string, match map[string]string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s: unexpected data type %T", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				if matches(dp.Attributes, match) {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func matches(set attribute.Set, match map[string]string) bool {
	for k, want := range match {
		v, ok := set.Value(attribute.Key(k))
		if !ok || v.AsString() != want {
			return false
		}
	}
	return true
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetricsNoop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordChainStart(ctx, "s")
	metrics.RecordPull(ctx, "s", OutcomeValue, time.Millisecond)
	metrics.RecordError(ctx, "s", errors.New("boom"))
	metrics.RecordChainEnd(ctx, "s")
}

func TestInitProviders(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	mcfg := DefaultMeterConfig("test")
	mp, err := InitMeter(ctx, &mcfg)
	if err != nil {
		t.Fatalf("InitMeter: %v", err)
	}
	// No collector is listening; the final flush may fail.
	defer func() { _ = mp.Shutdown(ctx) }()

	tcfg := DefaultTracerConfig("test")
	tcfg.SampleRate = 0.5
	tp, err := InitTracer(ctx, &tcfg)
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	if Meter("test") == nil || Tracer("test") == nil {
		t.Fatal("expected global providers to be installed")
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		if got := samplerFor(tc.rate).Description(); got != tc.want {
			t.Errorf("samplerFor(%v) = %q, want %q", tc.rate, got, tc.want)
		}
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource(ExportConfig{ServiceName: "iterx", ServiceVersion: "1.2.3", Environment: "test"})
	if err != nil {
		t.Fatalf("newResource: %v", err)
	}
	v, ok := res.Set().Value("service.name")
	if !ok || v.AsString() != "iterx" {
		t.Errorf("service.name = %v, want iterx", v.AsString())
	}
}

func TestChainIDFromContext(t *testing.T) {
	if _, ok := ChainIDFromContext(context.Background()); ok {
		t.Error("expected no chain ID on background context")
	}
	ctx := ContextWithChainID(context.Background(), "abc")
	if id, ok := ChainIDFromContext(ctx); !ok || id != "abc" {
		t.Errorf("ChainIDFromContext = %q, %v", id, ok)
	}
	if NewChainID() == NewChainID() {
		t.Error("expected distinct chain IDs")
	}
}

func TestInstrumentSync_TakeCountsExactPulls(t *testing.T) {
	m, reader := newTestMetrics(t)
	src := testutil.Naturals()

	it := InstrumentSync(iterator.From[int](src), m, WithName("naturals"))
	got := it.Take(5).ToSlice()

	testutil.Equal(t, got, []int{0, 1, 2, 3, 4})
	if n := sumWhere(t, reader, MetricPullTotal, map[string]string{AttrStage: "naturals", AttrOutcome: "value"}); n != 5 {
		t.Errorf("value pulls = %d, want 5", n)
	}
	if n := sumWhere(t, reader, MetricPullTotal, map[string]string{AttrOutcome: "done"}); n != 0 {
		t.Errorf("done pulls = %d, want 0", n)
	}
	if n := sumWhere(t, reader, MetricChainActive, nil); n != 0 {
		t.Errorf("active stages = %d, want 0 after take stopped the source", n)
	}
	if src.Stops() != 1 {
		t.Errorf("source stops = %d, want 1", src.Stops())
	}
}

func TestInstrumentSync_Exhaustion(t *testing.T) {
	m, reader := newTestMetrics(t)

	it := InstrumentSync(iterator.Of(1, 2, 3), m)
	testutil.Equal(t, it.Count(), 3)

	if n := sumWhere(t, reader, MetricPullTotal, map[string]string{AttrOutcome: "value"}); n != 3 {
		t.Errorf("value pulls = %d, want 3", n)
	}
	if n := sumWhere(t, reader, MetricPullTotal, map[string]string{AttrOutcome: "done"}); n != 1 {
		t.Errorf("done pulls = %d, want 1", n)
	}
}

func TestInstrumentSync_NilMetrics(t *testing.T) {
	it := InstrumentSync(iterator.Of("a", "b"), nil)
	testutil.Equal(t, it.ToSlice(), []string{"a", "b"})
}

func TestInstrumentAsync_SpansAndErrors(t *testing.T) {
	m, reader := newTestMetrics(t)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	boom := errors.New("boom")
	src := testutil.FailAt([]int{1, 2, 3}, 2, boom)
	it := InstrumentAsync(asynciter.From[int](src), m,
		WithName("failing"),
		WithChainID("chain-1"),
		WithTracer(tp.Tracer("test")),
		WithClock(clockwork.NewFakeClock()),
	)

	got, err := it.ToSlice(context.Background())
	testutil.ErrorIs(t, err, boom)
	testutil.Equal(t, got, []int{1, 2})

	spans := recorder.Ended()
	if len(spans) != 3 {
		t.Fatalf("spans = %d, want 3", len(spans))
	}
	for _, s := range spans {
		if s.Name() != SpanPull {
			t.Errorf("span name = %q, want %q", s.Name(), SpanPull)
		}
		if !matches(attribute.NewSet(s.Attributes()...), map[string]string{AttrChainID: "chain-1", AttrStage: "failing"}) {
			t.Errorf("span attributes = %v", s.Attributes())
		}
	}
	if spans[2].Status().Code != codes.Error {
		t.Errorf("last span status = %v, want Error", spans[2].Status().Code)
	}

	if n := sumWhere(t, reader, MetricPullTotal, map[string]string{AttrOutcome: "error"}); n != 1 {
		t.Errorf("error pulls = %d, want 1", n)
	}
	if n := sumWhere(t, reader, MetricErrorTotal, map[string]string{AttrErrorCode: string(apperrors.ErrCodeCallbackFailed)}); n != 1 {
		t.Errorf("errors by code = %d, want 1", n)
	}
}

func TestInstrumentAsync_ContextChainID(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	it := InstrumentAsync(asynciter.Of(1), nil, WithTracer(tp.Tracer("test")))
	ctx := ContextWithChainID(context.Background(), "from-ctx")
	n, err := it.Count(ctx)
	testutil.NoError(t, err)
	testutil.Equal(t, n, 1)

	for _, s := range recorder.Ended() {
		if !matches(attribute.NewSet(s.Attributes()...), map[string]string{AttrChainID: "from-ctx"}) {
			t.Errorf("span attributes = %v, want chain from context", s.Attributes())
		}
	}
}
