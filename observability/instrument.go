package observability

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/iterx/asynciter"
	"github.com/kbukum/iterx/iterator"
	"github.com/kbukum/iterx/logger"
)

// Outcome classifies a single pull.
type Outcome string

const (
	OutcomeValue Outcome = "value"
	OutcomeDone  Outcome = "done"
	OutcomeError Outcome = "error"
)

// InstrumentOption configures an instrumented stage.
type InstrumentOption func(*instrumentConfig)

type instrumentConfig struct {
	stage   string
	chainID string
	tracer  trace.Tracer
	clock   clockwork.Clock
}

// WithName sets the stage name reported on metrics and spans.
func WithName(name string) InstrumentOption {
	return func(c *instrumentConfig) { c.stage = name }
}

// WithChainID fixes the chain ID instead of generating one.
func WithChainID(id string) InstrumentOption {
	return func(c *instrumentConfig) { c.chainID = id }
}

// WithTracer enables a span per async pull.
func WithTracer(t trace.Tracer) InstrumentOption {
	return func(c *instrumentConfig) { c.tracer = t }
}

// WithClock sets the clock used to time pulls.
func WithClock(clock clockwork.Clock) InstrumentOption {
	return func(c *instrumentConfig) { c.clock = clock }
}

func newInstrumentConfig(opts []InstrumentOption) *instrumentConfig {
	c := &instrumentConfig{
		stage: "stage",
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.chainID == "" {
		c.chainID = NewChainID()
	}
	return c
}

// probe tracks the lifecycle shared by both wrappers.
type probe struct {
	cfg     *instrumentConfig
	metrics *Metrics
	log     *logger.Logger
	index   int
	started bool
	ended   bool
}

func newProbe(m *Metrics, opts []InstrumentOption) *probe {
	cfg := newInstrumentConfig(opts)
	return &probe{
		cfg:     cfg,
		metrics: m,
		log: logger.Get("observability").WithFields(logger.Fields(
			logger.FieldChainID, cfg.chainID,
			"stage", cfg.stage,
		)),
	}
}

func (p *probe) start(ctx context.Context) {
	if p.started {
		return
	}
	p.started = true
	if p.metrics != nil {
		p.metrics.RecordChainStart(ctx, p.cfg.stage)
	}
}

func (p *probe) end(ctx context.Context) {
	if !p.started || p.ended {
		return
	}
	p.ended = true
	if p.metrics != nil {
		p.metrics.RecordChainEnd(ctx, p.cfg.stage)
	}
	p.log.Debug("stage finished", logger.Fields("pulls", p.index))
}

// syncStage wraps a sync iterator.
type syncStage[T any] struct {
	it *iterator.Iterator[T]
	*probe
}

func (s *syncStage[T]) Next() (T, bool) {
	ctx := context.Background()
	s.start(ctx)
	began := s.cfg.clock.Now()
	v, ok := s.it.Next()
	outcome := OutcomeValue
	if !ok {
		outcome = OutcomeDone
	}
	if s.metrics != nil {
		s.metrics.RecordPull(ctx, s.cfg.stage, outcome, s.cfg.clock.Since(began))
	}
	s.index++
	if !ok {
		s.end(ctx)
	}
	return v, ok
}

func (s *syncStage[T]) Stop() {
	s.it.Stop()
	s.end(context.Background())
}

// InstrumentSync wraps it so that every pull is counted and timed. A nil
// Metrics only keeps the debug logs. The wrapper owns it.
func InstrumentSync[T any](it *iterator.Iterator[T], m *Metrics, opts ...InstrumentOption) *iterator.Iterator[T] {
	return iterator.From[T](&syncStage[T]{it: it, probe: newProbe(m, opts)})
}

// asyncStage wraps an async iterator.
type asyncStage[T any] struct {
	it *asynciter.Iterator[T]
	*probe
}

func (s *asyncStage[T]) Next(ctx context.Context) (T, bool, error) {
	s.start(ctx)
	chainID := s.cfg.chainID
	if id, ok := ChainIDFromContext(ctx); ok {
		chainID = id
	}

	var span trace.Span
	if s.cfg.tracer != nil {
		ctx, span = s.cfg.tracer.Start(ctx, SpanPull, trace.WithAttributes(
			attribute.String(AttrStage, s.cfg.stage),
			attribute.String(AttrChainID, chainID),
			attribute.Int(AttrIndex, s.index),
		))
		defer span.End()
	}

	began := s.cfg.clock.Now()
	v, ok, err := s.it.Next(ctx)
	elapsed := s.cfg.clock.Since(began)
	s.index++

	outcome := OutcomeValue
	switch {
	case err != nil:
		outcome = OutcomeError
	case !ok:
		outcome = OutcomeDone
	}
	if span != nil {
		span.SetAttributes(attribute.String(AttrOutcome, string(outcome)))
		if err != nil {
			SetSpanError(span, err)
		}
	}
	if s.metrics != nil {
		s.metrics.RecordPull(ctx, s.cfg.stage, outcome, elapsed)
		if err != nil {
			s.metrics.RecordError(ctx, s.cfg.stage, err)
		}
	}
	if err != nil {
		s.log.Debug("pull failed", logger.ErrorFields("next", err))
	}
	if err != nil || !ok {
		s.end(ctx)
	}
	return v, ok, err
}

func (s *asyncStage[T]) Close() error {
	err := s.it.Close()
	s.end(context.Background())
	return err
}

// InstrumentAsync wraps it so that every pull is counted, timed and, with
// WithTracer, traced. A chain ID on the pull context overrides the stage's
// own. The wrapper owns it.
func InstrumentAsync[T any](it *asynciter.Iterator[T], m *Metrics, opts ...InstrumentOption) *asynciter.Iterator[T] {
	return asynciter.From[T](&asyncStage[T]{it: it, probe: newProbe(m, opts)})
}
