package asynciter

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// BatchOption configures Batch.
type BatchOption func(*batchConfig)

type batchConfig struct {
	clock clockwork.Clock
}

// WithClock sets the clock used for the batch timeout.
func WithClock(c clockwork.Clock) BatchOption {
	return func(cfg *batchConfig) { cfg.clock = c }
}

// Batch groups consecutive values into slices of up to size values, closing
// a batch early once timeout has elapsed since its first pull.
//
// size=0 means collect until timeout. timeout=0 means collect until size.
// Both zero defaults to size=1. The timeout is checked between pulls, so a
// single slow pull is never interrupted.
//
// If a pull fails after some values were collected, the partial batch is
// emitted first and the error is returned by the following Next.
func Batch[T any](it *Iterator[T], size int, timeout time.Duration, opts ...BatchOption) *Iterator[[]T] {
	if size <= 0 && timeout <= 0 {
		size = 1
	}
	cfg := batchConfig{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&cfg)
	}
	b := &batchIter[T]{source: it, size: size, timeout: timeout, clock: cfg.clock}
	return &Iterator[[]T]{next: b.next, close: it.Close}
}

type batchIter[T any] struct {
	source  *Iterator[T]
	size    int
	timeout time.Duration
	clock   clockwork.Clock
	pending error
	done    bool
}

func (b *batchIter[T]) next(ctx context.Context) ([]T, bool, error) {
	if b.pending != nil {
		err := b.pending
		b.pending = nil
		return nil, false, err
	}
	if b.done {
		return nil, false, nil
	}

	var batch []T
	var expired <-chan time.Time
	if b.timeout > 0 {
		t := b.clock.NewTimer(b.timeout)
		defer t.Stop()
		expired = t.Chan()
	}

	for {
		if b.size > 0 && len(batch) >= b.size {
			return batch, true, nil
		}

		val, ok, err := b.source.Next(ctx)
		if err != nil {
			if len(batch) > 0 {
				b.pending = err
				return batch, true, nil
			}
			return nil, false, err
		}
		if !ok {
			b.done = true
			if len(batch) > 0 {
				return batch, true, nil
			}
			return nil, false, nil
		}

		batch = append(batch, val)

		if expired != nil {
			select {
			case <-expired:
				return batch, true, nil
			default:
			}
		}
	}
}
