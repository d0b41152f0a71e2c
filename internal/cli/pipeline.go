package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/iterx/asynciter"
	apperrors "github.com/kbukum/iterx/errors"
	"github.com/kbukum/iterx/iterator"
	"github.com/kbukum/iterx/logger"
	"github.com/kbukum/iterx/numeric"
	"github.com/kbukum/iterx/observability"
	"github.com/kbukum/iterx/option"
	"github.com/kbukum/iterx/validation"
)

var reducers = []string{"sum", "product", "min", "max", "count"}

// pipelineOptions are the stages applied after a source, in field order.
type pipelineOptions struct {
	Drop    int
	Cycle   int
	Take    int
	Reverse bool
	Reduce  string
	Async   bool
	Batch   int
	ChainID string
}

func bindPipelineFlags(fs *pflag.FlagSet, o *pipelineOptions) {
	fs.IntVar(&o.Drop, "drop", 0, "skip this many leading values")
	fs.IntVar(&o.Cycle, "cycle", 1, "repeat the sequence this many times in total")
	fs.IntVar(&o.Take, "take", -1, "keep at most this many values (-1 keeps all)")
	fs.BoolVar(&o.Reverse, "reverse", false, "emit values in reverse order")
	fs.StringVar(&o.Reduce, "reduce", "", "aggregate instead of listing: "+strings.Join(reducers, "|"))
	fs.BoolVar(&o.Async, "async", false, "evaluate through the asynchronous iterator")
	fs.IntVar(&o.Batch, "batch", 0, "print values in lines of this size (implies --async; default from config)")
	fs.StringVar(&o.ChainID, "chain-id", "", "UUID reported with metrics and traces (default: random)")
}

func (o *pipelineOptions) validate() error {
	return validation.New().
		NonNegative("drop", o.Drop).
		Positive("cycle", o.Cycle).
		Custom(o.Take >= -1, "take", fmt.Sprintf("must be -1 or more (got %d)", o.Take)).
		NonNegative("batch", o.Batch).
		OneOf("reduce", o.Reduce, reducers).
		OptionalUUID("chain_id", o.ChainID).
		Custom(o.Reduce == "" || o.Batch == 0, "batch", "cannot be combined with --reduce").
		Validate()
}

// parseNumber reads a command argument as a float64. NaN is rejected since
// it never compares past a range bound.
func parseNumber(op, arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil || math.IsNaN(v) {
		return 0, apperrors.MisshapenElement(op, arg)
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// runPipeline applies o to src and writes the result to w.
func (a *app) runPipeline(ctx context.Context, w io.Writer, src *iterator.Iterator[float64], o *pipelineOptions) error {
	it := src.Drop(o.Drop)
	if o.Cycle > 1 {
		it = it.CycleN(o.Cycle)
	}
	if o.Take >= 0 {
		it = it.Take(o.Take)
	}
	if o.Reverse {
		it = it.Reverse()
	}

	batch := o.Batch
	if batch == 0 && o.Reduce == "" {
		batch = a.cfg.Range.BatchSize
	}

	opts := []observability.InstrumentOption{observability.WithName("pipeline")}
	if o.ChainID != "" {
		opts = append(opts, observability.WithChainID(o.ChainID))
	}
	logger.Debug("running pipeline", logger.Fields(
		"drop", o.Drop, "cycle", o.Cycle, "take", o.Take, "reverse", o.Reverse,
		"reduce", o.Reduce, "async", o.Async || batch > 0, "batch", batch,
	))

	if !o.Async && batch == 0 {
		it = observability.InstrumentSync(it, a.metrics, opts...)
		return a.writeSync(w, it, o.Reduce)
	}

	ait := observability.InstrumentAsync(it.ToAsync(), a.metrics, append(opts, observability.WithTracer(a.tracer))...)
	if batch > 0 {
		return a.writeBatches(ctx, w, asynciter.Batch(ait, batch, a.cfg.Range.BatchTimeout))
	}
	return a.writeAsync(ctx, w, ait, o.Reduce)
}

func (a *app) writeSync(w io.Writer, it *iterator.Iterator[float64], reduce string) error {
	switch reduce {
	case "sum":
		return writeLine(w, formatNumber(numeric.Sum(it)))
	case "product":
		return writeLine(w, formatNumber(numeric.Product(it)))
	case "min":
		return writeOption(w, numeric.Min(it))
	case "max":
		return writeOption(w, numeric.Max(it))
	case "count":
		return writeLine(w, strconv.Itoa(it.Count()))
	}
	values := iterator.Map(it, func(v float64, _ int) string { return formatNumber(v) })
	return writeLine(w, strings.Join(values.ToSlice(), a.cfg.Range.Separator))
}

func (a *app) writeAsync(ctx context.Context, w io.Writer, it *asynciter.Iterator[float64], reduce string) error {
	switch reduce {
	case "sum":
		v, err := numeric.SumAsync(ctx, it)
		if err != nil {
			return err
		}
		return writeLine(w, formatNumber(v))
	case "product":
		v, err := numeric.ProductAsync(ctx, it)
		if err != nil {
			return err
		}
		return writeLine(w, formatNumber(v))
	case "min", "max":
		extreme := numeric.MinAsync[float64]
		if reduce == "max" {
			extreme = numeric.MaxAsync[float64]
		}
		v, err := extreme(ctx, it)
		if err != nil {
			return err
		}
		return writeOption(w, v)
	case "count":
		n, err := it.Count(ctx)
		if err != nil {
			return err
		}
		return writeLine(w, strconv.Itoa(n))
	}
	values, err := it.ToSlice(ctx)
	if err != nil {
		return err
	}
	return writeLine(w, joinNumbers(values, a.cfg.Range.Separator))
}

func (a *app) writeBatches(ctx context.Context, w io.Writer, batches *asynciter.Iterator[[]float64]) error {
	return batches.ForEach(ctx, func(_ context.Context, batch []float64, _ int) error {
		return writeLine(w, joinNumbers(batch, a.cfg.Range.Separator))
	})
}

func joinNumbers(values []float64, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, sep)
}

func writeOption(w io.Writer, v option.Option[float64]) error {
	if x, ok := v.Get(); ok {
		return writeLine(w, formatNumber(x))
	}
	return writeLine(w, "none")
}

func writeLine(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// unbounded reports whether a source with this many values would never end.
func unbounded(times int, o *pipelineOptions) bool {
	return times < 0 && o.Take < 0
}
