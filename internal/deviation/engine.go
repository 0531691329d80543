package deviation

import (
	"context"
	"runtime"

	"scadaval/domain/core"
	"scadaval/domain/deviation"
	"scadaval/internal"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of rows handled by one worker task.
const DefaultChunkSize = 4096

// Options tunes how the engine splits work across goroutines.
type Options struct {
	// Workers caps concurrently processed chunks. Values below 2 run sequentially.
	Workers int
	// ChunkSize is the rows per task. Inputs no longer than one chunk run sequentially.
	ChunkSize int
}

// DefaultOptions uses one worker per CPU.
func DefaultOptions() Options {
	return Options{
		Workers:   runtime.GOMAXPROCS(0),
		ChunkSize: DefaultChunkSize,
	}
}

// Engine compares two aligned columns row by row and aggregates the result.
// It holds no per-run state and is safe for concurrent use.
type Engine struct {
	opts   Options
	logger *internal.Logger
}

// NewEngine creates a deviation engine
func NewEngine(opts Options, logger *internal.Logger) *Engine {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Engine{opts: opts, logger: logger}
}

// Compare runs a sequential comparison with default settings.
func Compare(a, b []deviation.Value) (*deviation.Result, error) {
	return NewEngine(Options{Workers: 1}, nil).Compare(context.Background(), a, b)
}

// Compare produces one record per row, in input order, plus the run summary.
// The only error for well-formed input is a length mismatch; zero baselines
// and missing values are reported as record states.
func (e *Engine) Compare(ctx context.Context, a, b []deviation.Value) (*deviation.Result, error) {
	if len(a) != len(b) {
		return nil, core.NewLengthMismatchError(len(a), len(b))
	}

	n := len(a)
	if e.opts.Workers < 2 || n <= e.opts.ChunkSize {
		e.logger.Trace("[DeviationEngine] sequential compare of %d rows", n)
		records := make([]deviation.Record, n)
		acc := newAccumulator(n)
		compareChunk(a, b, 0, records, acc)
		return &deviation.Result{Records: records, Summary: acc.summary()}, nil
	}

	return e.compareParallel(ctx, a, b)
}

// compareParallel splits rows into chunks, compares them concurrently and
// merges the chunk accumulators in chunk order.
func (e *Engine) compareParallel(ctx context.Context, a, b []deviation.Value) (*deviation.Result, error) {
	n := len(a)
	size := e.opts.ChunkSize
	chunks := (n + size - 1) / size
	e.logger.Debug("[DeviationEngine] parallel compare of %d rows in %d chunks (workers=%d)", n, chunks, e.opts.Workers)

	records := make([]deviation.Record, n)
	partials := make([]*accumulator, chunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for c := 0; c < chunks; c++ {
		start := c * size
		end := min(start+size, n)
		idx := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			acc := newAccumulator(end - start)
			compareChunk(a[start:end], b[start:end], start, records[start:end], acc)
			partials[idx] = acc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newAccumulator(n)
	for _, p := range partials {
		total.merge(p)
	}

	return &deviation.Result{Records: records, Summary: total.summary()}, nil
}

// compareChunk fills out[i] for each row and folds it into acc. offset is the
// row index of a[0] in the full input.
func compareChunk(a, b []deviation.Value, offset int, out []deviation.Record, acc *accumulator) {
	for i := range a {
		rec := CompareRow(offset+i, a[i], b[i])
		out[i] = rec
		acc.add(rec)
	}
}
