package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rayengine/go-ray-engine/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains configuration for a dispatcher run
type Config struct {
	NumWorkers    int // Number of parallel workers (0 = use CPU count)
	QueueCapacity int // Pending-task bound providing producer backpressure
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers:    0,  // Auto-detect CPU count
		QueueCapacity: 64, // Keeps all workers fed without unbounded memory
	}
}

// RunStats summarizes a completed (or aborted) dispatcher run
type RunStats struct {
	RunID         uuid.UUID     // Unique identifier for this run
	NumWorkers    int           // Workers actually used
	RaysSubmitted uint64        // Tasks pushed to the queue
	RaysEmitted   uint64        // Results released to the sink
	RaysFailed    uint64        // Results emitted with Failed status
	MaxBuffered   int           // Reorder buffer high-water mark
	Elapsed       time.Duration // Wall-clock duration of the run
}

// Dispatcher drives a complete run: it enumerates rays from a source,
// assigns sequence numbers in generation order, feeds the task queue, and
// coordinates shutdown so that every exit path joins the workers and flushes
// results already computed.
type Dispatcher struct {
	config    Config
	evaluator Evaluator
	logger    core.Logger
}

// NewDispatcher creates a dispatcher for the given evaluator
func NewDispatcher(config Config, evaluator Evaluator, logger core.Logger) *Dispatcher {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if config.QueueCapacity < 1 {
		config.QueueCapacity = DefaultConfig().QueueCapacity
	}
	return &Dispatcher{
		config:    config,
		evaluator: evaluator,
		logger:    logger,
	}
}

// Run traces every ray produced by source and emits one RayResult per ray to
// sink, strictly in submission order. Per-ray evaluation failures appear
// in-line as failed results; a run-level failure (source error or context
// cancellation) stops submission, drains all in-flight work, and is returned
// after already-completed results have been flushed.
func (d *Dispatcher) Run(ctx context.Context, source RaySource, sink func(RayResult)) (RunStats, error) {
	if d.evaluator == nil {
		return RunStats{}, ErrNilEvaluator
	}
	if source == nil {
		return RunStats{}, ErrNilSource
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if sink == nil {
		sink = func(RayResult) {}
	}

	stats := RunStats{RunID: uuid.New()}
	start := time.Now()

	var failed uint64
	reorderer := NewResultReorderer(func(result RayResult) {
		if !result.Ok() {
			failed++ // Sink calls are serialized by the reorderer
		}
		sink(result)
	})

	queue := NewTaskQueue(d.config.QueueCapacity)
	pool := NewWorkerPool(queue, reorderer, d.evaluator, d.config.NumWorkers)
	stats.NumWorkers = pool.NumWorkers()

	d.logger.Printf("Run %s: starting %d workers (queue capacity %d)\n",
		stats.RunID, stats.NumWorkers, queue.Cap())
	pool.Start()

	// Feed the queue in generation order. Push blocks when the queue is at
	// capacity, which is exactly the backpressure we want; cancellation is
	// observed between pushes.
	var seq uint64
	var runErr error
	for {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		ray, ok := source.Next()
		if !ok {
			runErr = source.Err()
			break
		}
		if err := queue.Push(RayTask{Seq: seq, Ray: ray}); err != nil {
			// The dispatcher is the only closer, so this is an internal
			// contract violation rather than an expected condition.
			runErr = fmt.Errorf("push ray %d: %w", seq, err)
			break
		}
		seq++
	}

	// Whatever ended the loop, shut down the same way: no new tasks, let
	// in-flight evaluations finish, join every worker, keep partial results.
	queue.Close()
	pool.Wait()

	stats.RaysSubmitted = seq
	stats.RaysEmitted = reorderer.Emitted()
	stats.RaysFailed = failed
	stats.MaxBuffered = reorderer.HighWaterMark()
	stats.Elapsed = time.Since(start)

	if runErr != nil {
		d.logger.Printf("Run %s: aborted after %d/%d rays: %v\n",
			stats.RunID, stats.RaysEmitted, stats.RaysSubmitted, runErr)
		return stats, fmt.Errorf("ray generation aborted: %w", runErr)
	}

	d.logger.Printf("Run %s: completed %d rays (%d failed) in %v\n",
		stats.RunID, stats.RaysEmitted, stats.RaysFailed, stats.Elapsed)
	return stats, nil
}
