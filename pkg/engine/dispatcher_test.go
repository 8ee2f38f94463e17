package engine

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rayengine/go-ray-engine/pkg/core"
)

type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

// countSource produces n rays and then ends, optionally with an error
type countSource struct {
	n       int
	next    int
	failErr error
}

func (s *countSource) Next() (core.Ray, bool) {
	if s.next >= s.n {
		return core.Ray{}, false
	}
	s.next++
	return core.Ray{Direction: core.Vec3{Z: -1}}, true
}

func (s *countSource) Err() error {
	if s.next >= s.n {
		return s.failErr
	}
	return nil
}

// jitterEvaluator returns seq*2 as radiance after a small random delay, so
// completion order differs from submission order across workers
func jitterEvaluator() Evaluator {
	return funcEvaluator(func(_ core.Ray, seq uint64) (core.RadianceSample, error) {
		time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
		return core.RadianceSample{Color: core.Vec3{X: float64(seq) * 2}}, nil
	})
}

func TestRunEmitsInSubmissionOrder(t *testing.T) {
	dispatcher := NewDispatcher(Config{NumWorkers: 3, QueueCapacity: 2}, jitterEvaluator(), nopLogger{})

	var radiances []float64
	stats, err := dispatcher.Run(context.Background(), &countSource{n: 5}, func(result RayResult) {
		radiances = append(radiances, result.Sample.Color.X)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	expected := []float64{0, 2, 4, 6, 8}
	if len(radiances) != len(expected) {
		t.Fatalf("Expected %d results, got %d", len(expected), len(radiances))
	}
	for i, want := range expected {
		if radiances[i] != want {
			t.Errorf("Position %d: expected radiance %v, got %v", i, want, radiances[i])
		}
	}
	if stats.RaysSubmitted != 5 || stats.RaysEmitted != 5 {
		t.Errorf("Expected 5 submitted and emitted, got %d/%d", stats.RaysSubmitted, stats.RaysEmitted)
	}
}

func TestRunFailedRayEmittedInline(t *testing.T) {
	evaluator := funcEvaluator(func(_ core.Ray, seq uint64) (core.RadianceSample, error) {
		if seq == 2 {
			return core.RadianceSample{}, errors.New("simulated failure")
		}
		return core.RadianceSample{Color: core.Vec3{X: float64(seq) * 2}}, nil
	})
	dispatcher := NewDispatcher(Config{NumWorkers: 3}, evaluator, nopLogger{})

	var results []RayResult
	stats, err := dispatcher.Run(context.Background(), &countSource{n: 5}, func(result RayResult) {
		results = append(results, result)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 5 {
		t.Fatalf("Expected 5 results, got %d", len(results))
	}
	for i, result := range results {
		if i == 2 {
			if result.Ok() {
				t.Error("Expected result 2 to carry Failed status")
			}
			continue
		}
		if !result.Ok() {
			t.Errorf("Result %d unexpectedly failed: %v", i, result.Err)
		}
		if got := result.Sample.Color.X; got != float64(i)*2 {
			t.Errorf("Result %d: expected radiance %d, got %v", i, i*2, got)
		}
	}
	if stats.RaysFailed != 1 {
		t.Errorf("Expected 1 failed ray in stats, got %d", stats.RaysFailed)
	}
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	// Evaluator with no shared mutable state: output depends only on seq
	evaluator := funcEvaluator(func(_ core.Ray, seq uint64) (core.RadianceSample, error) {
		random := rand.New(rand.NewSource(int64(seq)))
		return core.RadianceSample{Color: core.Vec3{
			X: random.Float64(),
			Y: random.Float64(),
			Z: random.Float64(),
		}}, nil
	})

	render := func(workers int) []core.Vec3 {
		dispatcher := NewDispatcher(Config{NumWorkers: workers, QueueCapacity: 8}, evaluator, nopLogger{})
		var colors []core.Vec3
		_, err := dispatcher.Run(context.Background(), &countSource{n: 300}, func(result RayResult) {
			colors = append(colors, result.Sample.Color)
		})
		if err != nil {
			t.Fatalf("Run with %d workers failed: %v", workers, err)
		}
		return colors
	}

	serial := render(1)
	parallel := render(8)

	if len(serial) != len(parallel) {
		t.Fatalf("Result counts differ: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("Result %d differs between worker counts: %v vs %v", i, serial[i], parallel[i])
		}
	}
}

func TestRunNoTaskLossOrDuplication(t *testing.T) {
	const n = 2000
	dispatcher := NewDispatcher(Config{NumWorkers: 8, QueueCapacity: 4},
		funcEvaluator(func(_ core.Ray, seq uint64) (core.RadianceSample, error) {
			return core.RadianceSample{Color: core.Vec3{X: float64(seq)}}, nil
		}), nopLogger{})

	var seqs []uint64
	stats, err := dispatcher.Run(context.Background(), &countSource{n: n}, func(result RayResult) {
		seqs = append(seqs, result.Seq)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(seqs) != n {
		t.Fatalf("Expected exactly %d results, got %d", n, len(seqs))
	}
	for i, seq := range seqs {
		if seq != uint64(i) {
			t.Fatalf("Position %d: expected seq %d, got %d", i, i, seq)
		}
	}
	if stats.MaxBuffered > 4+stats.NumWorkers {
		t.Errorf("Reorder buffer high-water mark %d exceeds queue capacity + workers (%d)",
			stats.MaxBuffered, 4+stats.NumWorkers)
	}
}

func TestRunSourceErrorAfterPartialInput(t *testing.T) {
	sourceErr := errors.New("scene stream truncated")
	source := &countSource{n: 10, failErr: sourceErr}
	dispatcher := NewDispatcher(Config{NumWorkers: 2}, jitterEvaluator(), nopLogger{})

	var results []RayResult
	stats, err := dispatcher.Run(context.Background(), source, func(result RayResult) {
		results = append(results, result)
	})

	if !errors.Is(err, sourceErr) {
		t.Fatalf("Expected run error to wrap the source error, got %v", err)
	}
	// Completed work is flushed before the error is surfaced
	if len(results) != 10 {
		t.Errorf("Expected 10 flushed results, got %d", len(results))
	}
	if stats.RaysEmitted != stats.RaysSubmitted {
		t.Errorf("In-flight results not drained: %d emitted of %d submitted",
			stats.RaysEmitted, stats.RaysSubmitted)
	}
}

func TestRunContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	evaluated := make(chan struct{}, 1)
	evaluator := funcEvaluator(func(_ core.Ray, seq uint64) (core.RadianceSample, error) {
		select {
		case evaluated <- struct{}{}:
		default:
		}
		time.Sleep(time.Millisecond)
		return core.RadianceSample{}, nil
	})

	dispatcher := NewDispatcher(Config{NumWorkers: 2, QueueCapacity: 2}, evaluator, nopLogger{})

	// Cancel once the first evaluation is underway
	go func() {
		<-evaluated
		cancel()
	}()

	var count uint64
	stats, err := dispatcher.Run(ctx, &countSource{n: 100000}, func(RayResult) {
		count++
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if stats.RaysSubmitted >= 100000 {
		t.Error("Cancellation did not stop ray submission early")
	}
	// Every submitted task still produced exactly one result
	if count != stats.RaysSubmitted || stats.RaysEmitted != stats.RaysSubmitted {
		t.Errorf("Expected all %d submitted rays emitted, got %d", stats.RaysSubmitted, count)
	}
}

func TestRunValidation(t *testing.T) {
	dispatcher := NewDispatcher(Config{}, nil, nopLogger{})
	if _, err := dispatcher.Run(context.Background(), &countSource{n: 1}, func(RayResult) {}); !errors.Is(err, ErrNilEvaluator) {
		t.Errorf("Expected ErrNilEvaluator, got %v", err)
	}

	dispatcher = NewDispatcher(Config{}, jitterEvaluator(), nopLogger{})
	if _, err := dispatcher.Run(context.Background(), nil, func(RayResult) {}); !errors.Is(err, ErrNilSource) {
		t.Errorf("Expected ErrNilSource, got %v", err)
	}
}
