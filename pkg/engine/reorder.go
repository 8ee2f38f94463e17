package engine

import "sync"

// ResultReorderer buffers completed results keyed by sequence number and
// releases them to the sink strictly in submission order, regardless of the
// order in which workers finish. The sink is invoked by exactly one goroutine
// at a time, while the reorderer's lock is held, so it needs no locking of
// its own.
//
// Buffered results are bounded by the number of in-flight tasks (queue
// capacity + worker count), so memory stays bounded for arbitrarily long runs.
type ResultReorderer struct {
	mu        sync.Mutex
	buffer    map[uint64]RayResult
	next      uint64 // Next sequence number due for emission
	emitted   uint64
	highWater int // Largest buffer size observed, for diagnostics and tests
	sink      func(RayResult)
}

// NewResultReorderer creates a reorderer that emits in-order results to sink
func NewResultReorderer(sink func(RayResult)) *ResultReorderer {
	return &ResultReorderer{
		buffer: make(map[uint64]RayResult),
		sink:   sink,
	}
}

// Submit accepts a completed result from any worker goroutine. If the result
// completes a contiguous run starting at the emission cursor, that whole run
// is drained to the sink before Submit returns.
func (rr *ResultReorderer) Submit(result RayResult) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.buffer[result.Seq] = result
	if len(rr.buffer) > rr.highWater {
		rr.highWater = len(rr.buffer)
	}

	// Drain any run of consecutive ready results
	for {
		ready, ok := rr.buffer[rr.next]
		if !ok {
			break
		}
		delete(rr.buffer, rr.next)
		rr.next++
		rr.emitted++
		rr.sink(ready)
	}
}

// Pending returns the number of buffered out-of-order results
func (rr *ResultReorderer) Pending() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return len(rr.buffer)
}

// Emitted returns the number of results released to the sink so far
func (rr *ResultReorderer) Emitted() uint64 {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.emitted
}

// HighWaterMark returns the largest number of results ever buffered at once
func (rr *ResultReorderer) HighWaterMark() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.highWater
}

// NextExpected returns the sequence number due for emission next
func (rr *ResultReorderer) NextExpected() uint64 {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.next
}
