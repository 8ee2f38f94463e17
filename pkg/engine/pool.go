package engine

import (
	"fmt"
	"runtime"
	"sync"
)

// WorkerPool manages parallel ray evaluation. Each worker repeatedly pulls a
// task from the queue, invokes the evaluator, and hands the wrapped outcome
// to the reorderer. Workers are purely reactive: they exit only when the
// queue reports end-of-stream, and are never interrupted mid-evaluation.
type WorkerPool struct {
	queue      *TaskQueue
	reorderer  *ResultReorderer
	evaluator  Evaluator
	numWorkers int
	wg         sync.WaitGroup
}

// NewWorkerPool creates a pool with the specified number of workers.
// A count ≤ 0 selects the available hardware concurrency.
func NewWorkerPool(queue *TaskQueue, reorderer *ResultReorderer, evaluator Evaluator, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		queue:      queue,
		reorderer:  reorderer,
		evaluator:  evaluator,
		numWorkers: numWorkers,
	}
}

// Start spawns all worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Wait blocks until every worker has observed end-of-stream and exited
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for {
		task, ok := wp.queue.Pop()
		if !ok {
			return
		}
		wp.reorderer.Submit(wp.evaluateTask(task))
	}
}

// evaluateTask invokes the evaluator, converting an error or a panic into a
// failed result so that one bad ray never halts the pool or loses its slot
// in the output stream.
func (wp *WorkerPool) evaluateTask(task RayTask) (result RayResult) {
	result.Seq = task.Seq

	defer func() {
		if r := recover(); r != nil {
			result.Err = NewTaskError(task.Seq, fmt.Errorf("evaluator panic: %v", r))
		}
	}()

	sample, err := wp.evaluator.EvaluateRay(task.Ray, task.Seq)
	if err != nil {
		result.Err = NewTaskError(task.Seq, err)
		return result
	}
	result.Sample = sample
	return result
}
