package engine

import "sync"

// TaskQueue is a bounded, thread-safe FIFO of pending ray tasks. Producers
// block when the queue is at capacity, giving backpressure when ray
// generation outpaces evaluation. A channel cannot express "a blocked push
// fails when the queue closes" without panicking, so this is a classic
// condition-variable bounded buffer instead.
type TaskQueue struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	items    []RayTask // Ring buffer of length capacity
	head     int
	count    int
	closed   bool
}

// NewTaskQueue creates a task queue with the given capacity.
// Capacity must be at least 1.
func NewTaskQueue(capacity int) *TaskQueue {
	if capacity < 1 {
		capacity = 1
	}
	q := &TaskQueue{items: make([]RayTask, capacity)}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push appends a task, blocking while the queue is at capacity. It returns
// ErrQueueClosed if the queue is closed, including while blocked waiting
// for space.
func (q *TaskQueue) Push(task RayTask) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == len(q.items) && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrQueueClosed
	}

	q.items[(q.head+q.count)%len(q.items)] = task
	q.count++
	q.notEmpty.Signal()
	return nil
}

// Pop removes the oldest task, blocking while the queue is empty. It returns
// ok=false only once the queue is closed and fully drained.
func (q *TaskQueue) Pop() (RayTask, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.count == 0 {
		// Closed and drained
		return RayTask{}, false
	}

	task := q.items[q.head]
	q.items[q.head] = RayTask{}
	q.head = (q.head + 1) % len(q.items)
	q.count--
	q.notFull.Signal()
	return task, true
}

// Close signals that no further pushes will occur. Blocked pushers fail with
// ErrQueueClosed; blocked poppers drain remaining items and then observe
// end-of-stream. Close is idempotent.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// Len returns the number of pending tasks
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the queue capacity
func (q *TaskQueue) Cap() int {
	return len(q.items)
}
