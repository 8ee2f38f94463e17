package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrQueueClosed is returned when pushing to a closed task queue
	ErrQueueClosed = errors.New("task queue is closed")

	// ErrNilEvaluator is returned when a dispatcher is run without an evaluator
	ErrNilEvaluator = errors.New("evaluator must not be nil")

	// ErrNilSource is returned when a dispatcher is run without a ray source
	ErrNilSource = errors.New("ray source must not be nil")
)

// TaskError records the failure of a single ray evaluation, carrying the
// sequence number so the failure can be correlated with its input ray.
type TaskError struct {
	Seq uint64
	Err error
}

// Error implements the error interface
func (e *TaskError) Error() string {
	return fmt.Sprintf("ray %d failed: %v", e.Seq, e.Err)
}

// Unwrap returns the underlying error
func (e *TaskError) Unwrap() error {
	return e.Err
}

// NewTaskError wraps an evaluation failure for the given sequence number
func NewTaskError(seq uint64, err error) error {
	return &TaskError{Seq: seq, Err: err}
}
