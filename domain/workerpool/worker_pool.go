package workerpool

import (
	"context"
	"fmt"
	"sync"
)

// Job represents the job to be run
type Job[T any] struct {
	Task func(ctx context.Context) (T, error)
}

// JobResult represents the result of a job
type JobResult[T any] struct {
	Result T
	Err    error
}

// RunAll executes all jobs concurrently and waits for all of them to complete.
// The i-th result corresponds to the i-th job regardless of completion order.
// A failing or panicking job never affects the others; its error is carried in its result.
//
// If timeout is positive, every job receives its own context bounded by it. A job that
// ignores its context is abandoned once the deadline passes and reports the context error.
func RunAll[T any](ctx context.Context, jobs []Job[T], timeout JobTimeout) []JobResult[T] {
	results := make([]JobResult[T], len(jobs))

	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		go func(i int, job Job[T]) {
			defer wg.Done()

			jobCtx, cancel := timeout.apply(ctx)
			defer cancel()

			results[i] = run(jobCtx, job)
		}(i, job)
	}
	wg.Wait()

	return results
}

// run executes job and returns its result, or the context error if ctx is done first.
func run[T any](ctx context.Context, job Job[T]) JobResult[T] {
	// Buffered so that an abandoned job can still complete.
	resultChan := make(chan JobResult[T], 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultChan <- JobResult[T]{Err: fmt.Errorf("job panicked: %v", r)}
			}
		}()

		result, err := job.Task(ctx)
		resultChan <- JobResult[T]{Result: result, Err: err}
	}()

	select {
	case result := <-resultChan:
		return result
	case <-ctx.Done():
		return JobResult[T]{Err: ctx.Err()}
	}
}
