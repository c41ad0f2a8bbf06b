// Package worker provides a parallel image processing worker pool.
package worker

import (
	"context"
	"sync"
	"time"
)

// Processor is the per-file processing interface. Each image is handled
// independently, so files parallelize trivially while the pixel loop
// inside stays single-threaded.
type Processor interface {
	Process(ctx context.Context, task Task) error
}

// Task names one input image and its output destination.
type Task struct {
	Input  string
	Output string
}

// Result represents the outcome of one task.
type Result struct {
	Task    Task
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Processor  Processor
	OnProgress ProgressFunc
}

// Pool runs file tasks across a fixed number of workers.
type Pool struct {
	workers    int
	processor  Processor
	onProgress ProgressFunc
}

// New creates a worker pool; fewer than one worker is coerced to one.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		processor:  cfg.Processor,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns their results. It blocks until
// every task has completed or the context is cancelled; cancelled tasks
// report ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var (
		completed int
		failed    int
		mu        sync.Mutex
	)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	// taskCh is buffered for every task, so feeding never blocks and
	// every task produces exactly one Result even after cancellation.
	go func() {
		for _, task := range tasks {
			taskCh <- task
		}
		close(taskCh)
	}()

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results = append(results, result)

			mu.Lock()
			completed++
			if result.Err != nil {
				failed++
			}
			c, f := completed, failed
			mu.Unlock()

			if p.onProgress != nil {
				p.onProgress(c, len(tasks), f)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{Task: task, Err: ctx.Err()}
			continue
		default:
		}

		start := time.Now()
		err := p.processor.Process(ctx, task)

		results <- Result{
			Task:    task,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}
