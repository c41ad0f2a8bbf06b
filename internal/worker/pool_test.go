package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// recordingProcessor records which inputs it saw and fails for inputs
// listed in fail.
type recordingProcessor struct {
	mu    sync.Mutex
	seen  []string
	fail  map[string]bool
	delay time.Duration
}

func (p *recordingProcessor) Process(ctx context.Context, task Task) error {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	p.mu.Lock()
	p.seen = append(p.seen, task.Input)
	p.mu.Unlock()

	if p.fail[task.Input] {
		return fmt.Errorf("boom: %s", task.Input)
	}
	return nil
}

func makeTasks(n int) []Task {
	tasks := make([]Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, Task{
			Input:  fmt.Sprintf("in/%d.png", i),
			Output: fmt.Sprintf("out/%d.png", i),
		})
	}
	return tasks
}

func TestPoolProcessesAllTasks(t *testing.T) {
	proc := &recordingProcessor{}
	pool := New(Config{Workers: 4, Processor: proc})

	tasks := makeTasks(10)
	results := pool.Run(context.Background(), tasks)

	if len(results) != len(tasks) {
		t.Fatalf("got %d results, want %d", len(results), len(tasks))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("task %s failed: %v", res.Task.Input, res.Err)
		}
	}

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if len(proc.seen) != len(tasks) {
		t.Fatalf("processor saw %d tasks, want %d", len(proc.seen), len(tasks))
	}
}

func TestPoolReportsFailures(t *testing.T) {
	proc := &recordingProcessor{fail: map[string]bool{"in/3.png": true}}

	var (
		mu         sync.Mutex
		lastFailed int
		lastTotal  int
	)
	pool := New(Config{
		Workers:   2,
		Processor: proc,
		OnProgress: func(completed, total, failed int) {
			mu.Lock()
			lastFailed = failed
			lastTotal = total
			mu.Unlock()
		},
	})

	results := pool.Run(context.Background(), makeTasks(5))

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			if !strings.Contains(res.Err.Error(), "in/3.png") {
				t.Fatalf("unexpected error: %v", res.Err)
			}
		}
	}
	if failed != 1 {
		t.Fatalf("got %d failures, want 1", failed)
	}

	mu.Lock()
	defer mu.Unlock()
	if lastFailed != 1 || lastTotal != 5 {
		t.Fatalf("progress reported failed=%d total=%d", lastFailed, lastTotal)
	}
}

func TestPoolCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := &recordingProcessor{}
	pool := New(Config{Workers: 2, Processor: proc})

	results := pool.Run(ctx, makeTasks(4))
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for _, res := range results {
		if res.Err == nil {
			t.Fatalf("task %s ran despite cancelled context", res.Task.Input)
		}
	}
}

func TestPoolCoercesWorkerCount(t *testing.T) {
	pool := New(Config{Workers: 0, Processor: &recordingProcessor{}})
	if pool.workers != 1 {
		t.Fatalf("workers = %d, want 1", pool.workers)
	}

	if results := pool.Run(context.Background(), nil); results != nil {
		t.Fatalf("empty task list returned %v", results)
	}
}

func TestPoolRecordsElapsed(t *testing.T) {
	proc := &recordingProcessor{delay: 5 * time.Millisecond}
	pool := New(Config{Workers: 1, Processor: proc})

	results := pool.Run(context.Background(), makeTasks(1))
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Elapsed <= 0 {
		t.Fatalf("elapsed = %v", results[0].Elapsed)
	}
}
