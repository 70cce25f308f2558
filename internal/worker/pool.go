// Package worker provides a parallel row-processing worker pool.
package worker

import (
	"context"
	"sync"
	"time"
)

// Converter is the interface for per-row work. Rows are independent of each
// other; implementations must not share mutable state across rows.
type Converter interface {
	ConvertRow(ctx context.Context, row int) error
}

// Task represents a single row to process.
type Task struct {
	Row int
}

// Result represents the outcome of a row task.
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
	Converter  Converter
	OnProgress ProgressFunc
}

// Pool manages parallel row processing.
type Pool struct {
	workers    int
	converter  Converter
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		converter:  cfg.Converter,
		onProgress: cfg.OnProgress,
	}
}

// RunRows processes rows [0, height) and returns the per-row results.
func (p *Pool) RunRows(ctx context.Context, height int) []Result {
	tasks := make([]Task, height)
	for i := range tasks {
		tasks[i] = Task{Row: i}
	}
	return p.Run(ctx, tasks)
}

// Run executes all tasks and returns results.
// Tasks are processed in parallel by the configured number of workers.
// The function blocks until all tasks complete or the context is cancelled.
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

	go func() {
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				// Context cancelled, stop feeding
				break
			}
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
			results <- Result{
				Task: task,
				Err:  ctx.Err(),
			}
			continue
		default:
		}

		start := time.Now()
		err := p.converter.ConvertRow(ctx, task.Row)
		elapsed := time.Since(start)

		results <- Result{
			Task:    task,
			Err:     err,
			Elapsed: elapsed,
		}
	}
}
