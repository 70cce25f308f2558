package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// mockConverter simulates row conversion for testing
type mockConverter struct {
	delay     time.Duration
	failRows  map[int]bool // rows that should fail
	callCount atomic.Int32
}

func (m *mockConverter) ConvertRow(ctx context.Context, row int) error {
	m.callCount.Add(1)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.delay):
	}

	if m.failRows != nil && m.failRows[row] {
		return errors.New("simulated failure")
	}

	return nil
}

func TestPool_BasicExecution(t *testing.T) {
	conv := &mockConverter{delay: 10 * time.Millisecond}

	pool := New(Config{
		Workers:   2,
		Converter: conv,
	})

	results := pool.RunRows(context.Background(), 3)

	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}

	for _, r := range results {
		if r.Err != nil {
			t.Errorf("Unexpected error for row %d: %v", r.Task.Row, r.Err)
		}
	}

	if conv.callCount.Load() != 3 {
		t.Errorf("Expected 3 converter calls, got %d", conv.callCount.Load())
	}
}

func TestPool_Parallelism(t *testing.T) {
	// Use a longer delay to ensure parallelism is tested
	conv := &mockConverter{delay: 50 * time.Millisecond}

	pool := New(Config{
		Workers:   4,
		Converter: conv,
	})

	start := time.Now()
	results := pool.RunRows(context.Background(), 8)
	elapsed := time.Since(start)

	// With 4 workers and 8 rows at 50ms each, should take ~100ms (2 batches)
	// Allow some margin for overhead
	maxExpected := 200 * time.Millisecond
	if elapsed > maxExpected {
		t.Errorf("Expected parallel execution in ~100ms, took %v", elapsed)
	}

	if len(results) != 8 {
		t.Errorf("Expected 8 results, got %d", len(results))
	}

	t.Logf("Processed %d rows with %d workers in %v", len(results), 4, elapsed)
}

func TestPool_ErrorHandling(t *testing.T) {
	conv := &mockConverter{
		delay:    10 * time.Millisecond,
		failRows: map[int]bool{1: true},
	}

	pool := New(Config{
		Workers:   2,
		Converter: conv,
	})

	results := pool.RunRows(context.Background(), 3)

	// Should still get all results
	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}

	var successCount, failCount int
	for _, r := range results {
		if r.Err != nil {
			failCount++
			if r.Task.Row != 1 {
				t.Errorf("Unexpected failure for row %d", r.Task.Row)
			}
		} else {
			successCount++
		}
	}

	if successCount != 2 {
		t.Errorf("Expected 2 successes, got %d", successCount)
	}
	if failCount != 1 {
		t.Errorf("Expected 1 failure, got %d", failCount)
	}
}

func TestPool_Cancellation(t *testing.T) {
	conv := &mockConverter{delay: 100 * time.Millisecond}

	pool := New(Config{
		Workers:   2,
		Converter: conv,
	})

	ctx, cancel := context.WithCancel(context.Background())

	// Cancel after a short time
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := pool.RunRows(ctx, 10)
	elapsed := time.Since(start)

	// Should return early due to cancellation
	if elapsed > 200*time.Millisecond {
		t.Errorf("Expected early cancellation, took %v", elapsed)
	}

	var cancelledCount int
	for _, r := range results {
		if r.Err != nil && errors.Is(r.Err, context.Canceled) {
			cancelledCount++
		}
	}

	t.Logf("Completed with %d results (%d cancelled) in %v", len(results), cancelledCount, elapsed)
}

func TestPool_ProgressCallback(t *testing.T) {
	conv := &mockConverter{delay: 10 * time.Millisecond}

	var progressCalls atomic.Int32
	var lastCompleted, lastTotal int

	pool := New(Config{
		Workers:   2,
		Converter: conv,
		OnProgress: func(completed, total, failed int) {
			progressCalls.Add(1)
			lastCompleted = completed
			lastTotal = total
		},
	})

	pool.RunRows(context.Background(), 3)

	// Should have received progress callbacks
	if progressCalls.Load() == 0 {
		t.Error("Expected progress callbacks, got none")
	}

	// Final callback should show all completed
	if lastCompleted != 3 {
		t.Errorf("Expected lastCompleted=3, got %d", lastCompleted)
	}
	if lastTotal != 3 {
		t.Errorf("Expected lastTotal=3, got %d", lastTotal)
	}
}

func TestPool_EmptyTasks(t *testing.T) {
	conv := &mockConverter{}

	pool := New(Config{
		Workers:   2,
		Converter: conv,
	})

	results := pool.Run(context.Background(), nil)

	if len(results) != 0 {
		t.Errorf("Expected 0 results for empty tasks, got %d", len(results))
	}

	if conv.callCount.Load() != 0 {
		t.Errorf("Expected 0 converter calls for empty tasks, got %d", conv.callCount.Load())
	}
}
