package renderer

import (
	"context"
	"runtime"
	"sync"
)

// bandTask represents a band rendering task for the worker pool
type bandTask struct {
	Band *Band
	FB   *FrameBuffer // Shared frame buffer; bands write disjoint rows
}

// bandResult contains the result from rendering a band
type bandResult struct {
	BandID  int
	Samples int
	Err     error
}

// WorkerPool manages parallel band rendering
type WorkerPool struct {
	renderer    *Renderer
	taskQueue   chan bandTask
	resultQueue chan bandResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize should hold every task of a pass so submission never blocks.
func NewWorkerPool(renderer *Renderer, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		renderer:    renderer,
		taskQueue:   make(chan bandTask, queueSize),
		resultQueue: make(chan bandResult, queueSize),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

// Stop shuts down all workers after the queued tasks are drained
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Submit queues a band task
func (wp *WorkerPool) Submit(task bandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (bandResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		samples, err := wp.renderer.renderBand(ctx, task.Band, task.FB)
		wp.resultQueue <- bandResult{
			BandID:  task.Band.ID,
			Samples: samples,
			Err:     err,
		}
	}
}
