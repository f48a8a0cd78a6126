package renderer

import (
	"runtime"
	"sync"
)

// TileTask represents a tile rendering task for workers
type TileTask struct {
	Tile        *Tile
	Framebuffer *Framebuffer
}

// TileResult contains the outcome of a completed tile
type TileResult struct {
	Tile    *Tile
	Samples int64
	Err     error
}

// WorkerPool manages concurrent tile rendering. Each worker pulls tiles
// from a shared queue; pixel writes are race-free because tile bounds are
// disjoint regions of the framebuffer.
type WorkerPool struct {
	numWorkers  int
	taskQueue   chan TileTask
	resultQueue chan TileResult
	renderTile  func(TileTask) TileResult
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Zero or negative numWorkers means one worker per CPU.
func NewWorkerPool(numWorkers int, queueSize int, renderTile func(TileTask) TileResult) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers:  numWorkers,
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
		renderTile:  renderTile,
	}
}

// Start launches all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// worker processes tile tasks until the queue is closed
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		wp.resultQueue <- wp.renderTile(task)
	}
}

// Submit adds a tile task to the queue
func (wp *WorkerPool) Submit(task TileTask) {
	wp.taskQueue <- task
}

// Results returns the channel of completed tile results
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// Close signals that no more tasks will be submitted and waits for all
// workers to drain the queue
func (wp *WorkerPool) Close() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}
