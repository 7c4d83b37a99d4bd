// Package workerpool provides the fork-join worker pool backing the draw
// list's parallel radix sort.
//
// The channel/select run loop and the Submit/Wait WaitGroup bookkeeping
// are carried over from the WorkerPool in the wgpu software rasterizer
// (hal/software/raster/parallel.go): that type was already a
// task-agnostic pool (WorkerPool.Submit(task func())), not a
// rasterization-specific one — the tile/triangle-dispatch code lives in
// the separate ParallelRasterizer/ParallelConfig types in the same file,
// which this package does not carry forward. There was nothing left to
// generalize in the run loop itself, so it is kept as-is; ForEachWorker
// below is new, added to match this package's actual call shape — every
// caller in drawlist/radix.go forks exactly one task per worker and
// joins before reading the results, a narrower pattern than the teacher
// pool's arbitrary Submit.
package workerpool

import (
	"runtime"
	"sync"
)

// Pool manages a set of worker goroutines that execute submitted tasks
// concurrently. Submit/Wait form a single fork-join round; callers must not
// touch buffers referenced by a submitted task until Wait returns (see the
// render graph's shared-resource policy for the parallel sort).
type Pool struct {
	workers int
	wg      sync.WaitGroup
	tasks   chan func()
	quit    chan struct{}
	mu      sync.Mutex
	started bool
}

// New creates a Pool with the given number of workers. If workers <= 0 it
// defaults to runtime.NumCPU().
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan func(), workers*4),
		quit:    make(chan struct{}),
	}
}

// Start launches the worker goroutines. Safe to call more than once;
// subsequent calls are no-ops.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	for i := 0; i < p.workers; i++ {
		go p.run()
	}
}

func (p *Pool) run() {
	for {
		select {
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			task()
			p.wg.Done()
		case <-p.quit:
			return
		}
	}
}

// Submit enqueues a task for execution by one of the workers. Blocks if
// the task queue is full.
func (p *Pool) Submit(task func()) {
	p.wg.Add(1)
	p.tasks <- task
}

// Wait blocks until every task submitted since the last Wait has
// completed. This is the render graph's sole blocking point (§5).
func (p *Pool) Wait() {
	p.wg.Wait()
}

// ForEachWorker forks one task per worker index in [0,n) and joins before
// returning, the fork-join round shape every phase of the parallel radix
// sort uses (histogram, then scatter; see drawlist/radix.go). It is
// equivalent to n calls to Submit followed by Wait, expressed as a single
// call so a caller cannot fork without joining.
func (p *Pool) ForEachWorker(n int, fn func(worker int)) {
	for i := 0; i < n; i++ {
		i := i
		p.Submit(func() { fn(i) })
	}
	p.Wait()
}

// Workers returns the number of worker goroutines in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Close shuts the pool down. Safe to call on a pool that was never
// started.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	close(p.quit)
	close(p.tasks)
}
