// Package parallel runs independent jobs on a fixed number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Pool runs jobs on a set of worker goroutines. A pool with a single worker
// runs every job inline on the caller's goroutine.
type Pool struct {
	wg      sync.WaitGroup
	jobs    chan func()
	workers int
	stop    func()
}

// Start launches a pool. If numWorkers is less than 1 the pool uses one worker
// per available CPU.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		stop:    func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	pool.jobs = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for job := range pool.jobs {
				job()
			}
		})
	}
	pool.stop = sync.OnceFunc(func() { close(pool.jobs) })
	return pool
}

// Workers returns the number of jobs the pool can run at the same time.
func (p *Pool) Workers() int {
	return p.workers
}

// Do submits a job. It blocks while every worker is busy and the queue is full.
func (p *Pool) Do(job func()) {
	if p.jobs == nil {
		job()
		return
	}
	p.jobs <- job
}

// Run calls fn(0) through fn(n-1) on the pool and returns once all of them
// have finished.
func (p *Pool) Run(n int, fn func(i int)) {
	var batch sync.WaitGroup
	for i := range n {
		batch.Add(1)
		p.Do(func() {
			defer batch.Done()
			fn(i)
		})
	}
	batch.Wait()
}

// Close stops the workers after the queued jobs finish. The pool must not be
// used afterwards.
func (p *Pool) Close() {
	p.stop()
	p.wg.Wait()
}
