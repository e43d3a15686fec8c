// Package parallel provides the fan-out worker pool render passes run on.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of goroutines executing batches of tasks.
//
// All workers pull from one shared queue, so a slow task never holds back
// tasks queued behind it on a busy worker. ExecuteAll is the join point:
// it returns only after every task of its batch has finished.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	tasks   chan task
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

type task struct {
	fn    func()
	batch *batch
}

// batch tracks completion of one ExecuteAll call.
type batch struct {
	wg   sync.WaitGroup
	once sync.Once
	err  error
}

func (b *batch) recordPanic(v any) {
	b.once.Do(func() {
		b.err = &PanicError{Value: v}
	})
}

// PanicError reports a task that panicked during ExecuteAll.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("parallel: task panicked: %v", e.Value)
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		tasks:   make(chan task, workers*2),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case t := <-p.tasks:
			t.run()
		}
	}
}

func (t task) run() {
	defer t.batch.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			t.batch.recordPanic(r)
		}
	}()
	t.fn()
}

// ExecuteAll runs every task on the pool and waits for all of them.
// Nil tasks are skipped. A panicking task does not take down its worker;
// the first panic is returned as a *PanicError after the batch completes.
// On a closed pool the tasks run on the calling goroutine.
func (p *Pool) ExecuteAll(tasks []func()) error {
	b := &batch{}
	for _, fn := range tasks {
		if fn == nil {
			continue
		}
		b.wg.Add(1)
		t := task{fn: fn, batch: b}

		if !p.running.Load() {
			t.run()
			continue
		}
		select {
		case p.tasks <- t:
		case <-p.done:
			t.run()
		}
	}
	b.wg.Wait()
	return b.err
}

// Close stops the workers after they finish their current task.
// Close must not be called concurrently with ExecuteAll. It is safe to
// call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool has not been closed.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
