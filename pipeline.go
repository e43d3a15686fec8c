package msdfpipe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/msdfpipe/internal/parallel"
	"github.com/gogpu/msdfpipe/msdf"
)

// State is the worker's lifecycle state.
type State int32

const (
	// StateIdle means the worker is waiting for a command.
	StateIdle State = iota

	// StateRendering means a render pass is in progress.
	StateRendering

	// StateTerminated means the worker has stopped.
	StateTerminated
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRendering:
		return "Rendering"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Stats are cumulative worker counters.
type Stats struct {
	// Batches is the number of render passes completed.
	Batches uint64

	// Shapes is the number of glyphs rasterized.
	Shapes uint64

	// Dropped is the number of requested glyphs that did not fit.
	Dropped uint64

	// Generation is the current atlas generation.
	Generation uint64

	// Utilization is the fraction of the atlas covered by regions.
	Utilization float64
}

// Pipeline owns the worker goroutine that allocates and rasterizes glyph
// batches into a shared atlas surface.
//
// The goroutine that creates a Pipeline is its owner: it submits commands,
// drains Results when woken, and must Close or Join the pipeline before
// shutting down. The atlas allocator is touched only by the worker.
type Pipeline struct {
	cfg     Config
	opts    msdf.Options
	waker   Waker
	surface *msdf.Surface
	atlas   *msdf.ShelfAllocator
	pool    *parallel.Pool

	commands chan Command
	results  chan ShapesRendered

	// abandon is closed by Close to stop the worker even while a result
	// send is blocked.
	abandon   chan struct{}
	closeOnce sync.Once

	// exitReq is closed when Exit is first sent, so a result send the
	// owner is not draining gives way to the queued Exit.
	exitReq chan struct{}
	exiting atomic.Bool

	// sendMu orders sends against Exit: senders hold the read side from
	// the exiting check until their command is queued.
	sendMu sync.RWMutex

	done  chan struct{}
	err   error // written before done is closed
	state atomic.Int32

	statsMu sync.Mutex
	stats   Stats

	nextID uint64 // worker only
}

// New validates cfg and starts the worker. waker is called after every
// result; nil means no notification (the owner polls TryResult).
//
// ctx bounds the owner's lifetime: if it ends before Exit or Close, the
// worker stops and Err reports ErrDisconnected.
func New(ctx context.Context, cfg Config, waker Waker) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if waker == nil {
		waker = nopWaker{}
	}

	p := &Pipeline{
		cfg:      cfg,
		opts:     cfg.options(),
		waker:    waker,
		surface:  msdf.NewSurface(cfg.Width, cfg.Height),
		atlas:    msdf.NewShelfAllocator(cfg.Width, cfg.Height),
		pool:     parallel.NewPool(cfg.Workers),
		commands: make(chan Command, cfg.CommandQueue),
		results:  make(chan ShapesRendered, cfg.ResultQueue),
		abandon:  make(chan struct{}),
		exitReq:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	p.state.Store(int32(StateIdle))

	go p.run(ctx)
	return p, nil
}

// Submit queues a RenderShapes command.
func (p *Pipeline) Submit(req Request) error {
	return p.Send(RenderShapes{Request: req})
}

// Reset queues a ResetAtlas command.
func (p *Pipeline) Reset() error {
	return p.Send(ResetAtlas{})
}

// Exit queues an Exit command. Commands already queued ahead of it are
// processed first; later sends fail with ErrClosed. Once Exit is sent, a
// result that does not fit in the result queue is dropped rather than
// waited on, so Join returns without the owner draining. Exit is
// idempotent.
func (p *Pipeline) Exit() error {
	err := p.Send(Exit{})
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

// Send queues cmd, blocking while the command queue is full.
// It returns ErrClosed once the pipeline is exiting or stopped. A command
// for which Send returns nil is queued ahead of any Exit.
func (p *Pipeline) Send(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if _, ok := cmd.(Exit); ok {
		if !p.exiting.CompareAndSwap(false, true) {
			return ErrClosed
		}
		close(p.exitReq)
		p.sendMu.Lock()
		defer p.sendMu.Unlock()
		return p.enqueue(cmd)
	}

	p.sendMu.RLock()
	defer p.sendMu.RUnlock()
	if p.exiting.Load() {
		return ErrClosed
	}
	return p.enqueue(cmd)
}

func (p *Pipeline) enqueue(cmd Command) error {
	select {
	case <-p.done:
		return ErrClosed
	default:
	}
	select {
	case p.commands <- cmd:
		return nil
	case <-p.abandon:
		return ErrClosed
	case <-p.done:
		return ErrClosed
	}
}

// Results returns the channel results are delivered on, in render order.
func (p *Pipeline) Results() <-chan ShapesRendered {
	return p.results
}

// TryResult returns a pending result without blocking.
func (p *Pipeline) TryResult() (ShapesRendered, bool) {
	select {
	case r := <-p.results:
		return r, true
	default:
		return ShapesRendered{}, false
	}
}

// Done is closed when the worker has stopped.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

// Err returns the worker's terminal error: nil while it runs and after a
// requested shutdown, ErrDisconnected if the owner's context ended first.
func (p *Pipeline) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Join waits for the worker to stop and returns its terminal error.
func (p *Pipeline) Join(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the worker and waits for it. A pass in progress runs to
// completion, but if its result cannot be queued it is abandoned; commands
// still queued are dropped. Close is safe to call multiple times.
func (p *Pipeline) Close() error {
	p.exiting.Store(true)
	p.closeOnce.Do(func() { close(p.abandon) })
	<-p.done
	return p.err
}

// State returns the worker's current state.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Surface returns the shared atlas surface for owner-side reads.
func (p *Pipeline) Surface() *msdf.Surface {
	return p.surface
}

// Config returns the configuration the pipeline was created with.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Stats returns a snapshot of the worker counters.
func (p *Pipeline) Stats() Stats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

func (p *Pipeline) run(ctx context.Context) {
	log := Logger()
	log.Info("msdfpipe: worker started",
		"width", p.cfg.Width, "height", p.cfg.Height, "workers", p.pool.Workers())

	err := p.loop(ctx)

	p.pool.Close()
	if err != nil {
		log.Warn("msdfpipe: worker stopped", "err", err)
	} else {
		log.Info("msdfpipe: worker stopped")
	}

	p.err = err
	p.state.Store(int32(StateTerminated))
	close(p.done)
}

func (p *Pipeline) loop(ctx context.Context) error {
	for {
		var cmd Command
		select {
		case <-ctx.Done():
			return disconnected(ctx)
		case <-p.abandon:
			return nil
		case cmd = <-p.commands:
		}

		switch c := cmd.(type) {
		case RenderShapes:
			p.state.Store(int32(StateRendering))
			batch := p.render(c.Request)
			p.state.Store(int32(StateIdle))
			delivered, err := p.deliver(ctx, batch)
			if !delivered {
				return err
			}
		case ResetAtlas:
			p.resetAtlas()
		case Exit:
			return nil
		}
	}
}

// render allocates the request's glyphs in order and rasterizes every
// allocated shape in parallel under a single surface lock.
func (p *Pipeline) render(req Request) *Batch {
	start := time.Now()
	log := Logger()

	p.nextID++
	batch := &Batch{
		ID:        p.nextID,
		Requested: len(req.Glyphs),
		surface:   p.surface,
	}

	for _, g := range req.Glyphs {
		shape, ok := msdf.Allocate(g.Outline, p.atlas, g.Shade, p.opts)
		if !ok {
			break
		}
		batch.Glyphs = append(batch.Glyphs, RenderedGlyph{Key: g.Key, Shape: shape})
		batch.Bounds = batch.Bounds.Union(shape.Region())
	}

	pass := p.surface.Lock()
	batch.Generation = pass.Generation()
	tasks := make([]func(), len(batch.Glyphs))
	for i := range batch.Glyphs {
		shape := batch.Glyphs[i].Shape
		view := pass.View(shape.Region())
		tasks[i] = func() { shape.Render(view) }
	}
	err := p.pool.ExecuteAll(tasks)
	pass.Unlock()

	if err != nil {
		log.Error("msdfpipe: render task failed", "batch", batch.ID, "err", err)
	}
	if n := batch.Shortfall(); n > 0 {
		log.Warn("msdfpipe: atlas exhausted",
			"batch", batch.ID, "requested", batch.Requested, "dropped", n)
	}
	log.Debug("msdfpipe: batch rendered",
		"batch", batch.ID, "shapes", batch.Len(), "bounds", batch.Bounds.String(),
		"duration", time.Since(start))

	p.statsMu.Lock()
	p.stats.Batches++
	p.stats.Shapes += uint64(batch.Len())
	p.stats.Dropped += uint64(batch.Shortfall())
	p.stats.Utilization = p.atlas.Utilization()
	p.statsMu.Unlock()

	return batch
}

// deliver queues the result and wakes the owner. It reports false with
// the terminal error when the send blocked and the pipeline was exited,
// closed or disconnected meanwhile.
func (p *Pipeline) deliver(ctx context.Context, batch *Batch) (bool, error) {
	r := ShapesRendered{Batch: batch}
	select {
	case p.results <- r:
		p.waker.Wake()
		return true, nil
	default:
	}

	select {
	case p.results <- r:
	case <-p.exitReq:
		Logger().Debug("msdfpipe: result abandoned on exit", "batch", batch.ID)
		return false, nil
	case <-p.abandon:
		Logger().Debug("msdfpipe: result abandoned", "batch", batch.ID)
		return false, nil
	case <-ctx.Done():
		return false, disconnected(ctx)
	}
	p.waker.Wake()
	return true, nil
}

func (p *Pipeline) resetAtlas() {
	p.atlas.Reset()

	pass := p.surface.Lock()
	pass.Clear()
	gen := pass.Generation()
	pass.Unlock()

	p.statsMu.Lock()
	p.stats.Generation = gen
	p.stats.Utilization = 0
	p.statsMu.Unlock()

	Logger().Info("msdfpipe: atlas reset", "generation", gen)
}

func disconnected(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrDisconnected, context.Cause(ctx))
}
