// Package msdfpipe renders glyph outlines into a multi-channel signed
// distance field atlas on a background worker.
//
// # Overview
//
// A Pipeline owns one worker goroutine, the atlas allocator and the shared
// atlas surface. The owner (typically the goroutine bound to the graphics
// context) submits batches of glyph outlines; the worker packs them into
// the atlas, rasterizes every shape of a batch in parallel, and hands the
// batch back on the result channel followed by a wake notification.
// Uploading the pixels happens on the owner side, see package texcache.
//
// # Quick Start
//
//	waker := msdfpipe.NewChanWaker(4)
//	p, err := msdfpipe.New(ctx, msdfpipe.DefaultConfig(), waker)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	p.Submit(msdfpipe.Request{Glyphs: glyphs})
//
//	for range waker.C() {
//	    for {
//	        r, ok := p.TryResult()
//	        if !ok {
//	            break
//	        }
//	        if r.Batch.Shortfall() > 0 {
//	            // atlas full: stop requesting, or p.Reset()
//	        }
//	        upload(r.Batch)
//	    }
//	}
//
// # Protocol
//
// Commands are processed strictly in send order and results are delivered
// in render order. RenderShapes allocates glyphs until the first one that
// does not fit; the remainder is reported through Batch.Shortfall, never
// as an error. Exit lets queued work ahead of it finish; Close additionally
// abandons a result the owner is no longer draining. If the context given
// to New ends first, the worker stops with ErrDisconnected.
//
// # Logging
//
// msdfpipe is silent by default. Call SetLogger with any *slog.Logger to
// enable structured logging of the worker lifecycle and render passes.
package msdfpipe
