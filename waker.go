package msdfpipe

// Waker is the owner's event-loop hook. The worker calls Wake after each
// result is queued; the owner then re-checks Results. Wake must not block.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to Waker.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() { f() }

type nopWaker struct{}

func (nopWaker) Wake() {}

// ChanWaker delivers wakes on a buffered channel. When the buffer is full
// further wakes are coalesced with the pending ones, so an owner should
// drain every available result per wake.
type ChanWaker struct {
	c chan struct{}
}

// NewChanWaker creates a ChanWaker holding up to buffer pending wakes
// (at least one).
func NewChanWaker(buffer int) *ChanWaker {
	return &ChanWaker{c: make(chan struct{}, max(buffer, 1))}
}

// Wake posts a wake without blocking.
func (w *ChanWaker) Wake() {
	select {
	case w.c <- struct{}{}:
	default:
	}
}

// C returns the channel wakes are delivered on.
func (w *ChanWaker) C() <-chan struct{} { return w.c }
