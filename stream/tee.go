package stream

import (
	"context"

	"github.com/BaSui01/llmtrace/types"
)

// Option configures a Tee.
type Option func(*options)

type options struct {
	onBacklog func(int)
}

// WithBacklogObserver registers a callback invoked from the pump goroutine
// with the observed-branch backlog size after each enqueue. Used for gauge
// wiring; the callback must not block.
func WithBacklogObserver(fn func(int)) Option {
	return func(o *options) { o.onBacklog = fn }
}

// Tee consumes upstream exactly once and re-emits every item, in order,
// exactly once on each returned branch. The caller branch closes as soon as
// upstream is exhausted regardless of observer progress; remaining backlog
// is then flushed to the observed branch. Cancelling ctx tears both
// branches down (remaining items are dropped, channels closed), which the
// background consumer treats as "emit what we have".
//
// A terminal upstream failure travels in-band as a final RawItem with Err
// set and reaches both branches; no item is ever silently swallowed on the
// caller side.
//
// The observed branch must be consumed until it closes (or ctx cancelled);
// an abandoned branch leaves the pump blocked on its backlog flush.
func Tee(ctx context.Context, upstream <-chan types.RawItem, opts ...Option) (caller, observed <-chan types.RawItem) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	callerCh := make(chan types.RawItem)
	observedCh := make(chan types.RawItem)
	go pump(ctx, upstream, callerCh, observedCh, o)
	return callerCh, observedCh
}

// TeeOrPassthrough is the degrade path: when active is false the caller
// receives upstream itself and observed is nil, so a setup failure or a
// disabled pipeline can never break the consumer's stream.
func TeeOrPassthrough(ctx context.Context, upstream <-chan types.RawItem, active bool, opts ...Option) (caller, observed <-chan types.RawItem) {
	if !active {
		return upstream, nil
	}
	return Tee(ctx, upstream, opts...)
}

func pump(ctx context.Context, upstream <-chan types.RawItem, callerCh, observedCh chan types.RawItem, o options) {
	defer close(observedCh)

	backlog := newFIFO()
	for {
		// A nil send channel parks the observer case while the backlog is
		// empty.
		var sendCh chan types.RawItem
		var head types.RawItem
		if backlog.Len() > 0 {
			sendCh = observedCh
			head = backlog.Peek()
		}

		select {
		case it, ok := <-upstream:
			if !ok {
				close(callerCh)
				flush(ctx, backlog, observedCh)
				return
			}
			// Caller first: its pace, not the observer's, governs the pump.
			select {
			case callerCh <- it:
			case <-ctx.Done():
				close(callerCh)
				return
			}
			backlog.Push(it)
			if o.onBacklog != nil {
				o.onBacklog(backlog.Len())
			}

		case sendCh <- head:
			backlog.Pop()

		case <-ctx.Done():
			close(callerCh)
			return
		}
	}
}

func flush(ctx context.Context, backlog *fifo, observedCh chan types.RawItem) {
	for backlog.Len() > 0 {
		select {
		case observedCh <- backlog.Pop():
		case <-ctx.Done():
			return
		}
	}
}
