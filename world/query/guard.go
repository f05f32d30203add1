package query

// closedPanicMessage is the sentinel recovered by Guard so that a leaked
// Context caught using itself after its tick ends fails loudly rather than
// silently reading a stale snapshot.
//
// Adapted from the teacher's server/internal/txguard package, which guards
// a *world.Tx the same way against use after its transaction finishes.
const closedPanicMessage = "query.Context: use of context after its tick's read phase has ended is not permitted"

// guard panics with closedPanicMessage if the Context has been closed.
func (c *Context) guard() {
	if *c.closed {
		panic(closedPanicMessage)
	}
}

// Close marks the Context as no longer valid for reads. The Simulator calls
// this once an updater's body has returned, so that a captured Context
// cannot be used from a stray goroutine or a closure invoked on a later
// tick.
func (c *Context) Close() { *c.closed = true }

// Guard runs fn, recovering a panic carrying closedPanicMessage and
// reporting it through ok instead of propagating it. Any other panic is
// re-raised. Mirrors txguard.Run's shape.
func Guard(fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if msg, isStr := r.(string); isStr && msg == closedPanicMessage {
				ok = false
				return
			}
			panic(r)
		}
	}()
	fn()
	return true
}
