// Package query implements the composable read-expression DSL that update
// rules use to declare what they read from a block's neighborhood. Each
// concrete query knows how to evaluate itself against a Context, derive its
// own Cacheability purely from its structure, and produce a stable
// unique_descrip used to intern equivalent queries across updaters.
package query

import (
	"github.com/lotsa-sim/lotsa/world"
)

// Query is a composable read expression over a cell's neighborhood,
// producing a value of type T.
type Query[T any] interface {
	// Eval evaluates the query at the relative position pos (relative to
	// the position the owning Context is bound to), using ctx for block
	// reads.
	Eval(ctx *Context, pos world.RelativePos) T
	// Cacheability derives, purely from the query's structure, when its
	// result becomes stale. Callable before any evaluation.
	Cacheability() world.Cacheability
	// UniqueDescrip returns a stable, content-addressed identity string
	// used for query interning (see Registry).
	UniqueDescrip() string
}

// Context translates RelativePos offsets into chunk reads for a query
// evaluation rooted at a single absolute position. A Context is only valid
// for the duration of the read phase of a single tick; using it afterwards
// panics (see guard.go).
type Context struct {
	self   world.ChunkPos
	chunk  *world.LoadedChunk
	closed *bool
}

// NewContext returns a Context that resolves RelativePos offsets relative
// to self, reading from chunk.
func NewContext(chunk *world.LoadedChunk, self world.ChunkPos) *Context {
	closed := false
	return &Context{self: self, chunk: chunk, closed: &closed}
}

// Self returns the absolute position this Context is rooted at.
func (c *Context) Self() world.ChunkPos { return c.self }

// BlockInfo resolves r relative to the Context's root position and returns
// the BlockInfo there, or BlockInfo{BlockType: world.Unknown} if the offset
// leaves the chunk.
func (c *Context) BlockInfo(r world.RelativePos) world.BlockInfo {
	c.guard()
	abs, ok := c.self.Offset(r)
	if !ok {
		return world.BlockInfo{BlockType: world.Unknown}
	}
	return world.BlockInfo{BlockType: c.chunk.Get(abs)}
}
