// Package sim implements the update-rule registry and the two-phase
// per-tick evaluation algorithm that advances a LoadedChunk.
package sim

import (
	"github.com/lotsa-sim/lotsa/world"
	"github.com/lotsa-sim/lotsa/world/query"
)

// Body is the implementation function of an Updater. It's called once per
// considered position with a Context rooted at that position, and returns
// the BlockType to write there and true, or false to leave the position
// unchanged. Body must be pure: its only interaction with the world is
// through ctx, and ctx is only valid for the duration of the call.
type Body func(ctx *query.Context) (world.BlockType, bool)

// Updater pairs a target BlockType with the rule that considers positions
// currently holding that type. It's built via NewUpdater inside the setup
// function passed to Simulator.Register, so that any query construction
// panic (e.g. a Chebyshev distance over query.MaxChebyshevDistance) is
// recovered by Register and reported as a registration failure.
type Updater struct {
	target       world.BlockType
	cacheability world.Cacheability
	body         Body
}

// NewUpdater builds an Updater that considers positions holding target,
// using cacheability (normally the Merge of every query.Handle declared in
// the updater's setup phase) to decide which positions are worth
// reconsidering, and body to decide what to write.
func NewUpdater(target world.BlockType, cacheability world.Cacheability, body Body) *Updater {
	return &Updater{target: target, cacheability: cacheability, body: body}
}

// Target returns the BlockType this updater considers.
func (u *Updater) Target() world.BlockType { return u.target }

// Cacheability returns the updater's declared cacheability, used by the
// Simulator to decide its considerable-positions set each tick.
func (u *Updater) Cacheability() world.Cacheability { return u.cacheability }
