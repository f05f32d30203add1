// Package life implements Conway's Game of Life as a pair of update rules
// on the z=0 plane, the canonical example rule set for the Query DSL and
// Simulator in package sim.
package life

import (
	"github.com/lotsa-sim/lotsa/world"
	"github.com/lotsa-sim/lotsa/world/query"
	"github.com/lotsa-sim/lotsa/world/sim"
)

// Life is the BlockType a living cell holds.
const Life world.BlockType = 3

// countLive counts how many of types are Life.
func countLive(types []world.BlockType) int {
	n := 0
	for _, t := range types {
		if t == Life {
			n++
		}
	}
	return n
}

// Init registers the Life and Empty updaters with sim, returning a non-nil
// error if either registration fails (which can only happen if the
// Chebyshev2DNeighbors query below is ever changed to a distance beyond
// query.MaxChebyshevDistance).
func Init(s *sim.Simulator) error {
	if err := s.Register(func(r *query.Registry) *sim.Updater {
		neighbors := query.Prepare(r, query.Chebyshev2DNeighbors(1, query.GetBlockType()))
		return sim.NewUpdater(Life, neighbors.Cacheability(), func(ctx *query.Context) (world.BlockType, bool) {
			// neighbors includes the cell itself; subtract it back out to
			// get the count of live cells in its Chebyshev-1 neighbourhood.
			live := countLive(neighbors.Eval(ctx, world.NewRelativePos(0, 0, 0))) - 1
			if live >= 2 && live <= 4 {
				return 0, false
			}
			return world.Empty, true
		})
	}); err != nil {
		return err
	}

	return s.Register(func(r *query.Registry) *sim.Updater {
		neighbors := query.Prepare(r, query.Chebyshev2DNeighbors(1, query.GetBlockType()))
		return sim.NewUpdater(world.Empty, neighbors.Cacheability(), func(ctx *query.Context) (world.BlockType, bool) {
			live := countLive(neighbors.Eval(ctx, world.NewRelativePos(0, 0, 0)))
			if live == 3 {
				return Life, true
			}
			return 0, false
		})
	})
}
