package sim_test

import (
	"testing"

	"github.com/lotsa-sim/lotsa/world"
	"github.com/lotsa-sim/lotsa/world/query"
	"github.com/lotsa-sim/lotsa/world/sim"
)

const stone world.BlockType = 10

func TestRegisterFailsOnExcessiveChebyshevDistance(t *testing.T) {
	s := sim.NewSimulator()
	err := s.Register(func(r *query.Registry) *sim.Updater {
		h := query.Prepare(r, query.Chebyshev2DNeighbors(query.MaxChebyshevDistance+1, query.GetBlockType()))
		return sim.NewUpdater(stone, h.Cacheability(), func(ctx *query.Context) (world.BlockType, bool) {
			return world.Empty, true
		})
	})
	if err == nil {
		t.Fatal("expected registration to fail for an over-limit Chebyshev distance")
	}
}

func TestStepAppliesDontCacheEveryTick(t *testing.T) {
	s := sim.NewSimulator()
	err := s.Register(func(r *query.Registry) *sim.Updater {
		return sim.NewUpdater(stone, world.DontCacheability(), func(ctx *query.Context) (world.BlockType, bool) {
			return world.Empty, true
		})
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	chunk := world.NewChunk()
	chunk.SetBlockType(world.NewChunkPos(0, 0, 0), stone)
	lc := world.NewLoadedChunk(chunk)

	s.Step(lc)
	if got := lc.Get(world.NewChunkPos(0, 0, 0)); got != world.Empty {
		t.Fatalf("after step, (0,0,0) = %v, want Empty", got)
	}

	chunk.SetBlockType(world.NewChunkPos(0, 0, 0), stone)
	s.Step(lc)
	if got := lc.Get(world.NewChunkPos(0, 0, 0)); got != world.Empty {
		t.Fatalf("after second step, (0,0,0) = %v, want Empty", got)
	}
}

func TestStepForeverRunsOnlyOnce(t *testing.T) {
	s := sim.NewSimulator()
	calls := 0
	err := s.Register(func(r *query.Registry) *sim.Updater {
		h := query.Prepare(r, query.Constant(true))
		return sim.NewUpdater(stone, h.Cacheability(), func(ctx *query.Context) (world.BlockType, bool) {
			calls++
			return world.Empty, true
		})
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	chunk := world.NewChunk()
	chunk.SetBlockType(world.NewChunkPos(0, 0, 0), stone)
	lc := world.NewLoadedChunk(chunk)

	s.Step(lc)
	firstTickCalls := calls
	if firstTickCalls == 0 {
		t.Fatal("expected the Forever updater to run on the first tick")
	}

	chunk.SetBlockType(world.NewChunkPos(0, 0, 0), stone)
	s.Step(lc)
	if calls != firstTickCalls {
		t.Fatalf("Forever updater ran again on a later tick: calls went from %d to %d", firstTickCalls, calls)
	}
}

func TestStepOnUntouchedChunkNeverConsidersUnrelatedPositions(t *testing.T) {
	s := sim.NewSimulator()
	considered := 0
	err := s.Register(func(r *query.Registry) *sim.Updater {
		h := query.Prepare(r, query.GetBlockType())
		return sim.NewUpdater(stone, h.Cacheability(), func(ctx *query.Context) (world.BlockType, bool) {
			considered++
			return world.Empty, true
		})
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	lc := world.NewLoadedChunk(world.NewChunk())
	s.Step(lc)
	if considered != 0 {
		t.Fatalf("expected no positions considered on an all-Empty chunk, got %d", considered)
	}
}
