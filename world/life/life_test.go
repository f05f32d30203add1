package life_test

import (
	"testing"

	"github.com/lotsa-sim/lotsa/world"
	"github.com/lotsa-sim/lotsa/world/life"
	"github.com/lotsa-sim/lotsa/world/sim"
)

func newSimulator(t *testing.T) *sim.Simulator {
	t.Helper()
	s := sim.NewSimulator()
	if err := life.Init(s); err != nil {
		t.Fatalf("life.Init: %v", err)
	}
	return s
}

func pos(x, y int) world.ChunkPos { return world.NewChunkPos(x, y, 0) }

func TestBlinkerOscillates(t *testing.T) {
	s := newSimulator(t)

	lc := world.NewLoadedChunk(world.NewChunk())
	s.Prime(lc)
	lc.SetBlockType(pos(1, 2), life.Life)
	lc.SetBlockType(pos(2, 2), life.Life)
	lc.SetBlockType(pos(3, 2), life.Life)

	s.Step(lc)
	wantVertical := map[world.ChunkPos]bool{
		pos(2, 1): true,
		pos(2, 2): true,
		pos(2, 3): true,
	}
	assertLifeCells(t, lc, wantVertical)

	s.Step(lc)
	wantHorizontal := map[world.ChunkPos]bool{
		pos(1, 2): true,
		pos(2, 2): true,
		pos(3, 2): true,
	}
	assertLifeCells(t, lc, wantHorizontal)
}

func TestBlockIsAStillLife(t *testing.T) {
	s := newSimulator(t)

	lc := world.NewLoadedChunk(world.NewChunk())
	s.Prime(lc)
	block := map[world.ChunkPos]bool{
		pos(1, 1): true,
		pos(2, 1): true,
		pos(1, 2): true,
		pos(2, 2): true,
	}
	for p := range block {
		lc.SetBlockType(p, life.Life)
	}

	for i := 0; i < 5; i++ {
		s.Step(lc)
		assertLifeCells(t, lc, block)
	}
}

// assertLifeCells checks every position within a small bounding box around
// the pattern under test, so a rule that wrongly spreads life outside the
// expected cells is caught.
func assertLifeCells(t *testing.T, lc *world.LoadedChunk, want map[world.ChunkPos]bool) {
	t.Helper()
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			p := pos(x, y)
			isLife := lc.Get(p) == life.Life
			if want[p] != isLife {
				t.Fatalf("(%d,%d) alive=%v, want %v", x, y, isLife, want[p])
			}
		}
	}
}
