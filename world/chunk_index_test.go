package world_test

import (
	"testing"

	"github.com/lotsa-sim/lotsa/world"
)

func collect(idx *world.ChunkIndex) map[world.ChunkPos]bool {
	out := make(map[world.ChunkPos]bool)
	idx.Iter(func(p world.ChunkPos) bool {
		out[p] = true
		return true
	})
	return out
}

// TestChunkIndexIsSupersetOfMarked covers the ChunkIndex superset law: after
// any sequence of Mark/MarkChebyshevNeighborhood calls, Iter yields every
// explicitly marked position (a superset is allowed to yield more, never
// fewer) and nothing outside the chunk.
func TestChunkIndexIsSupersetOfMarked(t *testing.T) {
	idx := world.NewChunkIndex()
	marked := []world.ChunkPos{
		world.NewChunkPos(0, 0, 0),
		world.NewChunkPos(31, 31, 31),
		world.NewChunkPos(5, 5, 5),
	}
	for _, p := range marked {
		idx.Mark(p)
	}
	idx.MarkChebyshevNeighborhood(world.NewChunkPos(10, 10, 10), 1)

	present := collect(idx)
	for _, p := range marked {
		if !present[p] {
			t.Fatalf("explicitly marked position %v missing from Iter", p)
		}
		if !idx.Contains(p) {
			t.Fatalf("Contains(%v) = false, want true", p)
		}
	}
	if idx.Len() < len(marked) {
		t.Fatalf("Len() = %d, want at least %d", idx.Len(), len(marked))
	}
	if idx.Len() != len(present) {
		t.Fatalf("Len() = %d, Iter produced %d positions", idx.Len(), len(present))
	}
}

func TestChunkIndexClearEmpties(t *testing.T) {
	idx := world.NewChunkIndex()
	idx.Mark(world.NewChunkPos(1, 2, 3))
	if idx.Len() == 0 {
		t.Fatal("expected a non-empty index before Clear")
	}
	idx.Clear()
	if idx.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", idx.Len())
	}
	if idx.Contains(world.NewChunkPos(1, 2, 3)) {
		t.Fatal("Contains() after Clear should be false")
	}
	n := 0
	idx.Iter(func(world.ChunkPos) bool { n++; return true })
	if n != 0 {
		t.Fatalf("Iter after Clear yielded %d positions, want 0", n)
	}
}

// TestMarkChebyshevNeighborhoodNamedCase is the named test case from
// spec.md §8: mark_chebyshev_neighborhood((5,5,5), 2) must mark every
// position in (3..=7, 3..=7, 3..=7) clipped to the chunk (which here needs
// no clipping), and must not mark a position at Chebyshev distance 3 such
// as (8,8,5).
func TestMarkChebyshevNeighborhoodNamedCase(t *testing.T) {
	idx := world.NewChunkIndex()
	idx.MarkChebyshevNeighborhood(world.NewChunkPos(5, 5, 5), 2)

	for x := 3; x <= 7; x++ {
		for y := 3; y <= 7; y++ {
			for z := 3; z <= 7; z++ {
				p := world.NewChunkPos(x, y, z)
				if !idx.Contains(p) {
					t.Fatalf("expected %v to be marked", p)
				}
			}
		}
	}

	if idx.Contains(world.NewChunkPos(8, 8, 5)) {
		t.Fatal("(8,8,5) is Chebyshev distance 3 from (5,5,5), should not be marked")
	}
}

func TestMarkChebyshevNeighborhoodClipsToChunk(t *testing.T) {
	idx := world.NewChunkIndex()
	idx.MarkChebyshevNeighborhood(world.NewChunkPos(0, 0, 0), 2)

	// Every marked position must be a valid in-chunk position; nothing
	// beyond the clamp to [0, W) should ever be produced (NewChunkPos
	// itself would panic on an out-of-range component).
	n := 0
	idx.Iter(func(world.ChunkPos) bool { n++; return true })
	if n == 0 {
		t.Fatal("expected at least the clipped neighborhood to be marked")
	}
	if !idx.Contains(world.NewChunkPos(0, 0, 0)) {
		t.Fatal("origin should be marked")
	}
	if !idx.Contains(world.NewChunkPos(2, 2, 2)) {
		t.Fatal("(2,2,2) should be within the clipped neighborhood")
	}
}
