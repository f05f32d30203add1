package query_test

import (
	"testing"

	"github.com/lotsa-sim/lotsa/world"
	"github.com/lotsa-sim/lotsa/world/query"
)

const cobble world.BlockType = 37

func TestGetBlockTypeCacheability(t *testing.T) {
	c := query.GetBlockType().Cacheability()
	want := world.UntilChangeInSelfCacheability(world.CacheableBlockType)
	if !c.Equal(want) {
		t.Fatalf("GetBlockType().Cacheability() = %v, want %v", c, want)
	}
}

func TestGetBlockTypeEval(t *testing.T) {
	chunk := world.NewChunk()
	chunk.SetBlockType(world.NewChunkPos(5, 5, 5), cobble)
	lc := world.NewLoadedChunk(chunk)
	ctx := query.NewContext(lc, world.NewChunkPos(5, 5, 5))

	if got := query.GetBlockType().Eval(ctx, world.NewRelativePos(0, 0, 0)); got != cobble {
		t.Fatalf("GetBlockType().Eval at self = %v, want %v", got, cobble)
	}
	if got := query.GetBlockType().Eval(ctx, world.NewRelativePos(1, 0, 0)); got != world.Empty {
		t.Fatalf("GetBlockType().Eval at (1,0,0) = %v, want Empty", got)
	}
}

func TestConstantCacheabilityIsForever(t *testing.T) {
	c := query.Constant(cobble).Cacheability()
	if !c.Equal(world.ForeverCacheability()) {
		t.Fatalf("Constant().Cacheability() = %v, want Forever", c)
	}
}

// TestChebyshev2DNeighborsNamedCase is the named composition case from
// spec.md §8: Chebyshev2DNeighbors(2, Equals(GetBlockType, Constant))
// derives a cacheability of distance=2, fields=[BlockType].
func TestChebyshev2DNeighborsNamedCase(t *testing.T) {
	inner := query.Equals(query.GetBlockType(), query.Constant(cobble))
	q := query.Chebyshev2DNeighbors(2, inner)

	c := q.Cacheability()
	if c.Kind != world.UntilChangeInChebyshevNeighborhood {
		t.Fatalf("Cacheability().Kind = %v, want UntilChangeInChebyshevNeighborhood", c.Kind)
	}
	if c.Distance != 2 {
		t.Fatalf("Cacheability().Distance = %d, want 2", c.Distance)
	}
	if len(c.Fields) != 1 || c.Fields[0] != world.CacheableBlockType {
		t.Fatalf("Cacheability().Fields = %v, want [BlockType]", c.Fields)
	}
}

func TestChebyshev2DNeighborsEval(t *testing.T) {
	chunk := world.NewChunk()
	chunk.SetBlockType(world.NewChunkPos(4, 5, 5), cobble)
	chunk.SetBlockType(world.NewChunkPos(6, 5, 5), cobble)
	lc := world.NewLoadedChunk(chunk)
	ctx := query.NewContext(lc, world.NewChunkPos(5, 5, 5))

	q := query.Chebyshev2DNeighbors(1, query.GetBlockType())
	got := q.Eval(ctx, world.NewRelativePos(0, 0, 0))
	if len(got) != 9 {
		t.Fatalf("Chebyshev2DNeighbors(1, ...).Eval produced %d results, want 9", len(got))
	}

	count := 0
	for _, bt := range got {
		if bt == cobble {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 cobble neighbours in the 3x3, got %d", count)
	}
}

func TestChebyshev2DNeighborsOfForeverIsForever(t *testing.T) {
	q := query.Chebyshev2DNeighbors(3, query.Constant(cobble))
	c := q.Cacheability()
	if !c.Equal(world.ForeverCacheability()) {
		t.Fatalf("Chebyshev2DNeighbors(_, Constant).Cacheability() = %v, want Forever", c)
	}
}

func TestChebyshev2DNeighborsSumsDistanceWithInnerNeighborhood(t *testing.T) {
	inner := query.Chebyshev2DNeighbors(2, query.GetBlockType())
	outer := query.Chebyshev2DNeighbors(3, inner)
	c := outer.Cacheability()
	if c.Kind != world.UntilChangeInChebyshevNeighborhood {
		t.Fatalf("Cacheability().Kind = %v, want UntilChangeInChebyshevNeighborhood", c.Kind)
	}
	if c.Distance != 5 {
		t.Fatalf("Cacheability().Distance = %d, want 2+3 = 5", c.Distance)
	}
}

func TestEqualsMergesCacheabilities(t *testing.T) {
	q := query.Equals(query.GetBlockType(), query.Constant(cobble))
	c := q.Cacheability()
	want := world.Merge(
		world.UntilChangeInSelfCacheability(world.CacheableBlockType),
		world.ForeverCacheability(),
	)
	if !c.Equal(want) {
		t.Fatalf("Equals(GetBlockType, Constant).Cacheability() = %v, want %v", c, want)
	}
}

func TestUniqueDescripDistinguishesQueries(t *testing.T) {
	a := query.Chebyshev2DNeighbors(2, query.GetBlockType())
	b := query.Chebyshev2DNeighbors(3, query.GetBlockType())
	if a.UniqueDescrip() == b.UniqueDescrip() {
		t.Fatal("queries with different Chebyshev distances must have distinct UniqueDescrip")
	}

	c := query.Chebyshev2DNeighbors(2, query.GetBlockType())
	if a.UniqueDescrip() != c.UniqueDescrip() {
		t.Fatal("structurally equal queries must have equal UniqueDescrip")
	}
}
