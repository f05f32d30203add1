package world

// LoadedChunk owns a Chunk plus a mapping from Cacheability to the
// ChunkIndex tracking positions whose cached result under that cacheability
// may be stale. Writes flow exclusively through LoadedChunk.SetBlockType,
// which both mutates the Chunk and updates every maintained index.
type LoadedChunk struct {
	chunk   *Chunk
	indexes map[CacheabilityKey]*ChunkIndex
	// keys remembers, for each active cacheability key, the Cacheability it
	// was built from; SetBlockType reads its Kind and Distance to decide how
	// to mark the matching index on write.
	keys map[CacheabilityKey]Cacheability
}

// NewLoadedChunk wraps chunk for incremental re-evaluation. chunk must not
// be nil.
func NewLoadedChunk(chunk *Chunk) *LoadedChunk {
	return &LoadedChunk{
		chunk:   chunk,
		indexes: make(map[CacheabilityKey]*ChunkIndex),
		keys:    make(map[CacheabilityKey]Cacheability),
	}
}

// Chunk returns the wrapped Chunk. Callers must not mutate it directly;
// mutation must go through SetBlockType so dirty indexes stay accurate.
func (lc *LoadedChunk) Chunk() *Chunk { return lc.chunk }

// Get reads the BlockType at pos.
func (lc *LoadedChunk) Get(pos ChunkPos) BlockType { return lc.chunk.Get(pos) }

// ResetCacheBusters resets the index map at the start of a tick so that it
// contains exactly one ChunkIndex per cacheability in active, each cleared.
// Cacheabilities no longer in active are dropped; new ones are created
// empty. DontCache and Forever cacheabilities get no index (their
// considerable-positions semantics don't consult one); they are recorded in
// keys only.
func (lc *LoadedChunk) ResetCacheBusters(active []Cacheability) {
	newIndexes := make(map[CacheabilityKey]*ChunkIndex, len(active))
	newKeys := make(map[CacheabilityKey]Cacheability, len(active))
	for _, c := range active {
		k := c.Key()
		newKeys[k] = c
		if c.Kind == DontCache || c.Kind == Forever {
			continue
		}
		newIndexes[k] = NewChunkIndex()
	}
	lc.indexes = newIndexes
	lc.keys = newKeys
}

// SetBlockType mutates the chunk at pos to bt and marks every maintained
// index whose cacheability is invalidated by the write:
// UntilChangeInSelf marks the write position; UntilChangeInChebyshevNeighborhood{d}
// marks the d-neighborhood of the write position; DontCache/Forever indexes
// don't exist and are skipped.
func (lc *LoadedChunk) SetBlockType(pos ChunkPos, bt BlockType) {
	lc.chunk.SetBlockType(pos, bt)
	for k, idx := range lc.indexes {
		c := lc.keys[k]
		switch c.Kind {
		case UntilChangeInSelf:
			idx.Mark(pos)
		case UntilChangeInChebyshevNeighborhood:
			idx.MarkChebyshevNeighborhood(pos, c.Distance)
		}
	}
}

// IndexFor returns the ChunkIndex maintained for the given cacheability, and
// whether one exists (DontCache and Forever never have one).
func (lc *LoadedChunk) IndexFor(c Cacheability) (*ChunkIndex, bool) {
	idx, ok := lc.indexes[c.Key()]
	return idx, ok
}
