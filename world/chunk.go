package world

// Chunk is a dense array of W*W*W BlockTypes. Equality after a sequence of
// Set operations is purely by array contents; Chunk carries no other state.
type Chunk struct {
	blocks [W * W * W]BlockType
}

// NewChunk returns a Chunk with every cell set to Empty.
func NewChunk() *Chunk {
	c := &Chunk{}
	c.Fill(Empty)
	return c
}

// Get returns the BlockType stored at pos.
func (c *Chunk) Get(pos ChunkPos) BlockType {
	return c.blocks[pos.Index()]
}

// SetBlockType stores bt at pos, overwriting whatever was there.
func (c *Chunk) SetBlockType(pos ChunkPos, bt BlockType) {
	c.blocks[pos.Index()] = bt
}

// Fill sets every cell in the chunk to bt.
func (c *Chunk) Fill(bt BlockType) {
	for i := range c.blocks {
		c.blocks[i] = bt
	}
}

// BlocksIter returns an iterator over every position in the chunk in
// stable row-major order (ascending n), together with the BlockType stored
// there.
func (c *Chunk) BlocksIter(yield func(ChunkPos, BlockType) bool) {
	for i, bt := range c.blocks {
		if !yield(chunkPosFromIndex(i), bt) {
			return
		}
	}
}

// Clone returns a deep copy of the chunk.
func (c *Chunk) Clone() *Chunk {
	out := &Chunk{}
	out.blocks = c.blocks
	return out
}

// NeighborTypes returns the BlockTypes at the 8 Chebyshev-1 neighbours of
// pos on the same z plane, in row-major (y then x) order. The center cell
// is omitted, and neighbours that would leave the chunk are skipped
// entirely (the returned slice may have fewer than 8 elements).
//
// This is a convenience for rule authors who don't need the full Query DSL.
// It must agree with what Chebyshev2DNeighbors(1, GetBlockType) produces
// minus the center cell: the DSL includes the center, this does not.
func (c *Chunk) NeighborTypes(pos ChunkPos) []BlockType {
	out := make([]BlockType, 0, 8)
	x, y, z := pos.X(), pos.Y(), pos.Z()
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= W || ny < 0 || ny >= W {
				continue
			}
			out = append(out, c.Get(NewChunkPos(nx, ny, z)))
		}
	}
	return out
}
