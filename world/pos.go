package world

import "github.com/go-gl/mathgl/mgl64"

// W is the sole chunk width supported by this module. It is chosen so that
// W*W fits comfortably in a 16-bit bitmap word count, which the ChunkIndex
// bitset relies on.
const W = 32

// ChunkPos is an absolute position inside a Chunk, encoded as a single
// integer n = x*W*W + y*W + z. The zero value is position (0,0,0).
type ChunkPos int

// NewChunkPos builds a ChunkPos from three components, each of which must
// satisfy 0 <= v < W. It panics if any component is out of range: an
// invalid position is a programmer error, not a recoverable one.
func NewChunkPos(x, y, z int) ChunkPos {
	if x < 0 || x >= W || y < 0 || y >= W || z < 0 || z >= W {
		panic("world: chunk position out of range")
	}
	return ChunkPos(x*W*W + y*W + z)
}

// chunkPosFromIndex builds a ChunkPos directly from its row-major index
// without bounds checking. Used internally where n is already known to be
// in range (e.g. iteration).
func chunkPosFromIndex(n int) ChunkPos { return ChunkPos(n) }

// Index returns the row-major index n = x*W*W + y*W + z this position
// encodes. It is the canonical ordering used by Chunk.BlocksIter and
// ChunkIndex.Iter.
func (p ChunkPos) Index() int { return int(p) }

// X returns the x component of the position.
func (p ChunkPos) X() int { return int(p) / (W * W) }

// Y returns the y component of the position.
func (p ChunkPos) Y() int { return (int(p) / W) % W }

// Z returns the z component of the position.
func (p ChunkPos) Z() int { return int(p) % W }

// Offset computes the absolute position reached by applying the relative
// offset r to p. It returns false in the second return value if the
// resulting position would lie outside the chunk (any component out of
// [0, W)); this is the sole mechanism by which out-of-chunk reads become
// UNKNOWN.
func (p ChunkPos) Offset(r RelativePos) (ChunkPos, bool) {
	x, y, z := p.X()+r.dx, p.Y()+r.dy, p.Z()+r.dz
	if x < 0 || x >= W || y < 0 || y >= W || z < 0 || z >= W {
		return 0, false
	}
	return ChunkPos(x*W*W + y*W + z), true
}

// Vec3 returns the position as a float vector, primarily useful for logging
// and debug tooling that wants a continuous coordinate space.
func (p ChunkPos) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X()), float64(p.Y()), float64(p.Z())}
}
