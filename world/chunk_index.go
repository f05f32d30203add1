package world

import "math/bits"

// bitmapWords is the number of 64-bit words needed to hold one bit per
// position in a chunk.
const bitmapWords = (W*W*W + 63) / 64

// ChunkIndex is a compact bitmap set over {0, ..., W*W*W - 1}, i.e. a set of
// ChunkPos. It must tolerate being a superset of the true dirty set: false
// positives are permitted (the Simulator re-checks candidates against the
// target block type before calling an updater's body), false negatives are
// not.
type ChunkIndex struct {
	words [bitmapWords]uint64
}

// NewChunkIndex returns an empty ChunkIndex.
func NewChunkIndex() *ChunkIndex {
	return &ChunkIndex{}
}

// Mark adds pos to the index. Marking a position that would lie outside the
// chunk can't happen by construction (ChunkPos is always in range), so this
// is unconditional.
func (idx *ChunkIndex) Mark(pos ChunkPos) {
	n := pos.Index()
	idx.words[n/64] |= 1 << uint(n%64)
}

// MarkChebyshevNeighborhood marks every position q such that
// max(|dx|, |dy|, |dz|) <= distance relative to pos, clipping to the chunk's
// bounds; positions that would leave the chunk are silently dropped. Runs in
// O(distance^3).
func (idx *ChunkIndex) MarkChebyshevNeighborhood(pos ChunkPos, distance int) {
	x, y, z := pos.X(), pos.Y(), pos.Z()
	xMin, xMax := clamp(x-distance), clamp(x+distance)
	yMin, yMax := clamp(y-distance), clamp(y+distance)
	zMin, zMax := clamp(z-distance), clamp(z+distance)
	for nx := xMin; nx <= xMax; nx++ {
		for ny := yMin; ny <= yMax; ny++ {
			for nz := zMin; nz <= zMax; nz++ {
				idx.Mark(NewChunkPos(nx, ny, nz))
			}
		}
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v >= W {
		return W - 1
	}
	return v
}

// Contains reports whether pos is marked.
func (idx *ChunkIndex) Contains(pos ChunkPos) bool {
	n := pos.Index()
	return idx.words[n/64]&(1<<uint(n%64)) != 0
}

// Clear empties the index.
func (idx *ChunkIndex) Clear() {
	for i := range idx.words {
		idx.words[i] = 0
	}
}

// Iter calls yield for every marked position in ascending n order, stopping
// early if yield returns false.
func (idx *ChunkIndex) Iter(yield func(ChunkPos) bool) {
	for w, word := range idx.words {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			n := w*64 + b
			if n >= W*W*W {
				return
			}
			if !yield(chunkPosFromIndex(n)) {
				return
			}
			word &= word - 1
		}
	}
}

// Len returns the number of marked positions. It is O(W^3/64), used mainly
// for metrics and tests.
func (idx *ChunkIndex) Len() int {
	n := 0
	for _, word := range idx.words {
		n += bits.OnesCount64(word)
	}
	return n
}
