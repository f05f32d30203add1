// Package wireframe implements the wire encoding of a tick's chunk
// snapshot: a zlib-compressed, length-prefixed, fixed-layout array of
// BlockType values in ascending ChunkPos.Index order. One frame is emitted
// per tick and fanned out, already encoded, to every subscriber.
package wireframe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/lotsa-sim/lotsa/world"
)

// blockCount is the number of BlockType values a frame always carries: one
// per position in a W*W*W chunk.
const blockCount = world.W * world.W * world.W

// Encode serialises chunk's BlockType array into a single zlib-compressed
// frame: a little-endian uint32 element count followed by that many
// little-endian uint16 BlockType values, in ascending ChunkPos.Index order.
func Encode(chunk *world.Chunk) ([]byte, error) {
	var raw bytes.Buffer
	raw.Grow(4 + blockCount*2)
	if err := binary.Write(&raw, binary.LittleEndian, uint32(blockCount)); err != nil {
		return nil, fmt.Errorf("wireframe: encode count: %w", err)
	}
	chunk.BlocksIter(func(_ world.ChunkPos, bt world.BlockType) bool {
		_ = binary.Write(&raw, binary.LittleEndian, uint16(bt))
		return true
	})

	var out bytes.Buffer
	zw := zlib.NewWriter(&out)
	if _, err := zw.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("wireframe: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("wireframe: compress: %w", err)
	}
	return out.Bytes(), nil
}

// Decode reverses Encode, returning the BlockType array in ascending
// ChunkPos.Index order. It's used by tests asserting the round trip and by
// tooling that wants to inspect a captured frame offline; the core itself
// never decodes its own frames.
func Decode(frame []byte) ([]world.BlockType, error) {
	zr, err := zlib.NewReader(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("wireframe: decompress: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("wireframe: decompress: %w", err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("wireframe: frame too short: %d bytes", len(raw))
	}
	count := binary.LittleEndian.Uint32(raw[:4])
	if count != blockCount {
		return nil, fmt.Errorf("wireframe: unexpected element count %d, want %d", count, blockCount)
	}
	if len(raw) != 4+int(count)*2 {
		return nil, fmt.Errorf("wireframe: frame length %d inconsistent with count %d", len(raw), count)
	}

	out := make([]world.BlockType, count)
	for i := range out {
		out[i] = world.BlockType(binary.LittleEndian.Uint16(raw[4+i*2 : 6+i*2]))
	}
	return out, nil
}
