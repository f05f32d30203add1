package wireframe_test

import (
	"testing"

	"github.com/lotsa-sim/lotsa/wireframe"
	"github.com/lotsa-sim/lotsa/world"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	chunk := world.NewChunk()
	chunk.SetBlockType(world.NewChunkPos(1, 2, 0), world.BlockType(3))
	chunk.SetBlockType(world.NewChunkPos(31, 31, 31), world.BlockType(9))

	frame, err := wireframe.Encode(chunk)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := wireframe.Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var want []world.BlockType
	chunk.BlocksIter(func(_ world.ChunkPos, bt world.BlockType) bool {
		want = append(want, bt)
		return true
	})

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecodeRejectsTruncatedFrame(t *testing.T) {
	chunk := world.NewChunk()
	frame, err := wireframe.Encode(chunk)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := wireframe.Decode(frame[:len(frame)/2]); err == nil {
		t.Fatal("expected an error decoding a truncated frame")
	}
}
