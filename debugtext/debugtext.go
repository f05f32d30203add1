// Package debugtext implements the text-art chunk dumper and loader used by
// tests and the operator console to inspect and seed a chunk's z=0 plane
// without a renderer. It is a development tool: it is not part of the
// broadcast wire format (see package wireframe for that).
package debugtext

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/lotsa-sim/lotsa/world"
)

// BlockWriter is satisfied by both *world.Chunk and *world.LoadedChunk.
// Load writes through this interface rather than a concrete type so that
// loading into a LoadedChunk keeps its cache-buster indexes accurate
// (world/sim.Simulator.Prime must still run first; see its doc comment).
type BlockWriter interface {
	SetBlockType(pos world.ChunkPos, bt world.BlockType)
}

// Load parses the text-art s and writes it into w starting at (0,0,0),
// advancing x for each glyph and y for each newline; spaces are skipped
// without advancing x. s is NFC-normalised and trimmed of leading/trailing
// whitespace before parsing, so callers may indent multi-line literals
// freely. Load returns an error if s contains a rune not present in table.
func Load(table *GlyphTable, w BlockWriter, s string) error {
	x, y := 0, 0
	for _, r := range strings.TrimSpace(norm.NFC.String(s)) {
		switch r {
		case ' ':
			continue
		case '\n':
			x, y = 0, y+1
		default:
			bt, ok := table.toBlock[r]
			if !ok {
				return fmt.Errorf("debugtext: no block type mapped for glyph %q", r)
			}
			w.SetBlockType(world.NewChunkPos(x, y, 0), bt)
			x++
		}
	}
	return nil
}

// Dump renders chunk's z=0 plane as text-art: the bounding box of every
// cell that is neither world.Empty nor world.Unknown, one glyph per cell,
// rows separated by newlines. It panics if any such cell has z != 0, since
// this format cannot represent anything outside the z=0 plane.
func Dump(table *GlyphTable, chunk *world.Chunk) (string, error) {
	maxX, maxY, maxZ := bounds(chunk)
	if maxZ != 0 {
		panic("debugtext: cannot dump a chunk unless every non-empty, non-unknown block is on z=0")
	}

	var sb strings.Builder
	for y := 0; y <= maxY; y++ {
		for x := 0; x <= maxX; x++ {
			bt := chunk.Get(world.NewChunkPos(x, y, 0))
			r, ok := table.toRune[bt]
			if !ok {
				return "", fmt.Errorf("debugtext: no glyph mapped for block type %v", bt)
			}
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// Clean loads s into a fresh chunk and dumps it straight back out,
// normalising whitespace the same way Load does. dump(load(s)) == clean(s)
// must hold for any s Load accepts: this is the round-trip law the format
// promises.
func Clean(table *GlyphTable, s string) (string, error) {
	chunk := world.NewChunk()
	if err := Load(table, chunk, s); err != nil {
		return "", err
	}
	return Dump(table, chunk)
}

// bounds returns the bounding box, per axis, of every cell in chunk that is
// neither world.Empty nor world.Unknown. Each axis is tracked
// independently starting from 0, exactly as the original debug dumper this
// is ported from does: the box's origin is always (0,0,0).
func bounds(chunk *world.Chunk) (maxX, maxY, maxZ int) {
	chunk.BlocksIter(func(pos world.ChunkPos, bt world.BlockType) bool {
		if bt == world.Empty || bt == world.Unknown {
			return true
		}
		if x := pos.X(); x > maxX {
			maxX = x
		}
		if y := pos.Y(); y > maxY {
			maxY = y
		}
		if z := pos.Z(); z > maxZ {
			maxZ = z
		}
		return true
	})
	return
}
