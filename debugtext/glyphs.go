package debugtext

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/lotsa-sim/lotsa/world"
)

// GlyphTable is a bijective mapping between single-rune glyphs and
// world.BlockType values, used by Load and Dump to translate text-art to
// and from chunk contents.
type GlyphTable struct {
	toRune  map[world.BlockType]rune
	toBlock map[rune]world.BlockType
}

// NewGlyphTable builds a GlyphTable from a block-type-to-glyph mapping. It
// returns an error if the mapping is ambiguous, i.e. if two block types
// share a glyph.
func NewGlyphTable(blockTypeGlyphs map[world.BlockType]rune) (*GlyphTable, error) {
	t := &GlyphTable{
		toRune:  make(map[world.BlockType]rune, len(blockTypeGlyphs)),
		toBlock: make(map[rune]world.BlockType, len(blockTypeGlyphs)),
	}
	for bt, r := range blockTypeGlyphs {
		if existing, ok := t.toBlock[r]; ok {
			return nil, fmt.Errorf("debugtext: ambiguous glyph %q: maps to both %v and %v", r, existing, bt)
		}
		t.toRune[bt] = r
		t.toBlock[r] = bt
	}
	return t, nil
}

// glyphFile is the YAML document shape read by LoadGlyphTableFile: a flat
// mapping from glyph string to the numeric BlockType it stands for.
type glyphFile struct {
	Glyphs map[string]uint16 `yaml:"glyphs"`
}

// LoadGlyphTableFile reads a glyph table from a YAML file at path. If the
// file doesn't exist, it's created with an empty table (the same
// read-if-exists/create-if-absent shape the teacher uses for its whitelist
// and config files), and an empty, valid GlyphTable is returned.
func LoadGlyphTableFile(path string) (*GlyphTable, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if werr := os.WriteFile(path, []byte("glyphs: {}\n"), 0644); werr != nil {
				return nil, fmt.Errorf("debugtext: create glyph table %s: %w", path, werr)
			}
			return NewGlyphTable(nil)
		}
		return nil, fmt.Errorf("debugtext: read glyph table %s: %w", path, err)
	}

	var doc glyphFile
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("debugtext: decode glyph table %s: %w", path, err)
	}

	blockTypeGlyphs := make(map[world.BlockType]rune, len(doc.Glyphs))
	for glyph, bt := range doc.Glyphs {
		runes := []rune(glyph)
		if len(runes) != 1 {
			return nil, fmt.Errorf("debugtext: glyph table %s: glyph %q is not a single rune", path, glyph)
		}
		blockTypeGlyphs[world.BlockType(bt)] = runes[0]
	}
	return NewGlyphTable(blockTypeGlyphs)
}
