package world

// BlockType is a small unsigned integer tag identifying what a cell is.
// Implementations may assume at most 65535 distinct types, so the type is
// backed by uint16.
type BlockType uint16

const (
	// Unknown identifies a cell outside the chunk or one that was never
	// initialised. It is never stored in a Chunk; it only ever appears as
	// the result of a read that resolved to an out-of-chunk position.
	Unknown BlockType = 0
	// Empty is the reserved "nothing here" block type. Chunk.Fill(Empty) is
	// the usual way to initialise a chunk.
	Empty BlockType = 1
)

// BlockInfo is the tuple a query sees for one cell. The schema is
// deliberately small today but is designed to grow: new fields should be
// added here together with a matching CacheableField entry so that queries
// reading them can express precise invalidation.
type BlockInfo struct {
	BlockType BlockType
}

// CacheableField enumerates the block-info fields a query may depend on.
// It is a closed set: adding a field to BlockInfo without a matching entry
// here would make it impossible for a query to declare that it reads that
// field, which would force every query touching it to DontCache.
type CacheableField uint8

const (
	// CacheableBlockType marks a dependency on BlockInfo.BlockType.
	CacheableBlockType CacheableField = iota
)

// String implements fmt.Stringer for log and debug output.
func (f CacheableField) String() string {
	switch f {
	case CacheableBlockType:
		return "BlockType"
	default:
		return "unknown-field"
	}
}
