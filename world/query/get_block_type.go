package query

import "github.com/lotsa-sim/lotsa/world"

// getBlockTypeQuery reads the BlockType at the position it's evaluated at.
type getBlockTypeQuery struct{}

// GetBlockType builds a query that reads the BlockType at its evaluation
// position. Its cacheability is UntilChangeInSelf{CacheableBlockType}: it
// only goes stale when the block type at that exact position changes.
func GetBlockType() Query[world.BlockType] {
	return getBlockTypeQuery{}
}

func (getBlockTypeQuery) Eval(ctx *Context, pos world.RelativePos) world.BlockType {
	return ctx.BlockInfo(pos).BlockType
}

func (getBlockTypeQuery) Cacheability() world.Cacheability {
	return world.UntilChangeInSelfCacheability(world.CacheableBlockType)
}

func (getBlockTypeQuery) UniqueDescrip() string {
	return "GetBlockType"
}
