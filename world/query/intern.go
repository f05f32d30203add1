package query

import (
	"sync"

	"github.com/brentp/intintmap"
	"github.com/cespare/xxhash/v2"
	"github.com/lotsa-sim/lotsa/world"
	"github.com/segmentio/fasthash/fnv1a"
)

// Registry interns queries by their UniqueDescrip so that updaters sharing
// an equivalent query share one Cacheability instance (and therefore one
// ChunkIndex class in the LoadedChunk). Prepare and ActiveCacheabilities
// hold the Registry's mutex for their whole duration, so concurrent calls
// are safe; updater registration in this module happens from the single
// goroutine that owns the Simulator in any case.
//
// Lookups go through hashIndex, not a string map: the xxhash digest of a
// descrip is the actual key Prepare probes with, so a query-heavy ruleset
// doesn't pay for hashing and comparing full descrip strings on every
// lookup. A hit is only trusted once the candidate's independently-seeded
// fnv1a secondary hash also matches, and the full descrip strings are
// compared besides; a key whose xxhash digest collides with an unrelated
// descrip is chained in collisions rather than silently aliased.
type Registry struct {
	mu         sync.Mutex
	entries    []*entry
	hashIndex  *intintmap.Map
	collisions map[int64][]int
}

type entry struct {
	descrip      string
	secondary    uint64
	query        any // the original Query[T], recovered via type assertion
	cacheability world.Cacheability
}

// NewRegistry returns an empty query Registry.
func NewRegistry() *Registry {
	return &Registry{
		hashIndex:  intintmap.New(64, 0.75),
		collisions: make(map[int64][]int),
	}
}

// Handle is an interned, prepared query returned by Prepare. Two Prepare
// calls (even across different Registries constructed the same way, since
// interning is purely a function of UniqueDescrip) for queries with equal
// UniqueDescrip produce Handles with equal Cacheability.
type Handle[T any] struct {
	query        Query[T]
	cacheability world.Cacheability
}

// Cacheability returns the interned query's cacheability.
func (h *Handle[T]) Cacheability() world.Cacheability { return h.cacheability }

// Eval evaluates the interned query.
func (h *Handle[T]) Eval(ctx *Context, pos world.RelativePos) T {
	return h.query.Eval(ctx, pos)
}

// Prepare interns q into r by its UniqueDescrip, returning a Handle. If an
// equivalent query (same UniqueDescrip) was already prepared, the existing
// entry's Cacheability is reused rather than recomputed.
func Prepare[T any](r *Registry, q Query[T]) *Handle[T] {
	descrip := q.UniqueDescrip()
	key := internKey(descrip)
	secondary := fnv1a.HashString64(descrip)

	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.hashIndex.Get(key); ok {
		if e := r.entries[idx]; matches(e, descrip, secondary) {
			return &Handle[T]{query: e.query.(Query[T]), cacheability: e.cacheability}
		}
		for _, ci := range r.collisions[key] {
			if e := r.entries[ci]; matches(e, descrip, secondary) {
				return &Handle[T]{query: e.query.(Query[T]), cacheability: e.cacheability}
			}
		}
	}

	e := &entry{descrip: descrip, secondary: secondary, query: q, cacheability: q.Cacheability()}
	idx := int64(len(r.entries))
	r.entries = append(r.entries, e)
	if _, occupied := r.hashIndex.Get(key); !occupied {
		r.hashIndex.Put(key, idx)
	} else {
		r.collisions[key] = append(r.collisions[key], int(idx))
	}
	return &Handle[T]{query: q, cacheability: e.cacheability}
}

// matches reports whether e is the entry for descrip, first cheaply
// checking the secondary hash before falling back to a full string
// comparison: a mismatched secondary proves a genuine xxhash collision
// without ever touching descrip.
func matches(e *entry, descrip string, secondary uint64) bool {
	return e.secondary == secondary && e.descrip == descrip
}

// internKey folds an xxhash digest of descrip into the int64 key space the
// intintmap index is built over.
func internKey(descrip string) int64 {
	return int64(xxhash.Sum64String(descrip))
}

// ActiveCacheabilities returns the set of distinct cacheabilities across
// every query prepared against r so far, deduplicated by
// world.Cacheability.Key. This is the "active cacheability set" the
// Simulator uses to decide which dirty indexes LoadedChunk must maintain.
func (r *Registry) ActiveCacheabilities() []world.Cacheability {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[world.CacheabilityKey]struct{}, len(r.entries))
	out := make([]world.Cacheability, 0, len(r.entries))
	for _, e := range r.entries {
		k := e.cacheability.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e.cacheability)
	}
	return out
}
