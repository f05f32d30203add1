package world

import "slices"

// CacheabilityKind tags the variant held by a Cacheability value.
type CacheabilityKind uint8

const (
	// DontCache means the result depends on unknown inputs and must be
	// re-evaluated every tick.
	DontCache CacheabilityKind = iota
	// Forever means the result is constant.
	Forever
	// UntilChangeInSelf means the result is stale only if one of Fields
	// changes at the same position.
	UntilChangeInSelf
	// UntilChangeInChebyshevNeighborhood means the result is stale if one
	// of Fields changes at any position within Chebyshev distance Distance
	// (inclusive).
	UntilChangeInChebyshevNeighborhood
)

// Cacheability describes when a query's result at a position becomes stale.
// The zero value is DontCache, the conservative default.
type Cacheability struct {
	Kind     CacheabilityKind
	Distance int // only meaningful for UntilChangeInChebyshevNeighborhood
	Fields   []CacheableField
}

// DontCacheability is the DontCache cacheability.
func DontCacheability() Cacheability { return Cacheability{Kind: DontCache} }

// ForeverCacheability is the Forever cacheability.
func ForeverCacheability() Cacheability { return Cacheability{Kind: Forever} }

// UntilChangeInSelfCacheability builds an UntilChangeInSelf cacheability
// over the given fields. Fields are sorted and deduplicated.
func UntilChangeInSelfCacheability(fields ...CacheableField) Cacheability {
	return Cacheability{Kind: UntilChangeInSelf, Fields: sortedUnique(fields)}
}

// UntilChangeInChebyshevNeighborhoodCacheability builds a neighborhood
// cacheability over the given fields at the given distance.
func UntilChangeInChebyshevNeighborhoodCacheability(distance int, fields ...CacheableField) Cacheability {
	return Cacheability{Kind: UntilChangeInChebyshevNeighborhood, Distance: distance, Fields: sortedUnique(fields)}
}

func sortedUnique(fields []CacheableField) []CacheableField {
	if len(fields) == 0 {
		return nil
	}
	out := slices.Clone(fields)
	slices.Sort(out)
	return slices.Compact(out)
}

// Equal reports whether two Cacheability values describe the same staleness
// condition. Distance is compared only for UntilChangeInChebyshevNeighborhood.
func (c Cacheability) Equal(other Cacheability) bool {
	if c.Kind != other.Kind {
		return false
	}
	if c.Kind == UntilChangeInChebyshevNeighborhood && c.Distance != other.Distance {
		return false
	}
	return slices.Equal(c.Fields, other.Fields)
}

// Merge combines two cacheabilities pointwise, per spec: DontCache absorbs;
// Forever is the identity; two UntilChangeInSelf merge by union of fields;
// otherwise the result lifts to UntilChangeInChebyshevNeighborhood with
// distance = max(d_a, d_b) and the union of fields. Merge is commutative and
// associative.
func Merge(a, b Cacheability) Cacheability {
	if a.Kind == DontCache || b.Kind == DontCache {
		return DontCacheability()
	}
	if a.Kind == Forever {
		return b
	}
	if b.Kind == Forever {
		return a
	}
	if a.Kind == UntilChangeInSelf && b.Kind == UntilChangeInSelf {
		return UntilChangeInSelfCacheability(append(append([]CacheableField(nil), a.Fields...), b.Fields...)...)
	}
	return UntilChangeInChebyshevNeighborhoodCacheability(max(distanceOf(a), distanceOf(b)),
		append(append([]CacheableField(nil), a.Fields...), b.Fields...)...)
}

// distanceOf returns the effective Chebyshev distance of a non-DontCache,
// non-Forever cacheability: 0 for UntilChangeInSelf (same-position only),
// Distance for a neighborhood cacheability.
func distanceOf(c Cacheability) int {
	if c.Kind == UntilChangeInChebyshevNeighborhood {
		return c.Distance
	}
	return 0
}

// CacheabilityKey is a comparable projection of Cacheability suitable for
// use as a map key (Cacheability itself holds a slice and so is not
// comparable). LoadedChunk keys its per-cacheability dirty indexes by this.
type CacheabilityKey struct {
	Kind     CacheabilityKind
	Distance int
	Fields   uint64 // bitmask over CacheableField, which is a small closed set
}

// Key computes the CacheabilityKey for c.
func (c Cacheability) Key() CacheabilityKey {
	var mask uint64
	for _, f := range c.Fields {
		mask |= 1 << uint(f)
	}
	return CacheabilityKey{Kind: c.Kind, Distance: c.Distance, Fields: mask}
}
