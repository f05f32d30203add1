package sim

import (
	"fmt"

	"github.com/lotsa-sim/lotsa/world"
	"github.com/lotsa-sim/lotsa/world/query"
)

// Simulator holds an ordered registry of Updaters and drives the two-phase
// per-tick evaluation algorithm over a LoadedChunk.
type Simulator struct {
	registry   *query.Registry
	updaters   []*registeredUpdater
	lastActive []world.Cacheability
	metrics    *Metrics

	allPositions []world.ChunkPos
}

type registeredUpdater struct {
	*Updater
	ranOnce bool
}

// NewSimulator returns a Simulator with an empty updater registry bound to
// its own query.Registry.
func NewSimulator() *Simulator {
	s := &Simulator{
		registry:     query.NewRegistry(),
		metrics:      NewMetrics(),
		allPositions: make([]world.ChunkPos, 0, world.W*world.W*world.W),
	}
	for x := 0; x < world.W; x++ {
		for y := 0; y < world.W; y++ {
			for z := 0; z < world.W; z++ {
				s.allPositions = append(s.allPositions, world.NewChunkPos(x, y, z))
			}
		}
	}
	return s
}

// Registry returns the Simulator's query registry, so that an updater's
// setup phase can intern the queries it declares.
func (s *Simulator) Registry() *query.Registry { return s.registry }

// Prime establishes lc's cache-buster indexes for this Simulator's current
// active cacheability set, without running a tick. Callers that want to
// seed a LoadedChunk's initial contents (e.g. the console's /load command,
// or a test building a starting pattern) must call Prime before writing
// through lc.SetBlockType: SetBlockType only marks indexes that already
// exist, so writes applied before the first Prime or Step are invisible to
// every UntilChangeIn* updater's first tick.
func (s *Simulator) Prime(lc *world.LoadedChunk) {
	active := s.registry.ActiveCacheabilities()
	lc.ResetCacheBusters(active)
	s.lastActive = active
}

// Metrics returns the Simulator's per-tick metrics.
func (s *Simulator) Metrics() *Metrics { return s.metrics }

// Register runs setup, which should declare the updater's queries against
// s.Registry() and return the built Updater, and appends it to the
// registration-order list that Step iterates. Registration fails, without
// taking down the caller, if setup panics — most commonly because a
// Chebyshev2DNeighbors query declared a distance beyond
// query.MaxChebyshevDistance.
func (s *Simulator) Register(setup func(r *query.Registry) *Updater) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("sim: registration failed: %v", rec)
		}
	}()
	u := setup(s.registry)
	s.updaters = append(s.updaters, &registeredUpdater{Updater: u})
	return nil
}

// Step advances lc by one tick: it determines which positions each
// registered updater should reconsider, evaluates their bodies against a
// snapshot of lc taken at the start of the tick, and applies every
// resulting write afterwards in registration order (last write wins for
// positions proposed more than once).
func (s *Simulator) Step(lc *world.LoadedChunk) {
	active := s.registry.ActiveCacheabilities()
	if !cacheabilitySetsEqual(active, s.lastActive) {
		lc.ResetCacheBusters(active)
		s.lastActive = active
	}

	type write struct {
		pos world.ChunkPos
		bt  world.BlockType
	}
	var writes []write

	for _, u := range s.updaters {
		positions := s.considerablePositions(lc, u)
		s.metrics.AddConsidered(uint64(len(positions)))
		for _, pos := range positions {
			if lc.Get(pos) != u.target {
				continue
			}
			ctx := query.NewContext(lc, pos)
			newBt, ok := u.body(ctx)
			ctx.Close()
			if ok {
				writes = append(writes, write{pos: pos, bt: newBt})
			}
		}
		if u.cacheability.Kind == world.Forever {
			u.ranOnce = true
		}
	}

	for _, w := range writes {
		lc.SetBlockType(w.pos, w.bt)
	}
	s.metrics.AddWrites(uint64(len(writes)))
}

// considerablePositions enumerates the candidate positions for u per the
// semantics of its cacheability: DontCache considers every position every
// tick, Forever considers every position exactly once, and the
// UntilChangeIn* kinds consider exactly the positions currently marked in
// lc's index for that cacheability (a superset of the true dirty set).
func (s *Simulator) considerablePositions(lc *world.LoadedChunk, u *registeredUpdater) []world.ChunkPos {
	switch u.cacheability.Kind {
	case world.DontCache:
		return s.allPositions
	case world.Forever:
		if u.ranOnce {
			return nil
		}
		return s.allPositions
	default:
		idx, ok := lc.IndexFor(u.cacheability)
		if !ok {
			return nil
		}
		out := make([]world.ChunkPos, 0, idx.Len())
		idx.Iter(func(p world.ChunkPos) bool {
			out = append(out, p)
			return true
		})
		return out
	}
}

// cacheabilitySetsEqual reports whether a and b contain the same set of
// Cacheability.Key values, ignoring order. Used to decide whether the
// active cacheability set has changed since the last tick and
// ResetCacheBusters must run again.
func cacheabilitySetsEqual(a, b []world.Cacheability) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[world.CacheabilityKey]int, len(a))
	for _, c := range a {
		seen[c.Key()]++
	}
	for _, c := range b {
		k := c.Key()
		if seen[k] == 0 {
			return false
		}
		seen[k]--
	}
	return true
}
