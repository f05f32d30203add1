package sim

import "sync"

// Metrics tracks cumulative per-tick counters for a Simulator, for
// observability by the operator console and status endpoints.
//
// Adapted from the teacher's redstone.Metrics: same lock-guarded counter
// shape, repointed at tick-level quantities instead of per-chunk redstone
// graph quantities.
type Metrics struct {
	mu sync.Mutex

	ticks      uint64
	considered uint64
	writes     uint64
}

// NewMetrics returns a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// AddConsidered adds to the cumulative count of positions considered across
// all updaters.
func (m *Metrics) AddConsidered(n uint64) {
	if m == nil || n == 0 {
		return
	}
	m.mu.Lock()
	m.considered += n
	m.mu.Unlock()
}

// AddWrites adds to the cumulative count of writes applied.
func (m *Metrics) AddWrites(n uint64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.writes += n
	m.ticks++
	m.mu.Unlock()
}

// Snapshot is a point-in-time copy of the cumulative counters.
type Snapshot struct {
	Ticks      uint64
	Considered uint64
	Writes     uint64
}

// Snapshot returns the current cumulative counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Ticks: m.ticks, Considered: m.considered, Writes: m.writes}
}
