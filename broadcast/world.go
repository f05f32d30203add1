// Package broadcast implements the long-running tick loop that owns a
// single world.LoadedChunk and world/sim.Simulator, and fans each tick's
// framed snapshot out to subscribers via Hub.
package broadcast

import (
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/lotsa-sim/lotsa/wireframe"
	"github.com/lotsa-sim/lotsa/world"
	"github.com/lotsa-sim/lotsa/world/sim"
)

const (
	// DefaultTickInterval is the cadence spec.md §4.6 names as the default:
	// one tick every 100 milliseconds.
	DefaultTickInterval = 100 * time.Millisecond

	tpsSampleSize       = 50
	tpsWarningThreshold = 8.0
)

// ExecFunc is a function run against a World's owned state from the
// World's single tick-loop goroutine, with exclusive access to it.
type ExecFunc func(chunk *world.LoadedChunk, s *sim.Simulator)

type transaction struct {
	f    ExecFunc
	done chan struct{}
}

// World owns one LoadedChunk and one Simulator, serializing every read and
// write to them onto a single goroutine (Run). All other access — from the
// operator console, the websocket server, or tests — goes through Exec,
// matching spec.md §5's single-threaded-cooperative-core model.
//
// Adapted from the teacher's World.Exec/transaction queue (server/world.go,
// server/world/tick.go's ticker.tickLoop): the teacher runs the queue
// drain and the ticker on two goroutines coordinated by channels; this
// World collapses both onto one select loop, since there's no entity or
// player work to keep off the tick's critical path.
type World struct {
	log      *slog.Logger
	interval time.Duration

	chunk *world.LoadedChunk
	sim   *sim.Simulator
	hub   *Hub

	queue chan transaction

	tps         atomic.Uint64
	currentTick atomic.Int64
}

// New returns a World that will tick chunk with s at interval, broadcasting
// each tick's frame through hub. log may be nil, in which case
// slog.Default is used.
func New(chunk *world.Chunk, s *sim.Simulator, hub *Hub, interval time.Duration, log *slog.Logger) *World {
	if log == nil {
		log = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &World{
		log:      log,
		interval: interval,
		chunk:    world.NewLoadedChunk(chunk),
		sim:      s,
		hub:      hub,
		queue:    make(chan transaction),
	}
}

// Exec submits f to run exclusively against the World's chunk and
// simulator, from the Run goroutine, and returns a channel that's closed
// once f has returned.
func (w *World) Exec(f ExecFunc) <-chan struct{} {
	done := make(chan struct{})
	w.queue <- transaction{f: f, done: done}
	return done
}

// TPS returns the average ticks-per-second observed over the last
// tpsSampleSize ticks, or 0 if no full sample window has completed yet.
func (w *World) TPS() float64 { return math.Float64frombits(w.tps.Load()) }

// CurrentTick returns the number of ticks that have completed so far.
func (w *World) CurrentTick() int64 { return w.currentTick.Load() }

// Hub returns the World's subscriber fan-out hub.
func (w *World) Hub() *Hub { return w.hub }

// Run drives the World's tick loop and transaction queue until ctx is
// cancelled. It's intended to be called from its own goroutine by
// cmd/lotsa-server's main.
func (w *World) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var (
		lastTick    = time.Now()
		durationSum time.Duration
		ticksCount  int
		warned      bool
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tx := <-w.queue:
			tx.f(w.chunk, w.sim)
			close(tx.done)
		case now := <-ticker.C:
			duration := now.Sub(lastTick)
			lastTick = now
			w.tick(ctx)
			if duration <= 0 {
				continue
			}
			durationSum += duration
			ticksCount++
			if ticksCount < tpsSampleSize {
				continue
			}
			avg := durationSum / time.Duration(ticksCount)
			tps := 0.0
			if avg > 0 {
				tps = 1.0 / avg.Seconds()
			}
			w.tps.Store(math.Float64bits(tps))
			if tps < tpsWarningThreshold {
				if !warned {
					w.log.Warn("tick rate dropped below threshold", "tps", tps)
					warned = true
				}
			} else {
				warned = false
			}
			durationSum, ticksCount = 0, 0
		}
	}
}

// tick performs one broadcast tick: it serialises the chunk's pre-step
// state, steps the simulator, and fans the frame out. Per spec.md §4.6
// these three things happen in exactly that order so that subscribers see
// the chunk as it was before, not after, this tick's writes.
func (w *World) tick(ctx context.Context) {
	frame, err := wireframe.Encode(w.chunk.Chunk())
	if err != nil {
		w.log.Error("failed to encode tick frame", "error", err)
	}

	w.sim.Step(w.chunk)
	w.currentTick.Add(1)

	if err == nil {
		w.hub.Broadcast(ctx, frame)
	}
}
