package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/lotsa-sim/lotsa/broadcast"
	"github.com/lotsa-sim/lotsa/world"
	"github.com/lotsa-sim/lotsa/world/life"
	"github.com/lotsa-sim/lotsa/world/sim"
)

func newTestWorld(t *testing.T, interval time.Duration) (*broadcast.World, context.CancelFunc) {
	t.Helper()
	s := sim.NewSimulator()
	if err := life.Init(s); err != nil {
		t.Fatalf("life.Init: %v", err)
	}
	w := broadcast.New(world.NewChunk(), s, broadcast.NewHub(nil), interval, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = w.Run(ctx) }()
	return w, cancel
}

func TestExecRunsAgainstTheTickGoroutine(t *testing.T) {
	w, cancel := newTestWorld(t, time.Hour)
	defer cancel()

	done := make(chan world.BlockType, 1)
	<-w.Exec(func(lc *world.LoadedChunk, s *sim.Simulator) {
		lc.SetBlockType(world.NewChunkPos(0, 0, 0), life.Life)
		done <- lc.Get(world.NewChunkPos(0, 0, 0))
	})

	select {
	case got := <-done:
		if got != life.Life {
			t.Fatalf("got %v, want %v", got, life.Life)
		}
	default:
		t.Fatal("Exec's closure did not run before Exec returned")
	}
}

func TestTickAdvancesCurrentTick(t *testing.T) {
	w, cancel := newTestWorld(t, 10*time.Millisecond)
	defer cancel()

	deadline := time.After(2 * time.Second)
	for w.CurrentTick() == 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for a tick to complete")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSubscriberReceivesAFrameEachTick(t *testing.T) {
	w, cancel := newTestWorld(t, 10*time.Millisecond)
	defer cancel()

	_, frames, unsubscribe := w.Hub().Subscribe()
	defer unsubscribe()

	select {
	case frame := <-frames:
		if len(frame) == 0 {
			t.Fatal("expected a non-empty tick frame")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a broadcast frame")
	}
}
