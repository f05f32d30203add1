// Command lotsa-server runs the tick-driven block-world simulator: it
// loads its config, wires a broadcast.World around a world/sim.Simulator
// running the Conway's Life rule, serves subscribers over netsrv, and
// drives an operator console on stdin, exactly the set of responsibilities
// server/main-style entry points in this pack take on (config, logging,
// component wiring, signal-driven shutdown).
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lotsa-sim/lotsa/broadcast"
	"github.com/lotsa-sim/lotsa/console"
	"github.com/lotsa-sim/lotsa/debugtext"
	"github.com/lotsa-sim/lotsa/netsrv"
	"github.com/lotsa-sim/lotsa/world"
	"github.com/lotsa-sim/lotsa/world/life"
	"github.com/lotsa-sim/lotsa/world/sim"
)

// shutdownTimeout bounds how long the HTTP server waits for in-flight
// websocket connections to close once ctx is cancelled.
const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "config.toml", "path to the server's TOML configuration file")
	flag.Parse()

	log := newLogger()

	uc, err := LoadUserConfig(*configPath)
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	glyphs, err := debugtext.LoadGlyphTableFile(uc.Sim.GlyphFile)
	if err != nil {
		log.Error("failed to load glyph table", "path", uc.Sim.GlyphFile, "error", err)
		os.Exit(1)
	}

	simulator := sim.NewSimulator()
	if err := life.Init(simulator); err != nil {
		log.Error("failed to register simulation rules", "error", err)
		os.Exit(1)
	}

	hub := broadcast.NewHub(log)
	w := broadcast.New(world.NewChunk(), simulator, hub, uc.TickInterval(), log)

	srv := netsrv.NewServer(hub, uc.Static.Dir, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("world loop stopped unexpectedly", "error", err)
		}
	}()

	go func() {
		log.Info("listening", "address", uc.Network.Address)
		if err := httpListenAndServe(ctx, uc.Network.Address, srv, log); err != nil {
			log.Error("http server stopped unexpectedly", "error", err)
			cancel()
		}
	}()

	console.New(w, glyphs, cancel, log).Run(ctx)
	<-ctx.Done()
}

// httpListenAndServe runs srv behind an http.Server bound to addr until ctx
// is cancelled, then shuts it down gracefully within shutdownTimeout.
func httpListenAndServe(ctx context.Context, addr string, srv http.Handler, log *slog.Logger) error {
	httpSrv := &http.Server{Addr: addr, Handler: srv}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http server shutdown did not complete cleanly", "error", err)
		}
		return nil
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if v := os.Getenv("LOTSA_LOG"); v != "" {
		_ = level.UnmarshalText([]byte(v))
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
