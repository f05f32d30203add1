// Package console implements the operator's interactive REPL: a small
// fixed set of commands operating on a broadcast.World, read from stdin (or
// any io.Reader, for tests) with history and tab completion.
//
// Adapted from the teacher's server/console/console.go: same Console
// struct shape, the same runScanner/runInteractive split driven by whether
// the reader is os.Stdin, and the same execute/history bookkeeping. The
// teacher dispatches through a cmd.Command registry meant for in-game
// chat-style commands; there's no such registry here, so execute switches
// directly on a fixed command name instead.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/lotsa-sim/lotsa/broadcast"
	"github.com/lotsa-sim/lotsa/debugtext"
	"github.com/lotsa-sim/lotsa/world"
	"github.com/lotsa-sim/lotsa/world/sim"
)

const (
	defaultPromptPrefix = "> "
	maxHistoryEntries   = 128
)

// Console reads commands from an io.Reader (defaulting to os.Stdin) and
// runs them against a World.
type Console struct {
	world  *broadcast.World
	glyphs *debugtext.GlyphTable
	cancel context.CancelFunc
	log    *slog.Logger
	reader io.Reader

	history []string
}

// New returns a Console bound to w, using glyphs to translate /load and
// /dump's text-art payloads. cancel is called when the operator issues
// /quit; it's typically the cancel func of the context the rest of the
// process (World.Run, netsrv.Server) is bound to, so /quit shuts the whole
// program down rather than only the console.
func New(w *broadcast.World, glyphs *debugtext.GlyphTable, cancel context.CancelFunc, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{
		world:  w,
		glyphs: glyphs,
		cancel: cancel,
		log:    log,
		reader: os.Stdin,
	}
}

// WithReader sets a custom reader for the console input, so tests can drive
// it without os.Stdin.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// Run consumes commands until ctx is cancelled or the reader reaches EOF.
func (c *Console) Run(ctx context.Context) {
	if c.reader != os.Stdin {
		c.runScanner(ctx)
		return
	}
	c.runInteractive(ctx)
}

func (c *Console) runScanner(ctx context.Context) {
	scanner := bufio.NewScanner(c.reader)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("console input error", "error", err)
			}
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.execute(ctx, line)
	}
}

func (c *Console) runInteractive(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := prompt.Input(defaultPromptPrefix, c.complete,
			prompt.OptionTitle("lotsa console"),
			prompt.OptionHistory(c.history),
			prompt.OptionPrefix(defaultPromptPrefix),
			prompt.OptionCompletionOnDown(),
			prompt.OptionMaxSuggestion(12),
		)

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c.execute(ctx, line)
	}
}

func (c *Console) execute(ctx context.Context, line string) {
	input := strings.TrimPrefix(strings.TrimSpace(line), "/")
	if input == "" {
		return
	}

	c.history = append(c.history, input)
	if len(c.history) > maxHistoryEntries {
		c.history = c.history[len(c.history)-maxHistoryEntries:]
	}

	fields := strings.Fields(input)
	name, args := fields[0], fields[1:]

	switch name {
	case "load":
		c.cmdLoad(args)
	case "dump":
		c.cmdDump()
	case "step":
		c.cmdStep(args)
	case "status":
		c.cmdStatus()
	case "quit":
		c.log.Info("console shutdown requested")
		if c.cancel != nil {
			c.cancel()
		}
	default:
		c.log.Warn("unknown console command", "command", name)
	}
}

func (c *Console) cmdLoad(args []string) {
	if len(args) != 1 {
		c.log.Warn("usage: /load <file>")
		return
	}
	text, err := os.ReadFile(args[0])
	if err != nil {
		c.log.Error("failed reading text-art file", "path", args[0], "error", err)
		return
	}

	var loadErr error
	<-c.world.Exec(func(lc *world.LoadedChunk, s *sim.Simulator) {
		s.Prime(lc)
		loadErr = debugtext.Load(c.glyphs, lc, string(text))
	})
	if loadErr != nil {
		c.log.Error("failed loading text-art", "path", args[0], "error", loadErr)
		return
	}
	c.log.Info("loaded text-art", "path", args[0])
}

func (c *Console) cmdDump() {
	var (
		out     string
		dumpErr error
	)
	<-c.world.Exec(func(lc *world.LoadedChunk, s *sim.Simulator) {
		out, dumpErr = debugtext.Dump(c.glyphs, lc.Chunk())
	})
	if dumpErr != nil {
		c.log.Error("failed dumping chunk", "error", dumpErr)
		return
	}
	fmt.Print(out)
}

func (c *Console) cmdStep(args []string) {
	n := 1
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			c.log.Warn("usage: /step [n]")
			return
		}
		n = parsed
	}
	<-c.world.Exec(func(lc *world.LoadedChunk, s *sim.Simulator) {
		for i := 0; i < n; i++ {
			s.Step(lc)
		}
	})
	c.log.Info("stepped simulator", "ticks", n)
}

func (c *Console) cmdStatus() {
	var snap sim.Snapshot
	<-c.world.Exec(func(_ *world.LoadedChunk, s *sim.Simulator) {
		snap = s.Metrics().Snapshot()
	})
	c.log.Info("status",
		"tick", c.world.CurrentTick(),
		"tps", c.world.TPS(),
		"subscribers", c.world.Hub().SubscriberCount(),
		"dropped_frames", c.world.Hub().DroppedFrames(),
		"ticks_simulated", snap.Ticks,
		"positions_considered", snap.Considered,
		"writes_applied", snap.Writes,
	)
}

var commandUsage = map[string]string{
	"load":   "/load <file> - load text-art into the chunk",
	"dump":   "/dump - print the chunk's z=0 plane as text-art",
	"step":   "/step [n] - advance the simulator by n ticks (default 1)",
	"status": "/status - report tick rate and subscriber counts",
	"quit":   "/quit - shut the process down",
}

func (c *Console) complete(doc prompt.Document) []prompt.Suggest {
	word := strings.TrimPrefix(doc.GetWordBeforeCursor(), "/")
	suggestions := make([]prompt.Suggest, 0, len(commandUsage))
	for name, usage := range commandUsage {
		suggestions = append(suggestions, prompt.Suggest{Text: name, Description: usage})
	}
	sort.Slice(suggestions, func(i, j int) bool { return suggestions[i].Text < suggestions[j].Text })
	return prompt.FilterHasPrefix(suggestions, word, true)
}
