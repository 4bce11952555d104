// Command blockfall-bench plays random commands against the engine as fast as
// it can and reports frame timings, per-system costs and match outcomes.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/game"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "How long to play for.")
	rulesPath := flag.String("rules", "", "Optional YAML rules file.")
	seed := flag.Uint64("seed", 1, "Seed for the piece bags and the autoplayer.")
	gravity := flag.Duration("gravity-step", 50*time.Millisecond, "Simulated time advanced between commands.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Include GC pause totals in the report.")
	verbose := flag.Bool("v", false, "Log every match start and game over.")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	rules := game.DefaultRules()
	if *rulesPath != "" {
		var err error
		if rules, err = game.LoadRules(*rulesPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	rules.Seed = *seed
	rules.StartPaused = false

	engine, err := game.New(rules, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	report := &Report{
		Duration:       *duration,
		Rows:           rules.Rows,
		Cols:           rules.Cols,
		Seed:           *seed,
		GravityStep:    *gravity,
		GCPauseMetrics: *gcPauseMetrics,
	}
	player := newAutoplayer(*seed)
	engine.Subscribe(report.observe)

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			cmd := player.next(engine.Snapshot())

			frameStart := time.Now()
			engine.Dispatch(cmd)
			engine.Advance(*gravity)
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
			report.Commands++
		}
	}

	report.TotalTime = time.Since(start)
	report.FrameTime.Finalize()
	report.Scheduler = engine.Stats()
	report.finishMatch(engine.Snapshot())
	runtime.ReadMemStats(&report.MemStatsEnd)

	if err := report.Generate(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		os.Exit(1)
	}
}

// autoplayer picks weighted random commands. Hard drops are rare enough that
// pieces wander, and a finished match is always restarted.
type autoplayer struct {
	rng *rand.Rand
}

func newAutoplayer(seed uint64) *autoplayer {
	return &autoplayer{rng: rand.New(rand.NewPCG(seed, ^seed))}
}

var weightedCommands = []struct {
	cmd    game.Command
	weight int
}{
	{game.MoveLeft, 6},
	{game.MoveRight, 6},
	{game.MoveDown, 8},
	{game.RotateLeft, 3},
	{game.RotateRight, 3},
	{game.HardDrop, 2},
	{game.Hold, 1},
}

func (a *autoplayer) next(snap game.Snapshot) game.Command {
	if snap.Over {
		return game.Restart
	}

	total := 0
	for _, wc := range weightedCommands {
		total += wc.weight
	}
	pick := a.rng.IntN(total)
	for _, wc := range weightedCommands {
		if pick < wc.weight {
			return wc.cmd
		}
		pick -= wc.weight
	}
	return game.MoveDown
}
