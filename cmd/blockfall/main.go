// Command blockfall is the windowed game.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/game"
	"go.uber.org/zap"
)

func main() {
	rulesPath := flag.String("rules", "", "Optional YAML rules file.")
	seed := flag.Uint64("seed", 0, "Bag seed; 0 picks one at random.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	mute := flag.Bool("mute", false, "Disable sound.")
	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	rules := game.DefaultRules()
	if *rulesPath != "" {
		if rules, err = game.LoadRules(*rulesPath); err != nil {
			logger.Fatal("loading rules", zap.Error(err))
		}
	}
	if *seed != 0 {
		rules.Seed = *seed
	}

	engine, err := game.New(rules, logger)
	if err != nil {
		logger.Fatal("starting engine", zap.Error(err))
	}

	g := newGame(engine, logger)
	if !*mute {
		g.sound = newSound(logger)
		if !g.snap.Paused {
			g.sound.onEvent(game.Event{Kind: game.EventResumed})
		}
	}
	if *debug {
		g.enableOverlay()
	} else {
		ebiten.SetWindowSize(g.width(), g.height())
		ebiten.SetWindowTitle("blockfall")
	}

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game loop", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	return cfg.Build()
}
