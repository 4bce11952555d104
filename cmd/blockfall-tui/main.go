// Command blockfall-tui plays the game in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/blockfall/game"
	"go.uber.org/zap"
)

func main() {
	rulesPath := flag.String("rules", "", "Optional YAML rules file.")
	seed := flag.Uint64("seed", 0, "Bag seed; 0 picks one at random.")
	logPath := flag.String("log", "", "Write debug logs to this file.")
	fps := flag.Int("fps", 30, "Frames per second.")
	flag.Parse()

	logger, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	rules := game.DefaultRules()
	if *rulesPath != "" {
		if rules, err = game.LoadRules(*rulesPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *seed != 0 {
		rules.Seed = *seed
	}

	engine, err := game.New(rules, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	frame := time.Second / time.Duration(max(*fps, 1))
	p := tea.NewProgram(newModel(engine, frame), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger logs to path at debug level, or nowhere when path is empty. The
// terminal belongs to the UI.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
