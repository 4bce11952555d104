package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/blockfall/game"
)

var keyCommands = map[string]game.Command{
	"left":  game.MoveLeft,
	"h":     game.MoveLeft,
	"a":     game.MoveLeft,
	"right": game.MoveRight,
	"l":     game.MoveRight,
	"d":     game.MoveRight,
	"down":  game.MoveDown,
	"j":     game.MoveDown,
	"s":     game.MoveDown,
	" ":     game.HardDrop,
	"space": game.HardDrop,
	"z":     game.RotateLeft,
	"up":    game.RotateRight,
	"k":     game.RotateRight,
	"x":     game.RotateRight,
	"c":     game.Hold,
	"p":     game.TogglePause,
	"esc":   game.TogglePause,
	"r":     game.Restart,
}

type tickMsg time.Time

// state is shared by every copy of the model; the engine's listener writes
// into it.
type state struct {
	snap   game.Snapshot
	last   time.Time
	status string
}

type model struct {
	engine *game.Engine
	frame  time.Duration
	state  *state
}

func newModel(engine *game.Engine, frame time.Duration) model {
	m := model{
		engine: engine,
		frame:  frame,
		state:  &state{snap: engine.Snapshot()},
	}
	engine.Subscribe(m.onEvent)
	return m
}

func (m model) onEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventChanged:
		m.state.snap = *ev.Snapshot
	case game.EventLevel, game.EventGameOver:
		m.state.status = ev.String()
	case game.EventStarted:
		m.state.status = ""
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			if cmd, ok := keyCommands[key]; ok {
				m.engine.Dispatch(cmd)
			}
		}
	case tickMsg:
		now := time.Time(msg)
		if !m.state.last.IsZero() {
			m.engine.Advance(now.Sub(m.state.last))
		}
		m.state.last = now
		return m, m.tick()
	}
	return m, nil
}
