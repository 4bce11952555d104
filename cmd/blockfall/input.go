package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/game"
)

// binding maps a key to a command. Repeating bindings fire again while the
// key is held.
type binding struct {
	key    ebiten.Key
	cmd    game.Command
	repeat bool
}

var defaultBindings = []binding{
	{ebiten.KeyArrowLeft, game.MoveLeft, true},
	{ebiten.KeyA, game.MoveLeft, true},
	{ebiten.KeyArrowRight, game.MoveRight, true},
	{ebiten.KeyD, game.MoveRight, true},
	{ebiten.KeyArrowDown, game.MoveDown, true},
	{ebiten.KeyS, game.MoveDown, true},
	{ebiten.KeySpace, game.HardDrop, false},
	{ebiten.KeyZ, game.RotateLeft, false},
	{ebiten.KeyQ, game.RotateLeft, false},
	{ebiten.KeyArrowUp, game.RotateRight, false},
	{ebiten.KeyX, game.RotateRight, false},
	{ebiten.KeyE, game.RotateRight, false},
	{ebiten.KeyC, game.Hold, false},
	{ebiten.KeyShiftLeft, game.Hold, false},
	{ebiten.KeyP, game.TogglePause, false},
	{ebiten.KeyEscape, game.TogglePause, false},
	{ebiten.KeyR, game.Restart, false},
}

// Auto-repeat timing in ticks.
const (
	repeatDelay = 10
	repeatEvery = 3
)

// fires reports whether a key held for duration ticks triggers this tick.
func fires(duration int, repeat bool) bool {
	if duration == 1 {
		return true
	}
	if !repeat || duration < repeatDelay {
		return false
	}
	return (duration-repeatDelay)%repeatEvery == 0
}

// pollCommands returns the commands triggered this tick, in binding order.
func pollCommands(bindings []binding) []game.Command {
	var cmds []game.Command
	for _, b := range bindings {
		if fires(inpututil.KeyPressDuration(b.key), b.repeat) {
			cmds = append(cmds, b.cmd)
		}
	}
	return cmds
}
