package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/blockfall/ecs/debugui/ebiten"
	"github.com/plus3/blockfall/game"
	"go.uber.org/zap"
)

// Game adapts the engine to ebiten.Game. The engine is only touched from
// Update and Draw, which ebiten calls on one goroutine.
type Game struct {
	engine *game.Engine
	logger *zap.Logger
	layout layout

	snap    game.Snapshot
	sound   *sound
	overlay *debugui_ebiten.Overlay
}

func newGame(engine *game.Engine, logger *zap.Logger) *Game {
	rules := engine.Rules()
	g := &Game{
		engine: engine,
		logger: logger,
		layout: layout{rows: rules.Rows, cols: rules.Cols},
		snap:   engine.Snapshot(),
	}
	engine.Subscribe(g.onEvent)
	return g
}

func (g *Game) width() int  { return g.layout.width() }
func (g *Game) height() int { return g.layout.height() }

func (g *Game) enableOverlay() {
	g.overlay = debugui_ebiten.NewOverlay("blockfall", g.width()+480, g.height(), g.engine)
	g.overlay.Add(matchWindow(g.engine, float32(g.width()+10)))
}

func (g *Game) onEvent(ev game.Event) {
	if ev.Snapshot != nil {
		g.snap = *ev.Snapshot
	}
	if g.sound != nil {
		g.sound.onEvent(ev)
	}
}

func (g *Game) Update() error {
	if g.overlay == nil || !g.overlay.WantsKeyboard() {
		for _, cmd := range pollCommands(defaultBindings) {
			g.engine.Dispatch(cmd)
		}
	}
	g.engine.Advance(time.Second / time.Duration(ebiten.TPS()))

	if g.overlay != nil {
		g.overlay.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawBoard(screen, g.layout, &g.snap)
	drawSidebar(screen, g.layout, &g.snap)

	switch {
	case g.snap.Over:
		drawBanner(screen, g.layout, "GAME OVER - R to restart")
	case g.snap.Paused:
		drawBanner(screen, g.layout, "PAUSED - press a control")
	}

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.width(), g.height()
}
