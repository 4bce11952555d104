// Package ebiten runs the debugui panels on top of an Ebiten game through the
// cimgui-go Ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay is a self-contained debug world: its own storage and scheduler
// holding ImGui items and panels, drawn over the host game.
type Overlay struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	backend *ecs.Singleton[ImguiBackend]
	input   *ecs.Singleton[debugui.ImguiInputState]
	timer   *debugui.FrameTimer
}

// NewOverlay creates the ImGui window and the built-in panels reporting on
// source. It must be called before ebiten.RunGame.
func NewOverlay(title string, width, height int, source debugui.StatsSource) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)

	o := &Overlay{
		Storage:   storage,
		Scheduler: scheduler,
		backend:   ecs.NewSingleton[ImguiBackend](storage, ImguiBackend{EbitenBackend: backend}),
		timer:     debugui.NewFrameTimer(),
	}
	debugui.SpawnDebugUI(storage, scheduler, source)
	o.input = ecs.NewSingleton[debugui.ImguiInputState](storage)
	return o
}

// Add spawns an extra ImGui window.
func (o *Overlay) Add(render func()) ecs.EntityId {
	return o.Storage.Spawn(debugui.ImguiItem{Render: render})
}

// Update runs one overlay frame. Call it from the game's Update.
func (o *Overlay) Update() {
	backend := o.backend.Get()
	backend.BeginFrame()
	o.Scheduler.Once(o.timer.Delta())
	backend.EndFrame()
}

// Draw renders the overlay onto screen after the game has drawn.
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

// Layout forwards the outside size to the backend.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Get().Layout(outsideWidth, outsideHeight)
}

// WantsKeyboard reports whether an ImGui widget has keyboard focus, in which
// case game key bindings should be ignored.
func (o *Overlay) WantsKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}
