// Package debugui renders Dear ImGui overlays from inside an ECS world. Render
// callbacks live on entities and are deferred until the frame's systems have
// run, so they always see settled state.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard this
// frame. Game input should be ignored while it does.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers every ImguiItem's render
// function.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// PanelSystem defers the built-in panels, feeding each the frame's delta.
type PanelSystem struct {
	Performance ecs.Query[struct{ *PerformancePanel }]
	Archetypes  ecs.Query[struct{ *ArchetypePanel }]
}

func (p *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for item := range p.Performance.Values() {
		panel := item.PerformancePanel
		frame.Commands.Defer(func() { panel.Render(dt) })
	}
	for item := range p.Archetypes.Values() {
		frame.Commands.Defer(item.ArchetypePanel.Render)
	}
}
