package main

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
)

// matchWindow renders the current match state and a button per command.
func matchWindow(engine *game.Engine, x float32) func() {
	return func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(x, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		if !imgui.BeginV("Match", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		snap := engine.Snapshot()
		imgui.Text("ID: " + snap.MatchID.String())
		imgui.Text(fmt.Sprintf("Score %d  Level %d  Lines %d", snap.Score, snap.Level, snap.Lines))
		imgui.Text(fmt.Sprintf("Next tick in %s", engine.NextTick()))
		imgui.Text("Queue: " + queueString(&snap))
		if snap.HasHeld {
			imgui.Text(fmt.Sprintf("Held: %s (can swap: %t)", snap.Held.Kind(), snap.CanHold))
		}

		switch {
		case snap.Over:
			imgui.Text("Game over")
		case snap.Paused:
			imgui.Text("Paused")
		}

		imgui.Separator()
		for i, cmd := range game.Commands() {
			if i%3 != 0 {
				imgui.SameLine()
			}
			if imgui.Button(cmd.String()) {
				engine.Dispatch(cmd)
			}
		}

		imgui.End()
	}
}

func queueString(snap *game.Snapshot) string {
	names := make([]string, len(snap.Next))
	for i, s := range snap.Next {
		names[i] = s.Kind().String()
	}
	return strings.Join(names, " ")
}
